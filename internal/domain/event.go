package domain

import (
	"errors"
	"fmt"
	"time"
)

// EventKind is the canonical interaction category stored in the events table
type EventKind string

const (
	KindView    EventKind = "view"
	KindLike    EventKind = "like"
	KindComment EventKind = "comment"
)

// Bus topics, one per event kind
const (
	TopicViews    = "post_views"
	TopicLikes    = "post_likes"
	TopicComments = "post_comments"
)

// ErrUnknownKind is returned when a topic or selector does not map to an EventKind
var ErrUnknownKind = errors.New("unknown event kind")

var kindTopics = map[EventKind]string{
	KindView:    TopicViews,
	KindLike:    TopicLikes,
	KindComment: TopicComments,
}

var topicKinds = map[string]EventKind{
	TopicViews:    KindView,
	TopicLikes:    KindLike,
	TopicComments: KindComment,
}

// selectorKinds follows the wire enum: 0=view, 1=like, 2=comment
var selectorKinds = map[int32]EventKind{
	0: KindView,
	1: KindLike,
	2: KindComment,
}

// Topics returns every topic the statistics consumer subscribes to
func Topics() []string {
	return []string{TopicViews, TopicLikes, TopicComments}
}

// Topic returns the bus topic events of this kind are published to
func (k EventKind) Topic() (string, error) {
	topic, ok := kindTopics[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return topic, nil
}

// Valid reports whether k is one of the canonical kinds
func (k EventKind) Valid() bool {
	_, ok := kindTopics[k]
	return ok
}

// KindForTopic maps a bus topic to its event kind
func KindForTopic(topic string) (EventKind, error) {
	kind, ok := topicKinds[topic]
	if !ok {
		return "", fmt.Errorf("%w: topic %q", ErrUnknownKind, topic)
	}
	return kind, nil
}

// KindFromSelector maps the enumerated ranking selector to an event kind
func KindFromSelector(selector int32) (EventKind, error) {
	kind, ok := selectorKinds[selector]
	if !ok {
		return "", fmt.Errorf("%w: invalid metric %d", ErrUnknownKind, selector)
	}
	return kind, nil
}

// Event represents an interaction row stored in ClickHouse.
// Rows are append-only and carry no deduplication key.
type Event struct {
	EventTime time.Time `ch:"event_time"`
	EventType EventKind `ch:"event_type"`
	PostID    string    `ch:"post_id"`
	UserID    string    `ch:"user_id"`
	Content   *string   `ch:"content"`
}

// EventMessage is the JSON payload published to the bus. The kind travels in the topic name.
type EventMessage struct {
	UserID    string  `json:"user_id"`
	PostID    string  `json:"post_id"`
	Timestamp string  `json:"timestamp"`
	Content   *string `json:"content"`
}
