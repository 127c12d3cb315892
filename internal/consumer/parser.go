package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/araddon/dateparse"

	"github.com/garaevmir/NanoServices/internal/domain"
)

// ErrMalformedMessage is returned for payloads that cannot become an event
var ErrMalformedMessage = errors.New("malformed message")

// isoDate is the calendar-date prefix every ISO-8601 timestamp starts with
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]|$)`)

// Bounds of the events.event_time column (DateTime64)
var (
	minEventTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxEventTime = time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
)

// JSONEventParser implements MessageParser for JSON-formatted event messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse maps the topic to an event kind and decodes the payload.
// The event time is the payload timestamp; values without an offset are read as UTC.
func (p *JSONEventParser) Parse(topic string, body []byte) (*domain.Event, error) {
	kind, err := domain.KindForTopic(topic)
	if err != nil {
		return nil, err
	}

	var msg domain.EventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal message body: %v", ErrMalformedMessage, err)
	}

	if msg.PostID == "" || msg.UserID == "" {
		return nil, fmt.Errorf("%w: post_id and user_id are required", ErrMalformedMessage)
	}

	eventTime, err := parseTimestamp(msg.Timestamp)
	if err != nil {
		return nil, err
	}

	return &domain.Event{
		EventTime: eventTime.UTC(),
		EventType: kind,
		PostID:    msg.PostID,
		UserID:    msg.UserID,
		Content:   msg.Content,
	}, nil
}

// parseTimestamp accepts ISO-8601 date-times only; values without an offset are UTC
func parseTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp is required", ErrMalformedMessage)
	}
	if !isoDate.MatchString(ts) {
		return time.Time{}, fmt.Errorf("%w: timestamp %q is not ISO-8601", ErrMalformedMessage, ts)
	}

	t, err := dateparse.ParseIn(ts, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q: %v", ErrMalformedMessage, ts, err)
	}

	t = t.UTC()
	if t.Before(minEventTime) || !t.Before(maxEventTime) {
		return time.Time{}, fmt.Errorf("%w: timestamp %q is out of range", ErrMalformedMessage, ts)
	}
	return t, nil
}
