package domain

import "time"

// Post is a row of the posts table
type Post struct {
	ID          string
	Title       string
	Description string
	UserID      string
	IsPrivate   bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a row of the comments table
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// PostPatch is a partial update. A nil field leaves the current value untouched;
// Tags replaces the whole set only when non-empty.
type PostPatch struct {
	Title       *string
	Description *string
	IsPrivate   *bool
	Tags        []string
}

// Apply merges the patch onto current and returns the result. current is not modified.
func (p PostPatch) Apply(current Post) Post {
	merged := current
	merged.Tags = append([]string(nil), current.Tags...)

	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.IsPrivate != nil {
		merged.IsPrivate = *p.IsPrivate
	}
	if len(p.Tags) > 0 {
		merged.Tags = append([]string(nil), p.Tags...)
	}

	return merged
}
