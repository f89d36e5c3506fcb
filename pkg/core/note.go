package core

import (
	"encoding/json"
	"time"
)

// Note is the central entity of the domain.
// It is a short piece of text identified by an opaque ID.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Touch refreshes UpdatedAt, never letting it fall behind CreatedAt.
func (n *Note) Touch(now time.Time) {
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// UnmarshalJSON decodes a note, reading timestamps with ParseTime.
// A malformed timestamp yields the zero time for that field only.
func (n *Note) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		CreatedAt any    `json:"createdAt"`
		UpdatedAt any    `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Note{
		ID:        raw.ID,
		Title:     raw.Title,
		Content:   raw.Content,
		CreatedAt: timeOf(raw.CreatedAt),
		UpdatedAt: timeOf(raw.UpdatedAt),
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp: RFC 3339, a local date-time
// (read as UTC) or a bare date. Anything else yields the zero time.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func timeOf(v any) time.Time {
	if s, ok := v.(string); ok {
		return ParseTime(s)
	}
	return time.Time{}
}
