package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// record is a validated backup entry.
type record struct {
	id        string
	title     string
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// ImportBackup restores notes from a JSON backup array.
//
// Entries without a string id, title and content are skipped. An entry whose
// id exists locally updates that note; any other entry is created under a
// freshly generated id. Count includes both updates and creations.
func (c *Codec) ImportBackup(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if items == nil { // "null"
		return ImportResult{}, ErrInvalidBackup
	}

	records := make([]record, 0, len(items))
	for _, raw := range items {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		if rec, ok := recordFrom(fields); ok {
			records = append(records, rec)
		}
	}
	return c.restore(ctx, records, len(items))
}

// ImportYAMLBackup restores notes from a YAML sequence, with ImportBackup rules.
func (c *Codec) ImportYAMLBackup(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	items, ok := root.([]any)
	if !ok {
		return ImportResult{}, ErrInvalidBackup
	}

	records := make([]record, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if rec, ok := recordFrom(fields); ok {
			records = append(records, rec)
		}
	}
	return c.restore(ctx, records, len(items))
}

func (c *Codec) restore(ctx context.Context, records []record, total int) (ImportResult, error) {
	existing, err := c.notes.ListNotes(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	local := make(map[string]core.Note, len(existing))
	for _, n := range existing {
		local[n.ID] = n
	}

	count := 0
	for _, rec := range records {
		if n, ok := local[rec.id]; ok {
			n.Title = rec.title
			n.Content = rec.content
			n.Touch(c.notes.Now())
			if _, err := c.notes.UpdateNote(ctx, n.ID, n); err != nil {
				return ImportResult{}, fmt.Errorf("failed to restore %s: %w", rec.id, err)
			}
			local[n.ID] = n
		} else {
			if _, err := c.notes.CreateNote(ctx, c.fromRecord(rec)); err != nil {
				return ImportResult{}, fmt.Errorf("failed to restore %s: %w", rec.id, err)
			}
		}
		count++
	}

	c.logger.Info("backup imported", "processed", count, "skipped", total-count)
	return ImportResult{Success: true, Count: count}, nil
}

// fromRecord builds a new note under a fresh id, keeping the backup's
// timestamps when they are present.
func (c *Codec) fromRecord(rec record) core.Note {
	n := c.notes.NewNote(rec.title, rec.content)
	if !rec.createdAt.IsZero() {
		n.CreatedAt = rec.createdAt
		n.UpdatedAt = rec.createdAt
	}
	if !rec.updatedAt.IsZero() {
		n.UpdatedAt = rec.updatedAt
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}
	return n
}

func recordFrom(fields map[string]any) (record, bool) {
	id, ok := fields["id"].(string)
	if !ok || id == "" {
		return record{}, false
	}
	title, ok := fields["title"].(string)
	if !ok {
		return record{}, false
	}
	content, ok := fields["content"].(string)
	if !ok {
		return record{}, false
	}
	return record{
		id:        id,
		title:     title,
		content:   content,
		createdAt: parseTime(fields["createdAt"]),
		updatedAt: parseTime(fields["updatedAt"]),
	}, true
}

// parseTime accepts ISO-8601 strings and decoded YAML timestamps.
// Anything else yields the zero time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		return core.ParseTime(t)
	}
	return time.Time{}
}
