package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service handles the business logic for notes.
// Every call re-reads the collection from the Store; nothing is cached between calls.
type Service struct {
	mu     sync.Mutex
	store  *Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator used by NewNote.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService creates a new Service.
func NewService(store *Store, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// NewNote builds a note with a fresh ID and both timestamps set to now.
// The note is not persisted.
func (s *Service) NewNote(title, content string) Note {
	now := s.Now()
	return Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ListNotes returns every note, most recently modified first.
// Notes sharing the same UpdatedAt are ordered by ID.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	sortByRecency(notes)
	return notes, nil
}

// GetNote looks a note up by exact ID.
func (s *Service) GetNote(ctx context.Context, id string) (Note, bool, error) {
	if id == "" {
		return Note{}, false, ErrEmptyID
	}
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return Note{}, false, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, true, nil
		}
	}
	return Note{}, false, nil
}

// CreateNote appends the note as-is and returns its ID.
// ID collisions are the caller's responsibility.
func (s *Service) CreateNote(ctx context.Context, note Note) (string, error) {
	if note.ID == "" {
		return "", ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.read(ctx)
	if err != nil {
		return "", err
	}
	notes = append(notes, note)
	if err := s.write(ctx, notes); err != nil {
		return "", err
	}

	s.logger.Debug("note created", "id", note.ID)
	return note.ID, nil
}

// UpdateNote replaces every note matching id with note.
// It reports false, without writing, when no note has that id.
func (s *Service) UpdateNote(ctx context.Context, id string, note Note) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(ctx, id, func(Note) Note { return note })
}

// EditNote changes title and content of an existing note and refreshes UpdatedAt.
func (s *Service) EditNote(ctx context.Context, id, title, content string) (Note, bool, error) {
	if id == "" {
		return Note{}, false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var edited Note
	found, err := s.replace(ctx, id, func(n Note) Note {
		n.Title = title
		n.Content = content
		n.Touch(s.Now())
		edited = n
		return n
	})
	return edited, found, err
}

// DeleteNote removes the note matching id.
// It reports false, without writing, when no note has that id.
func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	// DeleteFunc shrinks in place; len(notes) still reports the old length.
	kept := slices.DeleteFunc(notes, func(n Note) bool { return n.ID == id })
	if len(kept) == len(notes) {
		return false, nil
	}
	if err := s.write(ctx, kept); err != nil {
		return false, err
	}

	s.logger.Debug("note deleted", "id", id)
	return true, nil
}

// ClearAll removes every note.
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, []Note{}); err != nil {
		return err
	}
	s.logger.Info("collection cleared")
	return nil
}

// Watch observes changes made to the collection by other processes, if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	return s.store.Watch(ctx)
}

// replace rewrites every note matching id. CreateNote does not reject
// duplicate ids, so there may be more than one.
func (s *Service) replace(ctx context.Context, id string, fn func(Note) Note) (bool, error) {
	notes, err := s.read(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range notes {
		if notes[i].ID == id {
			notes[i] = fn(notes[i])
			found = true
		}
	}
	if !found {
		return false, nil
	}

	if err := s.write(ctx, notes); err != nil {
		return false, err
	}
	s.logger.Debug("note updated", "id", id)
	return true, nil
}

// read loads and decodes the collection in storage order.
// Undecodable data is logged and treated as an empty collection.
func (s *Service) read(ctx context.Context) ([]Note, error) {
	raw, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		s.logger.Warn("failed to parse notes, using empty collection", "key", s.store.Key(), "error", err)
		return []Note{}, nil
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (s *Service) write(ctx context.Context, notes []Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return s.store.Save(ctx, string(data))
}

func sortByRecency(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Close releases the storage when it holds connections.
func (s *Service) Close() error {
	if c, ok := s.store.storage.(Closer); ok {
		return c.Close()
	}
	return nil
}
