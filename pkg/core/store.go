package core

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultKey is the storage key holding the serialized collection.
	DefaultKey = "notes"

	emptyCollection = "[]"
)

// Store holds the whole note collection as one serialized blob under a single key.
type Store struct {
	storage Storage
	key     string
}

// NewStore creates a Store over storage. An empty key falls back to DefaultKey.
func NewStore(storage Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key}
}

// Key returns the storage key used by the store.
func (s *Store) Key() string {
	return s.key
}

// Load returns the serialized collection.
// The first load on a fresh storage initializes the key to an empty collection;
// a read-only storage is left untouched and reads as empty.
func (s *Store) Load(ctx context.Context) (string, error) {
	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to load %q: %w", s.key, err)
	}
	if ok {
		return value, nil
	}

	err = s.storage.Set(ctx, s.key, emptyCollection)
	if err != nil && !errors.Is(err, ErrReadOnly) {
		return "", fmt.Errorf("failed to initialize %q: %w", s.key, err)
	}
	return emptyCollection, nil
}

// Save overwrites the stored blob.
func (s *Store) Save(ctx context.Context, serialized string) error {
	if err := s.storage.Set(ctx, s.key, serialized); err != nil {
		return fmt.Errorf("failed to save %q: %w", s.key, err)
	}
	return nil
}

// Watch forwards to the storage when it supports change notifications.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, s.key)
}
