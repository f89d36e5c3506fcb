// Package memory provides an in-process core.Storage, used by tests and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Storage keeps values in a map.
type Storage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStorage creates an empty in-memory storage.
func NewStorage() *Storage {
	return &Storage{data: make(map[string]string)}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
