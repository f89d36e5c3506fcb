package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	ReadOnly      bool       `json:"read_only"`
	Keys          []string   `json:"keys,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.lastWritten))
	for k := range s.lastWritten {
		keys = append(keys, k)
	}

	return StorageState{
		Path:          s.Path,
		ReadOnly:      s.config.ReadOnly,
		Keys:          keys,
		WatcherActive: s.watcherActive,
		LastEvent:     s.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Storage) recordEvent(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEvent = &at
}
