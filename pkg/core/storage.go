package core

import "context"

// Storage defines the contract for a synchronous key-value string store.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, Redis, SQLite, memory).
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, fully overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}

// Watchable is implemented by storages that can report external changes.
type Watchable interface {
	// Watch emits an event every time the value under key is changed by someone else.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Closer is implemented by storages holding connections or handles.
type Closer interface {
	Close() error
}
