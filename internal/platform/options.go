package platform

import (
	"log/slog"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for the jot service.
type options struct {
	storage     core.Storage
	logger      *slog.Logger
	adapter     string
	key         string
	config      map[string]interface{}
	serviceOpts []core.ServiceOption
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		storage: nil,
		logger:  nil,
		adapter: "fs",
		key:     core.DefaultKey,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage backend (e.g. mock).
// If provided, the adapter selection is skipped.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithAdapter selects the storage backend by name: "fs", "memory", "redis" or "sqlite".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithKey sets the storage key holding the collection. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithMustExist requires the fs storage directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode for the fs adapter.
// Writes return core.ErrReadOnly and the directory is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithEventBuffer sets the size of the watch channel. Zero means default (16).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithRedisAuth sets the password and database index of the redis adapter.
func WithRedisAuth(password string, db int) Option {
	return func(o *options) {
		o.config["redis_password"] = password
		o.config["redis_db"] = db
	}
}

// WithRedisPrefix namespaces every redis key (e.g. "jot:").
func WithRedisPrefix(prefix string) Option {
	return func(o *options) {
		o.config["redis_prefix"] = prefix
	}
}

// WithServiceOptions forwards options to core.NewService (clock, id generator).
func WithServiceOptions(opts ...core.ServiceOption) Option {
	return func(o *options) {
		o.serviceOpts = append(o.serviceOpts, opts...)
	}
}
