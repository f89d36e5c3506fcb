package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/redis"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

// Adapters lists the storage backends known to Init.
var Adapters = []string{"fs", "memory", "redis", "sqlite"}

// New creates a ready-to-use service.
//
//	svc, err := jot.New("./.jot", jot.WithAdapter("fs"))
//
// The URI argument is adapter-specific: a directory for "fs", an address for
// "redis", a DSN for "sqlite"; "memory" ignores it.
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := initStorage(context.Background(), uri, o)
	if err != nil {
		return nil, err
	}
	return core.NewService(core.NewStore(storage, o.key), o.logger, o.serviceOpts...), nil
}

// Init opens the storage backend selected by the options.
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStorage(context.Background(), uri, o)
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if o.logger == nil {
		o.logger = slog.Default()
	}

	// 1. Check for injected storage
	if o.storage != nil {
		return o.storage, nil
	}

	// 2. Initialize based on Adapter
	switch o.adapter {
	case "fs":
		return initFS(ctx, uri, o)
	case "memory":
		return memory.NewStorage(), nil
	case "redis":
		return initRedis(ctx, uri, o)
	case "sqlite":
		if uri == "" {
			return nil, fmt.Errorf("sqlite adapter requires a DSN")
		}
		return sqlite.Open(ctx, uri)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(ctx context.Context, path string, o *options) (core.Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("fs adapter requires a directory")
	}

	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	storage := fs.NewStorage(fs.Config{
		Path:         path,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		EventBuffer:  eventBuffer,
		ErrorHandler: errorHandler,
	})
	if err := storage.Initialize(ctx); err != nil {
		return nil, err
	}

	o.logger.Debug("fs storage ready", "path", path, "read_only", readOnly)
	return storage, nil
}

func initRedis(ctx context.Context, addr string, o *options) (core.Storage, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	password, _ := o.config["redis_password"].(string)
	db, _ := o.config["redis_db"].(int)
	prefix, _ := o.config["redis_prefix"].(string)

	return redis.NewStorage(ctx, redis.Config{
		Addr:     addr,
		Password: password,
		DB:       db,
		Prefix:   prefix,
		Logger:   o.logger,
	})
}
