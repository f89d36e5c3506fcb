// Package redis implements core.Storage on a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aretw0/jot/pkg/core"
)

const (
	ErrorFailedToGet   = "failed to get value from redis"
	ErrorFailedToSet   = "failed to set value in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// Config holds the connection settings.
type Config struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string // Prepended to every key, e.g. "jot:".
	DialTimeout time.Duration
	Logger      *slog.Logger
}

// Storage implements core.Storage using plain Redis strings without TTL.
type Storage struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewStorage connects to Redis and verifies the connection with PING.
func NewStorage(ctx context.Context, cfg Config) (*Storage, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{client: client, prefix: cfg.Prefix, logger: logger}, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error(ErrorFailedToGet, "key", key, "error", err)
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.Error(ErrorFailedToSet, "key", key, "error", err)
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Storage) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "redis"
}

var _ core.Storage = (*Storage)(nil)
var _ core.Closer = (*Storage)(nil)
