// Package fs implements core.Storage on top of the local filesystem.
// Every key is a JSON file inside the storage directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// FileExt is the extension appended to every key.
const FileExt = ".json"

// Storage implements core.Storage using one file per key.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	lastWritten   map[string]string
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	EventBuffer  int           // Size of the Watch channel. Zero means 16.
	Debounce     time.Duration // Quiet period before a change is reported. Zero means 50ms.
	ErrorHandler func(error)   // Receives watcher runtime errors.
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Storage{
		Path:        config.Path,
		config:      config,
		lastWritten: make(map[string]string),
	}
}

// Initialize ensures the storage directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Get reads the file backing key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	filename, err := s.filename(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file backing key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := replaceFile(filename, []byte(value), 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastWritten[key] = value
	s.mu.Unlock()

	s.config.Logger.Debug("storage written", "key", key, "bytes", len(value))
	return nil
}

func (s *Storage) filename(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// isSelfWrite reports whether value is what this process last wrote under key.
func (s *Storage) isSelfWrite(key, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	last, ok := s.lastWritten[key]
	return ok && last == value
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
