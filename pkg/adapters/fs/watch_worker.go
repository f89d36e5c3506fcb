package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// Watch reports changes to the file backing key made by other processes.
// Writes issued through this Storage are filtered out. The channel is closed
// once ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	buffer := s.config.EventBuffer
	if buffer <= 0 {
		buffer = 16
	}
	events := make(chan core.Event, buffer)

	w := newWatchWorker(s, key, filename, watcher, events)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.handleWatcherError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

type watchWorker struct {
	storage  *Storage
	key      string
	filename string
	watcher  *fsnotify.Watcher
	events   chan core.Event
	debounce time.Duration
}

func newWatchWorker(s *Storage, key, filename string, watcher *fsnotify.Watcher, events chan core.Event) *watchWorker {
	debounce := s.config.Debounce
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	return &watchWorker{
		storage:  s,
		key:      key,
		filename: filename,
		watcher:  watcher,
		events:   events,
		debounce: debounce,
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.storage.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// Stack traces only at debug level.
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()

	var (
		pending core.EventType
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			eType := w.mapEventType(event)
			if eType == "" {
				continue
			}
			logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			pending = eType
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.emit(ctx, pending)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// mapEventType filters events to the watched file and maps them to domain events.
func (w *watchWorker) mapEventType(event fsnotify.Event) core.EventType {
	if filepath.Clean(event.Name) != w.filename {
		return ""
	}
	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return ""
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	}
	return ""
}

func (w *watchWorker) emit(ctx context.Context, eType core.EventType) {
	data, err := os.ReadFile(w.filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
		eType = core.EventDelete
	case err != nil:
		w.handleWatcherError(fmt.Errorf("failed to read %s: %w", w.filename, err))
		return
	default:
		// A rename onto the file is a replacement, not a deletion.
		eType = core.EventModify
		if w.storage.isSelfWrite(w.key, string(data)) {
			return
		}
	}

	now := time.Now()
	w.storage.recordEvent(now)

	select {
	case w.events <- core.Event{Type: eType, Key: w.key, Timestamp: now.Unix()}:
	case <-ctx.Done():
	}
}

// handleWatcherError processes runtime errors from the watcher.
func (w *watchWorker) handleWatcherError(err error) {
	w.storage.config.Logger.Error("watcher error", "key", w.key, "error", err)
	if w.storage.config.ErrorHandler != nil {
		w.storage.config.ErrorHandler(err)
	}
}
