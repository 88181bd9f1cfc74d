package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a single file. It watches the parent
// directory so that editors which save by renaming a temp file over the
// original are still picked up.
type FileWatcher struct {
	path      string
	debouncer *Debouncer
	logger    *slog.Logger
}

// NewFileWatcher creates a watcher for path. Events are coalesced with d.
func NewFileWatcher(path string, d *Debouncer, logger *slog.Logger) *FileWatcher {
	if d == nil {
		d = NewDebouncer(DefaultDebounceDuration)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileWatcher{path: filepath.Clean(path), debouncer: d, logger: logger}
}

// Run blocks until ctx is cancelled, calling onChange (debounced) after
// every write, create or rename of the watched file.
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	defer w.debouncer.Cancel()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
			w.debouncer.Trigger(onChange)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
