package tui

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces bursts of writes into one reload.
const debounce = 150 * time.Millisecond

// Watcher reports changes to a single file. The parent directory is watched
// so that files replaced by rename or rotation are still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	logger *slog.Logger
}

// NewWatcher creates a Watcher for path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{fsw: fsw, path: abs, logger: logger}, nil
}

// Start calls onChange after the file is written, created, removed or
// renamed. It blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, onChange func()) {
	defer w.fsw.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				timer.Reset(debounce)
			}
		case <-timer.C:
			onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}
