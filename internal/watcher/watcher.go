// Package watcher monitors the library roots and triggers a catalog rescan
// after changes settle. Events are debounced so a multi-file import causes
// one rescan, not hundreds.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/tapevault/tapevault-server/internal/errors"
)

// RescanFunc rebuilds the catalog. Called from the watcher goroutine.
type RescanFunc func(ctx context.Context) error

// Watcher debounces filesystem events into rescan calls.
type Watcher struct {
	logger   *slog.Logger
	fs       *fsnotify.Watcher
	rescan   RescanFunc
	debounce time.Duration
}

// New creates a watcher. debounce is how long the library must stay quiet
// before a rescan fires; values below one second are raised to one second.
func New(logger *slog.Logger, rescan RescanFunc, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Internal("create filesystem watcher").WithCause(err)
	}
	if debounce < time.Second {
		debounce = time.Second
	}
	return &Watcher{logger: logger, fs: fs, rescan: rescan, debounce: debounce}, nil
}

// Watch adds a root and its current subdirectories to the watch set.
// Directories created later under a watched root are added as they appear.
func (w *Watcher) Watch(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("failed to access path", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Error("failed to add watch", "path", path, "error", err)
			return nil
		}
		w.logger.Debug("added watch", "path", path)
		return nil
	})
}

// Start processes events until the context is canceled. Blocks.
func (w *Watcher) Start(ctx context.Context) error {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	schedule := func() {
		if timer == nil {
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
			return
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// new show folders need their own watch
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fs.Add(event.Name)
				}
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case <-fire:
			w.logger.Info("library changed, rescanning")
			if err := w.rescan(ctx); err != nil {
				w.logger.Error("triggered rescan failed", "error", err)
			}
		}
	}
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() error {
	return w.fs.Close()
}
