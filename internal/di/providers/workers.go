package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/logger"
	"github.com/tapevault/tapevault-server/internal/service"
	"github.com/tapevault/tapevault-server/internal/watcher"
)

// LibraryWatcherHandle wraps the filesystem watcher with its context for
// lifecycle management. Watcher is nil when watching is disabled.
type LibraryWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *LibraryWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Stop()
}

// ProvideLibraryWatcher provides the library filesystem watcher.
func ProvideLibraryWatcher(i do.Injector) (*LibraryWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Scan.WatchLibrary {
		log.Info("Library watching disabled by configuration")
		return &LibraryWatcherHandle{}, nil
	}

	catalogService := do.MustInvoke[*service.Catalog](i)

	rescan := func(ctx context.Context) error {
		_, err := catalogService.Rescan(ctx)
		return err
	}

	w, err := watcher.New(log.Logger, rescan, cfg.Scan.RescanInterval)
	if err != nil {
		return nil, err
	}

	if err := w.Watch(cfg.Library.Path); err != nil {
		return nil, err
	}
	if cfg.Library.OfficialPath != "" {
		if err := w.Watch(cfg.Library.OfficialPath); err != nil {
			log.Warn("Official root not watchable", "path", cfg.Library.OfficialPath, "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("Library watcher stopped", "error", err)
		}
	}()

	log.Info("Library watcher started", "path", cfg.Library.Path)

	return &LibraryWatcherHandle{Watcher: w, cancel: cancel}, nil
}
