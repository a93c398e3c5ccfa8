package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/logger"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the catalog database.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.App.DataPath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// SongRepositoryHandle wraps the song database repository for lifecycle management.
type SongRepositoryHandle struct {
	*songdb.Repository
}

// Shutdown implements do.Shutdownable.
func (h *SongRepositoryHandle) Shutdown() error {
	// The repository persists on every mutation, nothing buffered.
	return nil
}

// ProvideSongRepository provides the song alias database.
func ProvideSongRepository(i do.Injector) (*SongRepositoryHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	repo, err := songdb.NewRepository(cfg.Library.SongDBPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Song database loaded",
		"path", cfg.Library.SongDBPath,
		"aliases", repo.Index().Len(),
	)

	return &SongRepositoryHandle{Repository: repo}, nil
}
