package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/store"
)

// Catalog owns the scanned library catalog: rescans, listing, and search.
type Catalog struct {
	logger  *slog.Logger
	store   *store.Store
	indexer *catalog.Indexer
	songs   *songdb.Repository
	roots   catalog.Roots
	workers int
}

// NewCatalog wires the catalog service.
func NewCatalog(logger *slog.Logger, st *store.Store, indexer *catalog.Indexer, songs *songdb.Repository, roots catalog.Roots, workers int) *Catalog {
	if workers < 1 {
		workers = 1
	}
	return &Catalog{logger: logger, store: st, indexer: indexer, songs: songs, roots: roots, workers: workers}
}

// Rescan walks the library roots, rebuilds the catalog, and persists it.
func (c *Catalog) Rescan(ctx context.Context) ([]domain.CatalogEntry, error) {
	started := time.Now()
	entries, err := c.indexer.Scan(ctx, c.roots)
	if err != nil {
		return nil, err
	}
	if err := c.store.ReplaceCatalog(entries); err != nil {
		return nil, err
	}
	c.logger.Info("catalog rebuilt",
		slog.Int("entries", len(entries)),
		slog.Duration("took", time.Since(started)))
	return entries, nil
}

// List returns the persisted catalog in listing order.
func (c *Catalog) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	entries, err := c.store.ListCatalog()
	if err != nil {
		return nil, err
	}
	catalog.SortEntries(entries)
	return entries, nil
}

// Search evaluates a query against the persisted catalog. Song criteria
// load each candidate's tracks through the indexer.
func (c *Catalog) Search(ctx context.Context, q catalog.Query) ([]domain.CatalogEntry, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	searcher := catalog.NewSearcher(c.songs.Index(), c.loadTracks, c.workers)
	return searcher.Search(ctx, entries, q)
}

func (c *Catalog) loadTracks(ctx context.Context, entry domain.CatalogEntry) ([]domain.TrackDescriptor, error) {
	return c.indexer.Tracks(ctx, entry.FolderPath)
}
