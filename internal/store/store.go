// Package store persists the scanned catalog in a Badger database so the
// server can answer catalog queries between scans without re-walking the
// library.
package store

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tapevault/tapevault-server/internal/domain"
	apperrors "github.com/tapevault/tapevault-server/internal/errors"
)

const catalogPrefix = "catalog:"

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens the catalog database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Unavailable("open catalog database").WithCause(err)
	}
	if logger != nil {
		logger.Info("catalog database opened", "path", path)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing catalog database")
	}
	return s.db.Close()
}

// ReplaceCatalog atomically replaces every stored catalog entry with the
// given set. Called after a full library scan completes.
func (s *Store) ReplaceCatalog(entries []domain.CatalogEntry) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(catalogPrefix)})
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for _, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(catalogPrefix+entry.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Internal("replace catalog").WithCause(err)
	}
	return nil
}

// ListCatalog returns every stored catalog entry in key order.
func (s *Store) ListCatalog() ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(catalogPrefix), PrefetchValues: true, PrefetchSize: 64})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var entry domain.CatalogEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal("list catalog").WithCause(err)
	}
	return entries, nil
}

// GetCatalogEntry fetches one entry by ID.
func (s *Store) GetCatalogEntry(id string) (domain.CatalogEntry, error) {
	var entry domain.CatalogEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(catalogPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entry, apperrors.NotFoundf("catalog entry %s", id)
	}
	if err != nil {
		return entry, apperrors.Internal("get catalog entry").WithCause(err)
	}
	return entry, nil
}

// FindByFolder fetches the entry whose folder path matches, if any.
func (s *Store) FindByFolder(folderPath string) (domain.CatalogEntry, bool, error) {
	entries, err := s.ListCatalog()
	if err != nil {
		return domain.CatalogEntry{}, false, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.FolderPath, folderPath) {
			return e, true, nil
		}
	}
	return domain.CatalogEntry{}, false, nil
}
