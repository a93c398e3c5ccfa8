// Package songdb manages the on-disk song database: official titles and
// their known aliases, grouped by artist, plus the in-memory alias index
// built from it.
package songdb

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/tapevault/tapevault-server/internal/errors"
)

// Song is one official title with its known alias spellings.
type Song struct {
	Title   string   `json:"officialTitle"`
	Aliases []string `json:"aliases,omitempty"`
}

// Artist groups songs under one performer.
type Artist struct {
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Database is the JSON document on disk. Songs at the top level is a
// legacy flat list from before artist grouping existed; loaders fold it
// into the index alongside the grouped form.
type Database struct {
	Artists []Artist `json:"artists,omitempty"`
	Songs   []Song   `json:"songs,omitempty"`
}

// Load reads the database file at path. A missing file yields an empty
// database rather than an error so a fresh install works without seeding.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Database{}, nil
		}
		return nil, apperrors.Internal("open song database").WithCause(err)
	}
	defer f.Close()

	var db Database
	if err := json.UnmarshalRead(f, &db); err != nil {
		return nil, apperrors.Validation("song database is not valid JSON").WithCause(err)
	}
	return &db, nil
}

// Save writes the database to path, creating parent directories as needed.
// The write goes through a temp file and rename so readers never observe a
// partial document.
func Save(path string, db *Database) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Internal("create song database directory").WithCause(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".songdb-*.json")
	if err != nil {
		return apperrors.Internal("create song database temp file").WithCause(err)
	}
	defer os.Remove(tmp.Name())

	if err := json.MarshalWrite(tmp, db, jsontext.WithIndent("  ")); err != nil {
		tmp.Close()
		return apperrors.Internal("encode song database").WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Internal("flush song database").WithCause(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.Internal("replace song database").WithCause(err)
	}
	return nil
}

// AllSongs iterates every song in the database, grouped entries first and
// the legacy flat list after, in document order.
func (db *Database) AllSongs() []Song {
	var out []Song
	for _, a := range db.Artists {
		out = append(out, a.Songs...)
	}
	out = append(out, db.Songs...)
	return out
}
