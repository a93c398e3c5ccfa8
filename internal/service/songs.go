package service

import (
	"log/slog"

	"github.com/tapevault/tapevault-server/internal/songdb"
)

// Songs manages the curated song database.
type Songs struct {
	logger *slog.Logger
	repo   *songdb.Repository
}

// NewSongs wires the song service.
func NewSongs(logger *slog.Logger, repo *songdb.Repository) *Songs {
	return &Songs{logger: logger, repo: repo}
}

// Titles returns every official title, sorted.
func (s *Songs) Titles() []string {
	return s.repo.Titles()
}

// Artists returns the grouped artist/song view.
func (s *Songs) Artists() []songdb.Artist {
	return s.repo.Artists()
}

// Add records a song with optional aliases. The alias index is rebuilt
// before the call returns, so subsequent lookups see the new entries.
func (s *Songs) Add(artist, title string, aliases []string) error {
	return s.repo.AddSong(artist, title, aliases)
}

// AddAlias attaches an alias to an existing song.
func (s *Songs) AddAlias(title, alias string) error {
	return s.repo.AddAlias(title, alias)
}

// Reload re-reads the database file, picking up external edits.
func (s *Songs) Reload() error {
	return s.repo.Reload()
}
