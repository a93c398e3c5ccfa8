package songdb

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "github.com/tapevault/tapevault-server/internal/errors"
)

// state is one immutable snapshot of the database and its index.
// Readers grab the current snapshot and never see a half-built index.
type state struct {
	db  *Database
	idx *AliasIndex
}

// Repository owns the song database file. Reads go through an atomic
// snapshot pointer; writes rebuild a fresh snapshot under a mutex and
// swap it in after the file write succeeds.
type Repository struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[state]
	mu      sync.Mutex // serializes writers
}

// NewRepository loads the database at path and builds the initial index.
func NewRepository(path string, logger *slog.Logger) (*Repository, error) {
	r := &Repository{path: path, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the database file and swaps in a freshly built index.
func (r *Repository) Reload() error {
	db, err := Load(r.path)
	if err != nil {
		return err
	}
	st := &state{db: db, idx: NewAliasIndex(db)}
	r.current.Store(st)
	r.logger.Debug("song database loaded",
		slog.String("path", r.path),
		slog.Int("aliases", st.idx.Len()))
	return nil
}

// Index returns the current alias index snapshot.
func (r *Repository) Index() *AliasIndex {
	return r.current.Load().idx
}

// Titles returns every official title, sorted ascending.
func (r *Repository) Titles() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, song := range r.current.Load().db.AllSongs() {
		title := strings.TrimSpace(song.Title)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	sort.Strings(out)
	return out
}

// Artists returns the grouped view of the database.
func (r *Repository) Artists() []Artist {
	return r.current.Load().db.Artists
}

// AddSong records a new official title with optional aliases under the
// named artist, persists the file, and swaps in a rebuilt index. Adding a
// title that already exists for that artist is a no-op.
func (r *Repository) AddSong(artist, title string, aliases []string) error {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if title == "" {
		return apperrors.Validation("song title is required")
	}
	if artist == "" {
		return apperrors.Validation("artist name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// deep-copy so the published snapshot stays immutable
	old := r.current.Load().db
	db := cloneDatabase(old)

	ai := -1
	for i := range db.Artists {
		if strings.EqualFold(db.Artists[i].Name, artist) {
			ai = i
			break
		}
	}
	if ai == -1 {
		db.Artists = append(db.Artists, Artist{Name: artist})
		ai = len(db.Artists) - 1
	}
	for _, song := range db.Artists[ai].Songs {
		if strings.EqualFold(song.Title, title) {
			return nil
		}
	}
	db.Artists[ai].Songs = append(db.Artists[ai].Songs, Song{Title: title, Aliases: aliases})

	if err := Save(r.path, db); err != nil {
		return err
	}
	r.current.Store(&state{db: db, idx: NewAliasIndex(db)})
	r.logger.Info("song added",
		slog.String("artist", artist),
		slog.String("title", title),
		slog.Int("aliases", len(aliases)))
	return nil
}

// AddAlias appends an alias to an existing official title and persists.
func (r *Repository) AddAlias(title, alias string) error {
	title = strings.TrimSpace(title)
	alias = strings.TrimSpace(alias)
	if title == "" || alias == "" {
		return apperrors.Validation("title and alias are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	db := cloneDatabase(r.current.Load().db)
	found := false
	visit := func(songs []Song) {
		for i := range songs {
			if !strings.EqualFold(songs[i].Title, title) {
				continue
			}
			found = true
			for _, a := range songs[i].Aliases {
				if strings.EqualFold(a, alias) {
					return
				}
			}
			songs[i].Aliases = append(songs[i].Aliases, alias)
			return
		}
	}
	for i := range db.Artists {
		visit(db.Artists[i].Songs)
		if found {
			break
		}
	}
	if !found {
		visit(db.Songs)
	}
	if !found {
		return apperrors.NotFoundf("song %q", title)
	}

	if err := Save(r.path, db); err != nil {
		return err
	}
	r.current.Store(&state{db: db, idx: NewAliasIndex(db)})
	return nil
}

func cloneDatabase(db *Database) *Database {
	out := &Database{
		Artists: make([]Artist, len(db.Artists)),
		Songs:   cloneSongs(db.Songs),
	}
	for i, a := range db.Artists {
		out.Artists[i] = Artist{Name: a.Name, Songs: cloneSongs(a.Songs)}
	}
	return out
}

func cloneSongs(songs []Song) []Song {
	out := make([]Song, len(songs))
	for i, s := range songs {
		out[i] = Song{Title: s.Title, Aliases: append([]string(nil), s.Aliases...)}
	}
	return out
}
