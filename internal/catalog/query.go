package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/normalize"
)

// Query is one catalog search. All populated criteria must hold for an
// entry to match.
type Query struct {
	Text     string   // case-insensitive substring over descriptor fields
	Required []string // every song must appear in the track list
	Excluded []string // no song may appear in the track list
	Sequence []string // songs must appear as a contiguous ordered run
}

// NeedsTracks reports whether evaluating the query requires loading and
// normalizing each candidate's tracks, the dominant cost of song search.
func (q Query) NeedsTracks() bool {
	return len(q.Required) > 0 || len(q.Excluded) > 0 || len(q.Sequence) > 0
}

// TrackLoader loads the track list for one catalog entry.
type TrackLoader func(ctx context.Context, entry domain.CatalogEntry) ([]domain.TrackDescriptor, error)

// Searcher evaluates queries against a catalog slice.
type Searcher struct {
	index   normalize.Index
	load    TrackLoader
	workers int
}

// NewSearcher builds a searcher. The alias index resolves query song names
// and track titles to official titles so that spelling variants compare
// equal. workers bounds concurrent track loading.
func NewSearcher(index normalize.Index, load TrackLoader, workers int) *Searcher {
	if workers < 1 {
		workers = 1
	}
	return &Searcher{index: index, load: load, workers: workers}
}

// Search filters entries by q, preserving catalog order.
func (s *Searcher) Search(ctx context.Context, entries []domain.CatalogEntry, q Query) ([]domain.CatalogEntry, error) {
	var candidates []domain.CatalogEntry
	text := strings.TrimSpace(strings.ToLower(q.Text))
	for _, entry := range entries {
		if text == "" || matchesFreeText(entry, text) {
			candidates = append(candidates, entry)
		}
	}
	if !q.NeedsTracks() || len(candidates) == 0 {
		return candidates, nil
	}

	required := s.resolveAll(q.Required)
	excluded := s.resolveAll(q.Excluded)
	sequence := s.resolveAll(q.Sequence)

	keep := make([]bool, len(candidates))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, entry := range candidates {
		g.Go(func() error {
			tracks, err := s.load(gctx, entry)
			if err != nil {
				return err
			}
			titles := s.resolveTracks(tracks)
			ok := containsAll(titles, required) &&
				containsNone(titles, excluded) &&
				containsSequence(titles, sequence)
			mu.Lock()
			keep[i] = ok
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := candidates[:0]
	for i, entry := range candidates {
		if keep[i] {
			out = append(out, entry)
		}
	}
	return out, nil
}

// matchesFreeText reports whether any descriptor field contains the
// case-folded substring.
func matchesFreeText(entry domain.CatalogEntry, text string) bool {
	d := entry.Descriptor
	fields := []string{
		d.Date, d.Venue, d.City, d.State, d.Location(),
		d.AlbumName, d.Edition, d.OfficialRelease, d.BoxSet,
		d.ReleaseYear, entry.Year(), entry.FolderName,
	}
	fields = append(fields, entry.ContainedDates...)
	fields = append(fields, entry.ContainedVenues...)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

// resolve maps a query song name to its comparable form: the official
// title when the alias index knows it, the case-folded input otherwise.
func (s *Searcher) resolve(name string) string {
	if official, ok := normalize.Match(name, s.index); ok {
		return strings.ToLower(official)
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Searcher) resolveAll(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, s.resolve(n))
		}
	}
	return out
}

// resolveTracks produces each track's comparable title, preferring the
// normalized title and falling back through sanitized to raw.
func (s *Searcher) resolveTracks(tracks []domain.TrackDescriptor) []string {
	titles := make([]string, len(tracks))
	for i, tr := range tracks {
		title := tr.NormalizedTitle
		if title == "" {
			if official, ok := normalize.Match(tr.SanitizedTitle, s.index); ok {
				title = official
			} else {
				title = tr.DisplayTitle()
			}
		}
		titles[i] = strings.ToLower(title)
	}
	return titles
}

func containsAll(titles, wanted []string) bool {
	for _, w := range wanted {
		if !containsTitle(titles, w) {
			return false
		}
	}
	return true
}

func containsNone(titles, banned []string) bool {
	for _, b := range banned {
		if containsTitle(titles, b) {
			return false
		}
	}
	return true
}

func containsTitle(titles []string, want string) bool {
	for _, t := range titles {
		if t == want {
			return true
		}
	}
	return false
}

// containsSequence reports whether seq occurs as a contiguous, exactly
// ordered run within titles. An empty sequence always matches.
func containsSequence(titles, seq []string) bool {
	if len(seq) == 0 {
		return true
	}
	if len(seq) > len(titles) {
		return false
	}
	for start := 0; start+len(seq) <= len(titles); start++ {
		match := true
		for i, want := range seq {
			if titles[start+i] != want {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
