package songdb

import (
	"sort"
	"strings"
)

// AliasIndex maps case-folded alias spellings to official song titles.
// Build order is document order, and a later entry for the same key wins,
// so corrections appended to the database file take effect without manual
// cleanup of older entries. An index is immutable once built and safe for
// concurrent readers.
type AliasIndex struct {
	byAlias map[string]string
	keys    []string // sorted
}

// NewAliasIndex builds an index from a database. Every song contributes
// its official title as a key plus each of its aliases.
func NewAliasIndex(db *Database) *AliasIndex {
	idx := &AliasIndex{byAlias: make(map[string]string)}
	for _, song := range db.AllSongs() {
		idx.add(song)
	}
	idx.keys = make([]string, 0, len(idx.byAlias))
	for k := range idx.byAlias {
		idx.keys = append(idx.keys, k)
	}
	sort.Strings(idx.keys)
	return idx
}

func (idx *AliasIndex) add(song Song) {
	title := strings.TrimSpace(song.Title)
	if title == "" {
		return
	}
	idx.byAlias[foldKey(title)] = title
	for _, alias := range song.Aliases {
		if a := strings.TrimSpace(alias); a != "" {
			idx.byAlias[foldKey(a)] = title
		}
	}
}

// Lookup resolves a candidate spelling to its official title.
// Matching is case-insensitive and ignores surrounding whitespace.
func (idx *AliasIndex) Lookup(candidate string) (string, bool) {
	official, ok := idx.byAlias[foldKey(candidate)]
	return official, ok
}

// Keys returns every alias key, case-folded and sorted ascending.
// The slice is shared across calls and must not be mutated.
func (idx *AliasIndex) Keys() []string {
	return idx.keys
}

// Len reports how many distinct alias keys the index holds.
func (idx *AliasIndex) Len() int {
	return len(idx.byAlias)
}

func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
