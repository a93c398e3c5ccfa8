package normalize

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Index is the alias lookup surface the matcher resolves against.
// Lookup is case-insensitive. Keys returns every alias key, case-folded
// and sorted ascending.
type Index interface {
	Lookup(candidate string) (official string, ok bool)
	Keys() []string
}

// dashes maps dash lookalikes to a plain ASCII hyphen.
var dashes = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"─", "-", // box drawing
)

// matchSuffixes are decorations a ripper appends that never change which
// song a title refers to.
var matchSuffixes = []string{" (1)", " (2)", " Reprise", " reprise"}

func stripMatchSuffixes(s string) string {
	for _, suf := range matchSuffixes {
		s = strings.ReplaceAll(s, suf, "")
	}
	return strings.TrimSpace(s)
}

// Match resolves a sanitized title to its official song title. It tries
// exact lookups over four variants in order (as-is, dash-normalized, and
// each with repeat/reprise suffixes removed) before falling back to a
// bounded fuzzy match. Returns ok=false when nothing qualifies.
func Match(title string, idx Index) (string, bool) {
	base := strings.TrimSpace(title)
	if base == "" {
		return "", false
	}
	variants := []string{
		base,
		dashes.Replace(base),
		stripMatchSuffixes(base),
		stripMatchSuffixes(dashes.Replace(base)),
	}
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if official, ok := idx.Lookup(v); ok {
			return official, true
		}
	}
	return fuzzyMatch(base, idx)
}

// fuzzyMatch scans the full key set for the closest alias within a bound
// of min(2, 20% of the key length). Keys are visited in sorted order and
// only a strictly smaller distance displaces the current best, so ties
// resolve to the lexicographically smallest key deterministically.
func fuzzyMatch(title string, idx Index) (string, bool) {
	query := strings.ToLower(title)
	qlen := len([]rune(query))

	best := -1
	bestKey := ""
	for _, key := range idx.Keys() {
		klen := len([]rune(key))
		limit := klen / 5
		if limit > 2 {
			limit = 2
		}
		diff := qlen - klen
		if diff < 0 {
			diff = -diff
		}
		if diff > limit {
			continue
		}
		d := levenshtein.ComputeDistance(query, key)
		if d <= limit && (best == -1 || d < best) {
			best = d
			bestKey = key
		}
	}
	if best == -1 {
		return "", false
	}
	return idx.Lookup(bestKey)
}
