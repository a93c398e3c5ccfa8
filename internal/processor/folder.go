package processor

import (
	"regexp"
	"strings"

	"github.com/tapevault/tapevault-server/internal/domain"
)

// officialSeriesRE recognizes known official-release series tokens inside a
// folder name, optionally followed by volume and number suffixes.
var officialSeriesRE = regexp.MustCompile(`(?i)\b((?:Dave's Picks|Dick's Picks|Road Trips|Download Series|Here Comes Sunshine|Spring \d{4})(?:\s+Vol(?:ume|\.)?\s*\d+)?(?:\s*,?\s*No\.?\s*\d+)?)`)

// isoDateRE matches an ISO performance date token.
var isoDateRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Location pattern cascade, tried in order on whatever text remains after
// series tokens, dates, and artist prefixes are removed.
var (
	venueCityStateRE = regexp.MustCompile(`^(.+?)\s+-\s+([^,]+),\s*([A-Za-z]{2})$`) // Venue - City, ST
	cityStateVenueRE = regexp.MustCompile(`^([^,]+),\s*([A-Za-z]{2})\s+-\s+(.+)$`)  // City, ST - Venue
)

// ParseResult is a folder-name parse plus whatever text the cascade could
// not place, kept for display fallback and diagnostics.
type ParseResult struct {
	Descriptor domain.AlbumDescriptor
	Dates      []string // every ISO date found, first is Descriptor.Date
	Leftover   string   // text no pattern could place
}

// FolderParser parses show folder names into album descriptors.
// The artist list drives leading-prefix stripping: a "{Artist} - " prefix
// is removed only when the prefix names a known artist.
type FolderParser struct {
	artists []string
}

// NewFolderParser builds a parser that strips the given artist names when
// they lead a folder name.
func NewFolderParser(artists ...string) *FolderParser {
	return &FolderParser{artists: artists}
}

// Parse runs the folder-name cascade:
//
//  1. extract a known official-release series token,
//  2. extract ISO dates (first one becomes the descriptor date),
//  3. strip a leading known-artist prefix,
//  4. map the remaining text to venue/city/state.
func (p *FolderParser) Parse(name string) ParseResult {
	res := ParseResult{Descriptor: domain.AlbumDescriptor{Type: domain.AlbumTypeLive}}
	text := strings.TrimSpace(name)

	if m := officialSeriesRE.FindStringIndex(text); m != nil {
		res.Descriptor.OfficialRelease = strings.TrimSpace(text[m[0]:m[1]])
		text = text[:m[0]] + text[m[1]:]
	}

	res.Dates = isoDateRE.FindAllString(text, -1)
	if len(res.Dates) > 0 {
		res.Descriptor.Date = res.Dates[0]
		text = isoDateRE.ReplaceAllString(text, "")
	}

	text = cleanSeparators(text)
	text = p.stripArtistPrefix(text)

	switch {
	case text == "":
	case venueCityStateRE.MatchString(text):
		m := venueCityStateRE.FindStringSubmatch(text)
		res.Descriptor.Venue = m[1]
		res.Descriptor.City = strings.TrimSpace(m[2])
		res.Descriptor.State = strings.ToUpper(m[3])
	case cityStateVenueRE.MatchString(text):
		m := cityStateVenueRE.FindStringSubmatch(text)
		res.Descriptor.City = strings.TrimSpace(m[1])
		res.Descriptor.State = strings.ToUpper(m[2])
		res.Descriptor.Venue = m[3]
	default:
		parts := splitLocation(text)
		switch len(parts) {
		case 1:
			res.Descriptor.Venue = parts[0]
		case 2:
			res.Descriptor.City = parts[0]
			res.Descriptor.State = parts[1]
		case 3:
			res.Descriptor.Venue = parts[0]
			res.Descriptor.City = parts[1]
			res.Descriptor.State = parts[2]
		default:
			res.Leftover = text
		}
	}
	return res
}

// stripArtistPrefix removes a leading "{Artist} - " when the prefix matches
// a configured artist name case-insensitively.
func (p *FolderParser) stripArtistPrefix(text string) string {
	head, rest, found := strings.Cut(text, " - ")
	if !found {
		return text
	}
	for _, artist := range p.artists {
		if strings.EqualFold(strings.TrimSpace(head), artist) {
			return strings.TrimSpace(rest)
		}
	}
	return text
}

// cleanSeparators tidies the debris left after token removal: doubled
// separators, and separators stranded at either end.
func cleanSeparators(text string) string {
	for {
		next := strings.ReplaceAll(text, "- -", "-")
		next = strings.ReplaceAll(next, ", ,", ",")
		next = strings.ReplaceAll(next, "  ", " ")
		if next == text {
			break
		}
		text = next
	}
	return strings.Trim(text, " -,")
}

// splitLocation splits remaining location text on " - " then ", ".
func splitLocation(text string) []string {
	var parts []string
	for _, seg := range strings.Split(text, " - ") {
		for _, sub := range strings.Split(seg, ", ") {
			if sub = strings.TrimSpace(sub); sub != "" {
				parts = append(parts, sub)
			}
		}
	}
	return parts
}
