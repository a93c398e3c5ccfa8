// Package normalize cleans raw track titles and resolves them to official
// song titles via the alias index.
//
// Sanitization is an ordered cascade: segue detection happens on the raw
// string before any stripping, and date-bearing suffixes are removed before
// trailing segue glyphs so neither can mask the other. The cascade order is
// data (see suffixRules) and is covered by tests.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

// Result is the outcome of sanitizing one raw title.
type Result struct {
	Title        string // cleaned title, suitable for alias lookup
	EmbeddedDate string // yyyy-MM-dd extracted from a suffix, or ""
	HasSegue     bool   // segue marker present on the raw string
}

// segueGlyphRE matches segue markers anywhere in a title: a ">" optionally
// preceded by a hyphen or en-dash, the arrow glyph, or a bracketed ">".
var segueGlyphRE = regexp.MustCompile(`[-–]?>|→|\[>\]`)

// trailingSegueRE matches a segue marker at the end of a partially-cleaned
// title, including surrounding whitespace.
var trailingSegueRE = regexp.MustCompile(`\s*(?:(?:[-–]\s*)?>|→|\[>\])\s*$`)

// trackNumberPrefixRE matches leading track numbers like "01 ", "1. ", "001-".
var trackNumberPrefixRE = regexp.MustCompile(`^\d+[\s.\-_]+`)

// apostrophes maps curly quote and backtick variants to a plain ASCII
// apostrophe so alias lookups do not depend on the ripper's keyboard.
var apostrophes = strings.NewReplacer(
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"ʼ", "'", // modifier letter apostrophe
	"`", "'",
)

// datePolicy says how a suffix rule yields an embedded date.
type datePolicy int

const (
	dateNone  datePolicy = iota // rule carries no date
	dateGroup                   // date is capture group 1
	dateScan                    // scan the matched text for any date token
)

// suffixRule is one entry in the trailing-pattern cascade.
type suffixRule struct {
	name   string
	re     *regexp.Regexp
	policy datePolicy
}

// suffixRules is the ordered trailing-pattern cascade. Order matters:
// more specific date suffixes are tried before generic bracketed forms,
// and every rule anchors at end of string so mid-title text survives.
var suffixRules = []suffixRule{
	{"filler", regexp.MustCompile(`\s*\(Filler:\s*(\d{4}-\d{2}-\d{2})\s*-\s*[^)]*\)\s*$`), dateGroup},
	{"us-date-paren", regexp.MustCompile(`\s*\((\d{1,2}/\d{1,2}/\d{2,4})\s+[^)]*\)\s*$`), dateGroup},
	{"iso-date-location", regexp.MustCompile(`\s*\((\d{4}-\d{2}-\d{2})\s*-\s*[^)]+\)\s*$`), dateGroup},
	{"iso-date", regexp.MustCompile(`\s*→?\s*\((\d{4}-\d{2}-\d{2})\)\s*$`), dateGroup},
	{"remaster", regexp.MustCompile(`\s*[\[(](?:\d{4}\s+)?[Rr]emaster(?:ed)?[\])]\s*$`), dateNone},
	{"us-date-bracket-open", regexp.MustCompile(`\s*\[(\d{1,2}/\d{1,2}/\d{2,4}),.*$`), dateGroup},
	{"live-at-bracket", regexp.MustCompile(`\s*\[[Ll]ive\s+(?:at|in)\b[^\]]*\]\s*$`), dateScan},
	{"live-at-paren", regexp.MustCompile(`\s*\([Ll]ive\s+(?:at|in)\b[^)]*\)\s*$`), dateScan},
	{"venue-date-bracket", regexp.MustCompile(`\s*\[[^\]]*?(\d{1,2}/\d{1,2}/\d{2,4})\]\s*$`), dateGroup},
}

// dateTokenRE finds a date token (ISO or US form) inside matched suffix text.
var dateTokenRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}`)

// Sanitize cleans a raw tag title. The step order is a contract:
//
//  1. detect segue markers on the raw string,
//  2. strip tape-splice markers ("//") and collapse the gap they leave,
//  3. normalize apostrophe variants,
//  4. strip leading track numbers,
//  5. strip trailing date/venue/remaster suffixes in cascade order,
//     extracting the embedded date from the first date-bearing match,
//  6. strip a trailing segue glyph from the remainder.
func Sanitize(raw string) Result {
	res := Result{HasSegue: segueGlyphRE.MatchString(raw)}

	s := raw
	if strings.Contains(s, "//") {
		// removing the marker leaves its surrounding spaces doubled
		s = strings.ReplaceAll(s, "//", "")
		s = strings.Join(strings.Fields(s), " ")
	}
	s = apostrophes.Replace(s)
	s = trackNumberPrefixRE.ReplaceAllString(s, "")

	for _, rule := range suffixRules {
		m := rule.re.FindStringSubmatchIndex(s)
		if m == nil {
			continue
		}
		matched := s[m[0]:m[1]]
		if res.EmbeddedDate == "" {
			switch rule.policy {
			case dateGroup:
				res.EmbeddedDate = NormalizeDate(s[m[2]:m[3]])
			case dateScan:
				if tok := dateTokenRE.FindString(matched); tok != "" {
					res.EmbeddedDate = NormalizeDate(tok)
				}
			}
		}
		s = s[:m[0]]
	}

	s = trailingSegueRE.ReplaceAllString(s, "")
	res.Title = strings.TrimSpace(s)
	return res
}

// dateLayouts are the accepted input forms, tried in order. Two-digit years
// follow Go's time package pivot (69-99 are 19xx, 00-68 are 20xx).
var dateLayouts = []string{"2006-01-02", "1/2/2006", "1/2/06"}

// NormalizeDate converts an ISO or US-style date token to yyyy-MM-dd.
// Returns "" when the token does not parse.
func NormalizeDate(tok string) string {
	tok = strings.TrimSpace(tok)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, tok); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// HasSegueMarker reports whether a title already carries a segue marker.
// Used by the tag writer to avoid doubling markers.
func HasSegueMarker(title string) bool {
	return segueGlyphRE.MatchString(title)
}
