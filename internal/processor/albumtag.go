// Package processor parses folder names and album tag strings into
// structured album descriptors and classifies them by release type.
//
// Every parse degrades locally: text that matches no pattern yields a
// descriptor with whatever fields could be extracted, never an error.
package processor

import (
	"regexp"
	"strings"

	"github.com/tapevault/tapevault-server/internal/domain"
)

// showHeadRE matches the canonical "{date} - {venue} - {city}, {state}" head
// of an album tag. Venue may itself contain hyphens, so the city segment is
// anchored as the last comma-delimited pair.
var showHeadRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*-\s*(.+?)\s*-\s*([^,]+),\s*([A-Za-z]{2})$`)

// hasSpaceBeforeColon reports whether the colon at colonIdx is preceded by
// whitespace. This single character of lookbehind is the only signal that
// separates an official release (" : Name") from a box set (": Name") in
// album tags. Do not fold this into the surrounding regexes.
func hasSpaceBeforeColon(text string, colonIdx int) bool {
	if colonIdx <= 0 || colonIdx >= len(text) || text[colonIdx] != ':' {
		return false
	}
	return text[colonIdx-1] == ' ' || text[colonIdx-1] == '\t'
}

// ParseAlbumTag parses an album tag string into a descriptor. Tags with a
// colon-delimited trailer classify as OfficialRelease or BoxSet depending
// on the spacing before the colon; tags without one are plain Live.
func ParseAlbumTag(text string) domain.AlbumDescriptor {
	text = strings.TrimSpace(text)
	d := domain.AlbumDescriptor{Type: domain.AlbumTypeLive}

	head := text
	if idx := strings.Index(text, ":"); idx >= 0 {
		name := strings.TrimSpace(text[idx+1:])
		if name != "" {
			if hasSpaceBeforeColon(text, idx) {
				d.Type = domain.AlbumTypeOfficialRelease
				d.OfficialRelease = name
			} else {
				d.Type = domain.AlbumTypeBoxSet
				d.BoxSet = name
			}
			head = strings.TrimSpace(text[:idx])
		}
	}

	if m := showHeadRE.FindStringSubmatch(head); m != nil {
		d.Date = m[1]
		d.Venue = m[2]
		d.City = strings.TrimSpace(m[3])
		d.State = strings.ToUpper(m[4])
		return d
	}

	// degrade: keep the date if one leads, stash the rest as venue
	if m := leadingDateRE.FindStringSubmatch(head); m != nil {
		d.Date = m[1]
		d.Venue = strings.TrimSpace(strings.TrimPrefix(head[len(m[0]):], "- "))
	} else {
		d.Venue = head
	}
	return d
}

var leadingDateRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*`)

// studioFolderRE matches the "Album Name (Year)" studio folder convention.
var studioFolderRE = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

// editionRE matches a trailing "[Edition]" marker inside a studio album tag.
var editionRE = regexp.MustCompile(`\[([^\]]+)\]\s*$`)

// ParseStudioFolder parses a studio album folder name, extracting the
// release year when the "(Year)" suffix is present.
func ParseStudioFolder(name string) domain.AlbumDescriptor {
	d := domain.AlbumDescriptor{Type: domain.AlbumTypeStudio}
	if m := studioFolderRE.FindStringSubmatch(name); m != nil {
		d.AlbumName = m[1]
		d.ReleaseYear = m[2]
		return d
	}
	d.AlbumName = strings.TrimSpace(name)
	return d
}

// StudioEdition extracts a trailing "[Edition]" marker from an album tag.
// Returns "" when none is present.
func StudioEdition(albumTag string) string {
	if m := editionRE.FindStringSubmatch(strings.TrimSpace(albumTag)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
