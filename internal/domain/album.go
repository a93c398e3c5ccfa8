// Package domain defines the core types of the TapeVault archive: albums,
// tracks, and catalog entries. Types here carry no behavior beyond
// assembling the canonical string forms used in tags and folder names.
package domain

import "fmt"

// AlbumType classifies an album folder in the archive.
type AlbumType string

// Album types in catalog sort order (Live, OfficialRelease, Studio).
const (
	AlbumTypeLive            AlbumType = "live"
	AlbumTypeStudio          AlbumType = "studio"
	AlbumTypeOfficialRelease AlbumType = "official_release"
	AlbumTypeBoxSet          AlbumType = "box_set"
)

// SortRank returns the fixed ordering used for catalog listing.
// Box sets sort with official releases; they differ only in tag convention.
func (t AlbumType) SortRank() int {
	switch t {
	case AlbumTypeLive:
		return 0
	case AlbumTypeOfficialRelease, AlbumTypeBoxSet:
		return 1
	case AlbumTypeStudio:
		return 2
	default:
		return 3
	}
}

// AlbumDescriptor is the structured representation of one album/show's
// classification and identifying fields. Only the fields relevant to Type
// are meaningful; consumers ignore the rest.
type AlbumDescriptor struct {
	Type AlbumType `json:"type"`

	// Live / OfficialRelease / BoxSet fields.
	Date            string `json:"date,omitempty"` // yyyy-MM-dd
	Venue           string `json:"venue,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	OfficialRelease string `json:"officialRelease,omitempty"` // Live/OfficialRelease
	BoxSet          string `json:"boxSet,omitempty"`          // BoxSet

	// Studio fields.
	AlbumName   string `json:"albumName,omitempty"`
	ReleaseYear string `json:"releaseYear,omitempty"`
	Edition     string `json:"edition,omitempty"`
}

// AlbumTitle assembles the canonical album tag string.
//
// Live shows:          "1977-05-08 - Barton Hall - Ithaca, NY"
// Official releases:   "... : Dave's Picks Volume 28"  (space before colon)
// Box sets:            "...: Enjoying the Ride"        (no space before colon)
// Studio albums:       "American Beauty (1970)"
//
// The colon spacing is load-bearing: it is the only signal that
// distinguishes a box set from an official release when parsing back.
func (d AlbumDescriptor) AlbumTitle() string {
	if d.Type == AlbumTypeStudio {
		if d.ReleaseYear != "" {
			return fmt.Sprintf("%s (%s)", d.AlbumName, d.ReleaseYear)
		}
		return d.AlbumName
	}

	base := fmt.Sprintf("%s - %s - %s, %s", d.Date, d.Venue, d.City, d.State)
	switch {
	case d.Type == AlbumTypeBoxSet && d.BoxSet != "":
		return fmt.Sprintf("%s: %s", base, d.BoxSet)
	case d.OfficialRelease != "":
		return fmt.Sprintf("%s : %s", base, d.OfficialRelease)
	default:
		return base
	}
}

// FolderName assembles the canonical library folder name for a show.
// Shows without a state drop the trailing ", State" segment.
func (d AlbumDescriptor) FolderName() string {
	venue := d.Venue
	if venue == "" {
		venue = "Unknown Venue"
	}
	city := d.City
	if city == "" {
		city = "Unknown City"
	}
	if d.State == "" {
		return fmt.Sprintf("%s - %s - %s", d.Date, venue, city)
	}
	return fmt.Sprintf("%s - %s - %s, %s", d.Date, venue, city, d.State)
}

// Location returns the "City, State" display form, tolerating missing parts.
func (d AlbumDescriptor) Location() string {
	switch {
	case d.City != "" && d.State != "":
		return d.City + ", " + d.State
	case d.City != "":
		return d.City
	default:
		return d.State
	}
}
