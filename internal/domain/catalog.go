package domain

// CatalogEntry is the denormalized catalog projection of one album folder.
// It carries the AlbumDescriptor fields plus what the indexer counted and,
// for official releases, the sets of all performance dates and venues found
// across the folder's tracks (a single release may compile multiple shows).
type CatalogEntry struct {
	ID         string          `json:"id"`
	Descriptor AlbumDescriptor `json:"descriptor"`
	TrackCount int             `json:"trackCount"`
	FolderPath string          `json:"folderPath"`
	FolderName string          `json:"folderName"`

	// Official releases only: every date/venue mentioned in track titles.
	ContainedDates  []string `json:"containedDates,omitempty"`
	ContainedVenues []string `json:"containedVenues,omitempty"`
}

// Year returns the four-digit year of the entry's date, or the studio
// release year, or empty when neither is known.
func (e CatalogEntry) Year() string {
	if e.Descriptor.Type == AlbumTypeStudio {
		return e.Descriptor.ReleaseYear
	}
	if len(e.Descriptor.Date) >= 4 {
		return e.Descriptor.Date[:4]
	}
	return ""
}
