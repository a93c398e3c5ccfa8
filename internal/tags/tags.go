// Package tags reads embedded metadata from audio files and assembles the
// canonical tag strings written back to the archive.
package tags

import "context"

// Fields is the metadata read from one audio file.
type Fields struct {
	Title       string
	Album       string
	Artist      string
	Year        int
	TrackNumber int
	TrackTotal  int
	DiscNumber  int
	DiscTotal   int
}

// Reader reads tag fields from audio files. Implementations must treat a
// malformed file as an error and leave interpretation to the caller; scan
// loops skip bad files rather than aborting.
type Reader interface {
	ReadFields(ctx context.Context, path string) (Fields, error)
}
