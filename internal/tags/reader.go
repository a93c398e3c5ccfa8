package tags

import (
	"context"
	"os"

	"github.com/dhowden/tag"

	apperrors "github.com/tapevault/tapevault-server/internal/errors"
)

// FileReader reads tags from FLAC and MP3 files on disk.
type FileReader struct{}

// NewFileReader returns the default tag reader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// ReadFields opens the file and decodes whatever tag format it carries.
func (r *FileReader) ReadFields(ctx context.Context, path string) (Fields, error) {
	if err := ctx.Err(); err != nil {
		return Fields{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Fields{}, apperrors.Unavailablef("open audio file %s", path).WithCause(err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return Fields{}, apperrors.Validationf("read tags from %s", path).WithCause(err)
	}

	track, trackTotal := meta.Track()
	disc, discTotal := meta.Disc()
	return Fields{
		Title:       meta.Title(),
		Album:       meta.Album(),
		Artist:      meta.Artist(),
		Year:        meta.Year(),
		TrackNumber: track,
		TrackTotal:  trackTotal,
		DiscNumber:  disc,
		DiscTotal:   discTotal,
	}, nil
}
