// Package service orchestrates the engine: folder normalization, catalog
// scanning and search, song database management, and import planning.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/normalize"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/tags"
)

// seguePairs lists song pairs that are practically always performed as a
// segue. When two adjacent tracks form a pair, the first is marked as
// seguing even if its title carries no glyph.
var seguePairs = map[string][]string{
	"Scarlet Begonias":    {"Fire on the Mountain"},
	"China Cat Sunflower": {"I Know You Rider"},
	"Help on the Way":     {"Slipknot!"},
	"Slipknot!":           {"Franklin's Tower"},
	"Lost Sailor":         {"Saint of Circumstance"},
	"Estimated Prophet":   {"Eyes of the World"},
	"Drums":               {"Space"},
	"Not Fade Away":       {"Goin' Down the Road Feeling Bad"},
}

// NormalizedTrack is one track's normalization outcome plus the tag title
// that would be written back.
type NormalizedTrack struct {
	Track         domain.TrackDescriptor
	Matched       bool
	ProposedTitle string
}

// FolderPreview is the result of normalizing one show folder.
type FolderPreview struct {
	FolderPath    string
	Descriptor    domain.AlbumDescriptor
	ProposedAlbum string
	Tracks        []NormalizedTrack
	Unmatched     int
}

// Normalizer runs the sanitize/match pass over show folders.
type Normalizer struct {
	logger     *slog.Logger
	indexer    *catalog.Indexer
	classifier *processor.Classifier
	songs      *songdb.Repository
}

// NewNormalizer wires the normalization pass.
func NewNormalizer(logger *slog.Logger, indexer *catalog.Indexer, classifier *processor.Classifier, songs *songdb.Repository) *Normalizer {
	return &Normalizer{logger: logger, indexer: indexer, classifier: classifier, songs: songs}
}

// NormalizeFolder loads a show folder, resolves every track title against
// the alias index, infers segues from the known-pair table, and assembles
// the tag strings a write pass would apply. Unresolved titles keep their
// sanitized form and are counted in Unmatched.
func (n *Normalizer) NormalizeFolder(ctx context.Context, folderPath string) (FolderPreview, error) {
	tracks, err := n.indexer.Tracks(ctx, folderPath)
	if err != nil {
		return FolderPreview{}, err
	}

	idx := n.songs.Index()
	preview := FolderPreview{FolderPath: folderPath}

	for _, track := range tracks {
		if official, ok := normalize.Match(track.SanitizedTitle, idx); ok {
			track.NormalizedTitle = official
		} else {
			preview.Unmatched++
		}
		preview.Tracks = append(preview.Tracks, NormalizedTrack{
			Track:   track,
			Matched: track.NormalizedTitle != "",
		})
	}

	markKnownSegues(preview.Tracks)

	albumTag := ""
	if len(tracks) > 0 {
		albumTag = n.indexer.AlbumTag(ctx, folderPath)
	}
	preview.Descriptor = n.classifier.Classify(folderPath, albumTag)
	preview.ProposedAlbum = preview.Descriptor.AlbumTitle()

	date := preview.Descriptor.Date
	for i := range preview.Tracks {
		tr := &preview.Tracks[i]
		trackDate := tr.Track.PerformanceDate
		if trackDate == "" {
			trackDate = date
		}
		tr.ProposedTitle = tags.FormatTrackTitle(tr.Track.DisplayTitle(), trackDate, tr.Track.HasSegue)
	}

	n.logger.Debug("folder normalized",
		slog.String("folder", folderPath),
		slog.Int("tracks", len(preview.Tracks)),
		slog.Int("unmatched", preview.Unmatched))
	return preview, nil
}

// markKnownSegues sets the segue flag on tracks whose normalized title
// pairs with the next track's in the fixed table.
func markKnownSegues(tracks []NormalizedTrack) {
	for i := 0; i+1 < len(tracks); i++ {
		cur := tracks[i].Track.NormalizedTitle
		next := tracks[i+1].Track.NormalizedTitle
		if cur == "" || next == "" {
			continue
		}
		for _, follower := range seguePairs[cur] {
			if strings.EqualFold(follower, next) {
				tracks[i].Track.HasSegue = true
				break
			}
		}
	}
}
