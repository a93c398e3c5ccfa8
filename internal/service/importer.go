package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/normalize"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/tags"
)

// Copier performs the actual file copy of an import. The engine only
// computes the plan; moving bytes stays a collaborator concern.
type Copier interface {
	Copy(ctx context.Context, src, dst string) error
}

// PlannedFile maps one source track to its target path in the library.
type PlannedFile struct {
	SourcePath string
	TargetPath string
}

// PlannedShow is the import plan for one performance date.
type PlannedShow struct {
	Descriptor domain.AlbumDescriptor
	FolderName string
	TargetDir  string
	Exists     bool // a folder for this date already exists in the library
	Files      []PlannedFile
}

// ImportPlan is the full plan for importing one source folder.
type ImportPlan struct {
	SourceFolder string
	Shows        []PlannedShow
}

// Importer plans library imports: it groups a source folder's tracks by
// performance date and computes the canonical target layout
// {root}/{year}/{date} - {venue} - {city}, {state}/NN - Title (date).ext.
type Importer struct {
	logger     *slog.Logger
	indexer    *catalog.Indexer
	classifier *processor.Classifier
	songs      *songdb.Repository
	root       string
	copier     Copier
}

// NewImporter wires the import planner. root is the live-show library root.
func NewImporter(logger *slog.Logger, indexer *catalog.Indexer, classifier *processor.Classifier, songs *songdb.Repository, root string, copier Copier) *Importer {
	return &Importer{logger: logger, indexer: indexer, classifier: classifier, songs: songs, root: root, copier: copier}
}

// Plan computes the import plan for one source folder. Tracks whose tags
// carry a performance date group under that date; the rest fall back to
// the date parsed from the source folder itself. A source spanning several
// dates yields one planned show per date.
func (im *Importer) Plan(ctx context.Context, sourceFolder string) (ImportPlan, error) {
	tracks, err := im.indexer.Tracks(ctx, sourceFolder)
	if err != nil {
		return ImportPlan{}, err
	}
	albumTag := im.indexer.AlbumTag(ctx, sourceFolder)
	base := im.classifier.Classify(sourceFolder, albumTag)
	// source drops often have throwaway folder names; when the folder gave
	// us no date but the album tag parses, trust the tag for the show fields
	if base.Date == "" && albumTag != "" {
		if tagged := processor.ParseAlbumTag(albumTag); tagged.Date != "" {
			base.Date = tagged.Date
			base.Venue = tagged.Venue
			base.City = tagged.City
			base.State = tagged.State
		}
	}

	idx := im.songs.Index()
	byDate := make(map[string][]domain.TrackDescriptor)
	var order []string
	for _, track := range tracks {
		if official, ok := normalize.Match(track.SanitizedTitle, idx); ok {
			track.NormalizedTitle = official
		}
		date := track.PerformanceDate
		if date == "" {
			date = base.Date
		}
		if _, seen := byDate[date]; !seen {
			order = append(order, date)
		}
		byDate[date] = append(byDate[date], track)
	}

	plan := ImportPlan{SourceFolder: sourceFolder}
	for _, date := range order {
		descriptor := base
		descriptor.Date = date
		folderName := SanitizeFolderName(descriptor.FolderName())
		targetDir := filepath.Join(im.root, yearOf(date), folderName)

		show := PlannedShow{
			Descriptor: descriptor,
			FolderName: folderName,
			TargetDir:  targetDir,
			Exists:     im.ShowExists(date),
		}
		for i, track := range byDate[date] {
			num := track.TrackNumber
			if num == 0 {
				num = i + 1
			}
			// file names carry the date suffix but never the segue marker,
			// which is not a legal path character everywhere
			title := tags.FormatTrackTitle(track.DisplayTitle(), date, false)
			name := fmt.Sprintf("%02d - %s%s", num, SanitizeFileName(title), strings.ToLower(filepath.Ext(track.FileName)))
			show.Files = append(show.Files, PlannedFile{
				SourcePath: track.FilePath,
				TargetPath: filepath.Join(targetDir, name),
			})
		}
		plan.Shows = append(plan.Shows, show)
	}
	return plan, nil
}

// Execute copies every planned file of shows not already present in the
// library. Existing shows are skipped and logged, never overwritten.
func (im *Importer) Execute(ctx context.Context, plan ImportPlan) error {
	for _, show := range plan.Shows {
		if show.Exists {
			im.logger.Info("skipping existing show",
				slog.String("date", show.Descriptor.Date),
				slog.String("folder", show.FolderName))
			continue
		}
		for _, file := range show.Files {
			if err := im.copier.Copy(ctx, file.SourcePath, file.TargetPath); err != nil {
				return err
			}
		}
		im.logger.Info("show imported",
			slog.String("folder", show.FolderName),
			slog.Int("files", len(show.Files)))
	}
	return nil
}

// ShowExists probes the library for a folder whose name starts with the
// given performance date.
func (im *Importer) ShowExists(date string) bool {
	if date == "" {
		return false
	}
	yearDir := filepath.Join(im.root, yearOf(date))
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), date) {
			return true
		}
	}
	return false
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return "undated"
}

// invalidPathChars are characters no target filesystem accepts in names.
var invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeFolderName makes a descriptor-derived name safe as a directory
// name: invalid characters replaced, whitespace collapsed, trailing dots
// and spaces trimmed.
func SanitizeFolderName(name string) string {
	out := invalidPathChars.ReplaceAllString(name, "-")
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimRight(out, ". ")
}

// SanitizeFileName applies the same rules to a file name stem.
func SanitizeFileName(name string) string {
	return SanitizeFolderName(name)
}
