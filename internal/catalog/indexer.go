// Package catalog builds the in-memory library catalog by walking the
// archive roots, and evaluates multi-criterion search queries against it.
package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/id"
	"github.com/tapevault/tapevault-server/internal/normalize"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/tags"
)

// Roots names the directories the indexer walks. Each root holds one level
// of grouping folders (years, or release series) with show folders below.
type Roots struct {
	Library  string // live shows grouped by year, plus the studio area
	Official string // official-release folders
}

// Indexer scans the archive and produces catalog entries.
type Indexer struct {
	logger     *slog.Logger
	reader     tags.Reader
	classifier *processor.Classifier
	workers    int
}

// NewIndexer builds an indexer. workers bounds concurrent show scans;
// values below 1 are treated as 1.
func NewIndexer(logger *slog.Logger, reader tags.Reader, classifier *processor.Classifier, workers int) *Indexer {
	if workers < 1 {
		workers = 1
	}
	return &Indexer{logger: logger, reader: reader, classifier: classifier, workers: workers}
}

// Official-release track titles embed the shows they compile. These
// patterns pull the date and venue sets back out.
var (
	liveAtTitleRE = regexp.MustCompile(`(?i)\blive\s+(?:at|in)\s+([^,(\[\])]+),`)
	fillerTitleRE = regexp.MustCompile(`Filler:\s*(\d{4}-\d{2}-\d{2})\s*-\s*([^,(\[\])]+),`)
)

// Scan walks every root and returns the catalog, sorted for listing:
// Live first, then official releases and box sets, then studio albums;
// within a type, date descending (album name descending for studio).
// Folders containing no audio files are skipped. Per-file tag failures
// are logged and skipped; only filesystem errors abort the scan.
func (ix *Indexer) Scan(ctx context.Context, roots Roots) ([]domain.CatalogEntry, error) {
	folders, err := ix.collectShowFolders(roots)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		entries []domain.CatalogEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)
	for _, folder := range folders {
		g.Go(func() error {
			entry, ok, err := ix.scanShow(gctx, folder)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortEntries(entries)
	ix.logger.Info("library scan complete",
		slog.Int("folders", len(folders)),
		slog.Int("entries", len(entries)))
	return entries, nil
}

// collectShowFolders walks each root two levels deep. A first-level folder
// that itself holds audio files counts as a show folder directly.
func (ix *Indexer) collectShowFolders(roots Roots) ([]string, error) {
	var out []string
	for _, root := range []string{roots.Library, roots.Official} {
		if root == "" {
			continue
		}
		groups, err := listSubdirectories(root)
		if err != nil {
			if os.IsNotExist(err) {
				ix.logger.Warn("library root missing", slog.String("root", root))
				continue
			}
			return nil, err
		}
		for _, group := range groups {
			shows, err := listSubdirectories(group)
			if err != nil {
				return nil, err
			}
			if len(shows) == 0 {
				out = append(out, group)
				continue
			}
			out = append(out, shows...)
		}
	}
	return out, nil
}

// scanShow reads one show folder. Returns ok=false when the folder holds
// no audio files.
func (ix *Indexer) scanShow(ctx context.Context, folder string) (domain.CatalogEntry, bool, error) {
	files, err := ListAudioFiles(folder)
	if err != nil {
		return domain.CatalogEntry{}, false, err
	}
	if len(files) == 0 {
		return domain.CatalogEntry{}, false, nil
	}

	albumTag := ix.firstAlbumTag(ctx, files)
	descriptor := ix.classifier.Classify(folder, albumTag)

	entry := domain.CatalogEntry{
		ID:         id.MustGenerate("show"),
		Descriptor: descriptor,
		TrackCount: len(files),
		FolderPath: folder,
		FolderName: filepath.Base(folder),
	}

	if descriptor.Type == domain.AlbumTypeOfficialRelease || descriptor.Type == domain.AlbumTypeBoxSet {
		dates, venues := ix.collectContained(ctx, files)
		entry.ContainedDates = dates
		entry.ContainedVenues = venues
	}
	return entry, true, nil
}

// AlbumTag reads the album tag for a show folder from its first readable
// audio file. Returns "" when no file yields one.
func (ix *Indexer) AlbumTag(ctx context.Context, folder string) string {
	files, err := ListAudioFiles(folder)
	if err != nil {
		return ""
	}
	return ix.firstAlbumTag(ctx, files)
}

// firstAlbumTag reads the album tag off the first readable file.
func (ix *Indexer) firstAlbumTag(ctx context.Context, files []string) string {
	for _, path := range files {
		fields, err := ix.reader.ReadFields(ctx, path)
		if err != nil {
			ix.logger.Warn("skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		return fields.Album
	}
	return ""
}

// collectContained scans every track title of an official release for
// embedded date and venue markers, accumulating the distinct sets. A
// release compiling several shows reports each of them.
func (ix *Indexer) collectContained(ctx context.Context, files []string) (dates, venues []string) {
	dateSet := make(map[string]struct{})
	venueSet := make(map[string]struct{})
	for _, path := range files {
		fields, err := ix.reader.ReadFields(ctx, path)
		if err != nil {
			continue
		}
		title := fields.Title
		if res := normalize.Sanitize(title); res.EmbeddedDate != "" {
			dateSet[res.EmbeddedDate] = struct{}{}
		}
		if m := liveAtTitleRE.FindStringSubmatch(title); m != nil {
			venueSet[strings.TrimSpace(m[1])] = struct{}{}
		}
		if m := fillerTitleRE.FindStringSubmatch(title); m != nil {
			dateSet[m[1]] = struct{}{}
			venueSet[strings.TrimSpace(m[2])] = struct{}{}
		}
	}
	return sortedKeys(dateSet), sortedKeys(venueSet)
}

// Tracks loads and sanitizes every track in a show folder, in file order.
// Unreadable files are skipped. Track numbers missing from tags are
// backfilled from file order.
func (ix *Indexer) Tracks(ctx context.Context, folder string) ([]domain.TrackDescriptor, error) {
	files, err := ListAudioFiles(folder)
	if err != nil {
		return nil, err
	}
	tracks := make([]domain.TrackDescriptor, 0, len(files))
	for i, path := range files {
		fields, err := ix.reader.ReadFields(ctx, path)
		if err != nil {
			ix.logger.Warn("skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		res := normalize.Sanitize(fields.Title)
		track := domain.TrackDescriptor{
			FilePath:        path,
			FileName:        filepath.Base(path),
			TrackNumber:     fields.TrackNumber,
			DiscNumber:      fields.DiscNumber,
			RawTitle:        fields.Title,
			SanitizedTitle:  res.Title,
			PerformanceDate: res.EmbeddedDate,
			HasSegue:        res.HasSegue,
		}
		if track.TrackNumber == 0 {
			track.TrackNumber = i + 1
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// SortEntries orders a catalog for listing.
func SortEntries(entries []domain.CatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := a.Descriptor.Type.SortRank(), b.Descriptor.Type.SortRank(); ra != rb {
			return ra < rb
		}
		if a.Descriptor.Type == domain.AlbumTypeStudio {
			return a.Descriptor.AlbumName > b.Descriptor.AlbumName
		}
		if a.Descriptor.Date != b.Descriptor.Date {
			return a.Descriptor.Date > b.Descriptor.Date
		}
		return a.FolderName > b.FolderName
	})
}

// ListAudioFiles returns the FLAC and MP3 files directly inside folder,
// sorted by name.
func ListAudioFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".flac", ".mp3":
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func listSubdirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
