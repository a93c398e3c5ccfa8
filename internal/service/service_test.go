package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/store"
	"github.com/tapevault/tapevault-server/internal/tags"
)

type fakeReader struct {
	byName map[string]tags.Fields
}

func (f *fakeReader) ReadFields(_ context.Context, path string) (tags.Fields, error) {
	fields, ok := f.byName[filepath.Base(path)]
	if !ok {
		return tags.Fields{}, os.ErrInvalid
	}
	return fields, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func seedSongs(t *testing.T) *songdb.Repository {
	t.Helper()
	repo, err := songdb.NewRepository(filepath.Join(t.TempDir(), "songs.json"), testLogger())
	require.NoError(t, err)
	require.NoError(t, repo.AddSong("Grateful Dead", "Scarlet Begonias", nil))
	require.NoError(t, repo.AddSong("Grateful Dead", "Fire on the Mountain", []string{"FOTM"}))
	require.NoError(t, repo.AddSong("Grateful Dead", "Estimated Prophet", nil))
	return repo
}

func buildPieces(t *testing.T, reader tags.Reader, official string) (*catalog.Indexer, *processor.Classifier) {
	t.Helper()
	parser := processor.NewFolderParser("Grateful Dead")
	classifier := processor.NewClassifier(official, "Studio Albums", parser)
	return catalog.NewIndexer(testLogger(), reader, classifier, 2), classifier
}

func TestNormalizeFolder(t *testing.T) {
	library := t.TempDir()
	show := filepath.Join(library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY")
	touch(t, filepath.Join(show, "01.flac"))
	touch(t, filepath.Join(show, "02.flac"))
	touch(t, filepath.Join(show, "03.flac"))

	albumTag := "1977-05-08 - Barton Hall - Ithaca, NY"
	reader := &fakeReader{byName: map[string]tags.Fields{
		"01.flac": {Title: "01 Scarlet Bagonias", Album: albumTag, TrackNumber: 1},
		"02.flac": {Title: "FOTM", Album: albumTag, TrackNumber: 2},
		"03.flac": {Title: "Mystery Jam 47", Album: albumTag, TrackNumber: 3},
	}}
	indexer, classifier := buildPieces(t, reader, t.TempDir())
	n := NewNormalizer(testLogger(), indexer, classifier, seedSongs(t))

	preview, err := n.NormalizeFolder(context.Background(), show)
	require.NoError(t, err)
	require.Len(t, preview.Tracks, 3)

	// fuzzy match fixes the typo, alias resolves the abbreviation
	assert.Equal(t, "Scarlet Begonias", preview.Tracks[0].Track.NormalizedTitle)
	assert.True(t, preview.Tracks[0].Matched)
	assert.Equal(t, "Fire on the Mountain", preview.Tracks[1].Track.NormalizedTitle)

	// unknown title stays unmatched and keeps its sanitized form
	assert.False(t, preview.Tracks[2].Matched)
	assert.Equal(t, "Mystery Jam 47", preview.Tracks[2].Track.SanitizedTitle)
	assert.Equal(t, 1, preview.Unmatched)

	// Scarlet > Fire is a known segue pair
	assert.True(t, preview.Tracks[0].Track.HasSegue)
	assert.False(t, preview.Tracks[1].Track.HasSegue)

	assert.Equal(t, "1977-05-08 - Barton Hall - Ithaca, NY", preview.ProposedAlbum)
	assert.Equal(t, "Scarlet Begonias > (1977-05-08)", preview.Tracks[0].ProposedTitle)
	assert.Equal(t, "Fire on the Mountain (1977-05-08)", preview.Tracks[1].ProposedTitle)
}

func TestCatalogRescanListSearch(t *testing.T) {
	library := t.TempDir()
	official := t.TempDir()
	show := filepath.Join(library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY")
	touch(t, filepath.Join(show, "01.flac"))
	touch(t, filepath.Join(show, "02.flac"))

	albumTag := "1977-05-08 - Barton Hall - Ithaca, NY"
	reader := &fakeReader{byName: map[string]tags.Fields{
		"01.flac": {Title: "Scarlet Begonias >", Album: albumTag, TrackNumber: 1},
		"02.flac": {Title: "Fire on the Mountain", Album: albumTag, TrackNumber: 2},
	}}
	indexer, _ := buildPieces(t, reader, official)

	st, err := store.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := NewCatalog(testLogger(), st, indexer, seedSongs(t), catalog.Roots{Library: library, Official: official}, 2)

	entries, err := svc.Rescan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Barton Hall", listed[0].Descriptor.Venue)

	found, err := svc.Search(context.Background(), catalog.Query{Sequence: []string{"Scarlet Begonias", "FOTM"}})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = svc.Search(context.Background(), catalog.Query{Excluded: []string{"Scarlet Begonias"}})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestImporterPlan(t *testing.T) {
	library := t.TempDir()
	source := filepath.Join(t.TempDir(), "cornell77 sbd flac16")
	touch(t, filepath.Join(source, "d1t01.flac"))
	touch(t, filepath.Join(source, "d1t02.flac"))

	reader := &fakeReader{byName: map[string]tags.Fields{
		"d1t01.flac": {Title: "Scarlet Begonias (1977-05-08)", Album: "1977-05-08 - Barton Hall - Ithaca, NY", TrackNumber: 1},
		"d1t02.flac": {Title: "Jam (Filler: 1977-05-09 - Buffalo Memorial Auditorium, Buffalo, NY)", Album: "1977-05-08 - Barton Hall - Ithaca, NY", TrackNumber: 2},
	}}
	indexer, classifier := buildPieces(t, reader, t.TempDir())
	im := NewImporter(testLogger(), indexer, classifier, seedSongs(t), library, nil)

	plan, err := im.Plan(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, plan.Shows, 2)

	first := plan.Shows[0]
	assert.Equal(t, "1977-05-08", first.Descriptor.Date)
	assert.Equal(t, filepath.Join(library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY"), first.TargetDir)
	require.Len(t, first.Files, 1)
	assert.Equal(t, "01 - Scarlet Begonias (1977-05-08).flac", filepath.Base(first.Files[0].TargetPath))
	assert.False(t, first.Exists)

	second := plan.Shows[1]
	assert.Equal(t, "1977-05-09", second.Descriptor.Date)
}

func TestImporterShowExists(t *testing.T) {
	library := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY"), 0o755))

	im := NewImporter(testLogger(), nil, nil, nil, library, nil)
	assert.True(t, im.ShowExists("1977-05-08"))
	assert.False(t, im.ShowExists("1977-05-09"))
	assert.False(t, im.ShowExists(""))
}

type recordingCopier struct {
	copies [][2]string
}

func (c *recordingCopier) Copy(_ context.Context, src, dst string) error {
	c.copies = append(c.copies, [2]string{src, dst})
	return nil
}

func TestImporterExecuteSkipsExisting(t *testing.T) {
	copier := &recordingCopier{}
	im := NewImporter(testLogger(), nil, nil, nil, t.TempDir(), copier)

	plan := ImportPlan{Shows: []PlannedShow{
		{Exists: true, Files: []PlannedFile{{SourcePath: "a", TargetPath: "b"}}},
		{Files: []PlannedFile{{SourcePath: "c", TargetPath: "d"}}},
	}}
	require.NoError(t, im.Execute(context.Background(), plan))
	require.Len(t, copier.copies, 1)
	assert.Equal(t, [2]string{"c", "d"}, copier.copies[0])
}

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1977-05-08 - Barton Hall - Ithaca, NY", "1977-05-08 - Barton Hall - Ithaca, NY"},
		{`What's <This>: A "Test"?`, "What's -This-- A -Test--"},
		{"double  space   name", "double space name"},
		{"trailing dots...", "trailing dots"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFolderName(tt.in), "input %q", tt.in)
	}
}

func TestSeguePairTable(t *testing.T) {
	tracks := []NormalizedTrack{
		{Track: domain.TrackDescriptor{NormalizedTitle: "China Cat Sunflower"}},
		{Track: domain.TrackDescriptor{NormalizedTitle: "I Know You Rider"}},
		{Track: domain.TrackDescriptor{NormalizedTitle: "Ripple"}},
	}
	markKnownSegues(tracks)
	assert.True(t, tracks[0].Track.HasSegue)
	assert.False(t, tracks[1].Track.HasSegue)
	assert.False(t, tracks[2].Track.HasSegue)
}
