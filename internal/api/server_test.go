package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/service"
	"github.com/tapevault/tapevault-server/internal/songdb"
	"github.com/tapevault/tapevault-server/internal/store"
	"github.com/tapevault/tapevault-server/internal/tags"
)

// fakeReader serves tag fields from a map keyed by file name.
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

type testServer struct {
	*Server
	api     humatest.TestAPI
	library string
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	library := t.TempDir()
	official := t.TempDir()

	cornell := filepath.Join(library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY")
	touch(t, filepath.Join(cornell, "01 Scarlet Begonias.flac"))
	touch(t, filepath.Join(cornell, "02 Fire on the Mountain.flac"))

	veneta := filepath.Join(library, "1972", "1972-08-27 - Veneta, OR - Old Renaissance Faire Grounds")
	touch(t, filepath.Join(veneta, "01 Dark Star.mp3"))

	reader := &fakeReader{byName: map[string]tags.Fields{
		"01 Scarlet Begonias.flac":     {Title: "Scarlet Begonias >", Album: "1977-05-08 - Barton Hall - Ithaca, NY", TrackNumber: 1},
		"02 Fire on the Mountain.flac": {Title: "FOTM", Album: "1977-05-08 - Barton Hall - Ithaca, NY", TrackNumber: 2},
		"01 Dark Star.mp3":             {Title: "Dark Star", Album: "1972-08-27 - Old Renaissance Faire Grounds - Veneta, OR", TrackNumber: 1},
	}}

	songPath := filepath.Join(t.TempDir(), "songs.json")
	require.NoError(t, os.WriteFile(songPath, []byte(`{
		"artists": [{"name": "Grateful Dead", "songs": [
			{"officialTitle": "Scarlet Begonias"},
			{"officialTitle": "Fire on the Mountain", "aliases": ["FOTM"]},
			{"officialTitle": "Dark Star"}
		]}]
	}`), 0o644))

	logger := slog.New(slog.DiscardHandler)
	repo, err := songdb.NewRepository(songPath, logger)
	require.NoError(t, err)

	st, err := store.New(filepath.Join(t.TempDir(), "data"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	parser := processor.NewFolderParser("Grateful Dead")
	classifier := processor.NewClassifier(official, "Studio Albums", parser)
	indexer := catalog.NewIndexer(logger, reader, classifier, 4)
	roots := catalog.Roots{Library: library, Official: official}

	services := &Services{
		Catalog:    service.NewCatalog(logger, st, indexer, repo, roots, 4),
		Songs:      service.NewSongs(logger, repo),
		Normalizer: service.NewNormalizer(logger, indexer, classifier, repo),
		Importer:   service.NewImporter(logger, indexer, classifier, repo, library, service.NewFileCopier()),
	}

	s := NewServer(services, logger)
	return &testServer{Server: s, api: humatest.Wrap(t, s.api), library: library}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}

func TestRescanThenListAndSearch(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/catalog/rescan")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)

	resp = ts.api.Get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Barton Hall")
	assert.Contains(t, resp.Body.String(), "Old Renaissance Faire Grounds")

	// alias resolves through the song database
	resp = ts.api.Get("/api/v1/catalog/search?sequence=Scarlet+Begonias,FOTM")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.Contains(t, resp.Body.String(), "Barton Hall")

	resp = ts.api.Get("/api/v1/catalog/search?q=veneta&exclude=Scarlet+Begonias")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "1972-08-27")
}

func TestRescanRateLimited(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/catalog/rescan")
	require.Equal(t, http.StatusOK, resp.Code)

	// the limiter allows one scan per burst window
	resp = ts.api.Post("/api/v1/catalog/rescan")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}

func TestSongRoutes(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/songs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Fire on the Mountain")

	resp = ts.api.Post("/api/v1/songs", map[string]any{
		"artist":  "Grateful Dead",
		"title":   "Ripple",
		"aliases": []string{"ripl"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/songs/aliases", map[string]any{
		"title": "Ripple",
		"alias": "Riple",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/songs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ripple")
}

func TestAddAliasUnknownSong(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/songs/aliases", map[string]any{
		"title": "Nonexistent Tune",
		"alias": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPlanImport(t *testing.T) {
	ts := setupTestServer(t)

	source := filepath.Join(t.TempDir(), "cornell77 sbd flac16")
	touch(t, filepath.Join(source, "01 Scarlet Begonias.flac"))
	touch(t, filepath.Join(source, "02 Fire on the Mountain.flac"))

	resp := ts.api.Post("/api/v1/import/plan", map[string]any{
		"sourceFolder": source,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	// the throwaway folder name yields no date, so the album tag decides
	assert.Contains(t, body, "1977-05-08 - Barton Hall - Ithaca, NY")
	// the show is already in the library fixture
	assert.Contains(t, body, `"exists":true`)
}

func TestNormalizeFolderPreview(t *testing.T) {
	ts := setupTestServer(t)

	folder := filepath.Join(ts.library, "1977", "1977-05-08 - Barton Hall - Ithaca, NY")
	resp := ts.api.Post("/api/v1/normalize", map[string]any{
		"folderPath": folder,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Fire on the Mountain")
	assert.Contains(t, body, `"unmatched":0`)
	assert.Contains(t, body, "1977-05-08 - Barton Hall - Ithaca, NY")
}
