package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapevault/tapevault-server/internal/domain"
)

// aliasMap is a test alias index.
type aliasMap map[string]string

func (m aliasMap) Lookup(candidate string) (string, bool) {
	official, ok := m[strings.ToLower(strings.TrimSpace(candidate))]
	return official, ok
}

func (m aliasMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func testIndex() aliasMap {
	return aliasMap{
		"scarlet begonias":     "Scarlet Begonias",
		"fire on the mountain": "Fire on the Mountain",
		"fotm":                 "Fire on the Mountain",
		"estimated prophet":    "Estimated Prophet",
		"dark star":            "Dark Star",
	}
}

func tracksFor(titles ...string) []domain.TrackDescriptor {
	out := make([]domain.TrackDescriptor, len(titles))
	for i, title := range titles {
		out[i] = domain.TrackDescriptor{SanitizedTitle: title, TrackNumber: i + 1}
	}
	return out
}

func staticLoader(byID map[string][]domain.TrackDescriptor) TrackLoader {
	return func(_ context.Context, entry domain.CatalogEntry) ([]domain.TrackDescriptor, error) {
		return byID[entry.ID], nil
	}
}

func cornellEntry() domain.CatalogEntry {
	return domain.CatalogEntry{
		ID: "cornell",
		Descriptor: domain.AlbumDescriptor{
			Type: domain.AlbumTypeLive, Date: "1977-05-08",
			Venue: "Barton Hall", City: "Ithaca", State: "NY",
		},
	}
}

func TestSearchFreeText(t *testing.T) {
	entries := []domain.CatalogEntry{
		cornellEntry(),
		{
			ID: "veneta",
			Descriptor: domain.AlbumDescriptor{
				Type: domain.AlbumTypeLive, Date: "1972-08-27",
				Venue: "Old Renaissance Faire Grounds", City: "Veneta", State: "OR",
			},
		},
		{
			ID: "daves28",
			Descriptor: domain.AlbumDescriptor{
				Type:            domain.AlbumTypeOfficialRelease,
				OfficialRelease: "Dave's Picks Volume 28",
			},
			ContainedDates:  []string{"1977-05-08"},
			ContainedVenues: []string{"Barton Hall"},
		},
	}
	s := NewSearcher(testIndex(), staticLoader(nil), 2)

	tests := []struct {
		name string
		text string
		ids  []string
	}{
		{"venue substring", "barton", []string{"cornell", "daves28"}},
		{"state", "or", []string{"veneta"}},
		{"contained date", "1977-05-08", []string{"cornell", "daves28"}},
		{"release name", "dave's picks", []string{"daves28"}},
		{"year", "1972", []string{"veneta"}},
		{"no match", "winterland", nil},
		{"empty text keeps all", "", []string{"cornell", "veneta", "daves28"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(context.Background(), entries, Query{Text: tt.text})
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if tt.ids == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.ids, ids)
			}
		})
	}
}

func TestSearchSequence(t *testing.T) {
	entry := cornellEntry()
	loader := staticLoader(map[string][]domain.TrackDescriptor{
		"cornell": tracksFor("Scarlet Begonias", "Fire on the Mountain", "Estimated Prophet"),
	})
	s := NewSearcher(testIndex(), loader, 2)

	tests := []struct {
		name    string
		seq     []string
		matches bool
	}{
		{"in order contiguous", []string{"Scarlet Begonias", "Fire on the Mountain"}, true},
		{"wrong order", []string{"Fire on the Mountain", "Scarlet Begonias"}, false},
		{"non-contiguous", []string{"Scarlet Begonias", "Estimated Prophet"}, false},
		{"full run", []string{"Scarlet Begonias", "Fire on the Mountain", "Estimated Prophet"}, true},
		{"alias resolves in query", []string{"Scarlet Begonias", "FOTM"}, true},
		{"longer than track list", []string{"Scarlet Begonias", "Fire on the Mountain", "Estimated Prophet", "Dark Star"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{Sequence: tt.seq})
			require.NoError(t, err)
			assert.Equal(t, tt.matches, len(got) == 1)
		})
	}
}

func TestSearchRequiredAndExcluded(t *testing.T) {
	entry := cornellEntry()
	loader := staticLoader(map[string][]domain.TrackDescriptor{
		"cornell": tracksFor("Scarlet Begonias", "Fire on the Mountain", "Estimated Prophet"),
	})
	s := NewSearcher(testIndex(), loader, 2)

	t.Run("required present", func(t *testing.T) {
		got, err := s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{Required: []string{"Dark Star"}})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{Required: []string{"Estimated Prophet"}})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("required matches by equality not substring", func(t *testing.T) {
		got, err := s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{Required: []string{"Scarlet"}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("exclusion wins over required", func(t *testing.T) {
		got, err := s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{
			Required: []string{"Scarlet Begonias"},
			Excluded: []string{"Estimated Prophet"},
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("alias in exclusion", func(t *testing.T) {
		got, err := s.Search(context.Background(), []domain.CatalogEntry{entry}, Query{Excluded: []string{"FOTM"}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestQueryNeedsTracks(t *testing.T) {
	assert.False(t, Query{Text: "barton"}.NeedsTracks())
	assert.True(t, Query{Required: []string{"x"}}.NeedsTracks())
	assert.True(t, Query{Excluded: []string{"x"}}.NeedsTracks())
	assert.True(t, Query{Sequence: []string{"x"}}.NeedsTracks())
}
