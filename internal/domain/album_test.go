package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlbumTitle(t *testing.T) {
	tests := []struct {
		name string
		desc AlbumDescriptor
		want string
	}{
		{
			name: "plain live show",
			desc: AlbumDescriptor{
				Type:  AlbumTypeLive,
				Date:  "1977-05-08",
				Venue: "Barton Hall",
				City:  "Ithaca",
				State: "NY",
			},
			want: "1977-05-08 - Barton Hall - Ithaca, NY",
		},
		{
			name: "official release uses space before colon",
			desc: AlbumDescriptor{
				Type:            AlbumTypeOfficialRelease,
				Date:            "1977-05-08",
				Venue:           "Barton Hall",
				City:            "Ithaca",
				State:           "NY",
				OfficialRelease: "Dave's Picks Volume 28",
			},
			want: "1977-05-08 - Barton Hall - Ithaca, NY : Dave's Picks Volume 28",
		},
		{
			name: "box set has no space before colon",
			desc: AlbumDescriptor{
				Type:   AlbumTypeBoxSet,
				Date:   "1977-05-08",
				Venue:  "Barton Hall",
				City:   "Ithaca",
				State:  "NY",
				BoxSet: "Enjoying the Ride",
			},
			want: "1977-05-08 - Barton Hall - Ithaca, NY: Enjoying the Ride",
		},
		{
			name: "studio album with year",
			desc: AlbumDescriptor{
				Type:        AlbumTypeStudio,
				AlbumName:   "American Beauty",
				ReleaseYear: "1970",
			},
			want: "American Beauty (1970)",
		},
		{
			name: "studio album without year",
			desc: AlbumDescriptor{
				Type:      AlbumTypeStudio,
				AlbumName: "American Beauty",
			},
			want: "American Beauty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.desc.AlbumTitle())
		})
	}
}

func TestFolderName_MissingParts(t *testing.T) {
	d := AlbumDescriptor{Type: AlbumTypeLive, Date: "1972-08-27", City: "Veneta"}
	assert.Equal(t, "1972-08-27 - Unknown Venue - Veneta", d.FolderName())

	d.Venue = "Old Renaissance Faire Grounds"
	d.State = "OR"
	assert.Equal(t, "1972-08-27 - Old Renaissance Faire Grounds - Veneta, OR", d.FolderName())
}

func TestDisplayTitle_Fallback(t *testing.T) {
	tr := TrackDescriptor{RawTitle: "01 scarlet begonias"}
	assert.Equal(t, "01 scarlet begonias", tr.DisplayTitle())

	tr.SanitizedTitle = "scarlet begonias"
	assert.Equal(t, "scarlet begonias", tr.DisplayTitle())

	tr.NormalizedTitle = "Scarlet Begonias"
	assert.Equal(t, "Scarlet Begonias", tr.DisplayTitle())
}

func TestSortRank_Order(t *testing.T) {
	assert.Less(t, AlbumTypeLive.SortRank(), AlbumTypeOfficialRelease.SortRank())
	assert.Less(t, AlbumTypeOfficialRelease.SortRank(), AlbumTypeStudio.SortRank())
	assert.Equal(t, AlbumTypeOfficialRelease.SortRank(), AlbumTypeBoxSet.SortRank())
}
