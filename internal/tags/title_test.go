package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapevault/tapevault-server/internal/normalize"
)

func TestFormatTrackTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		date     string
		hasSegue bool
		want     string
	}{
		{"plain", "Ripple", "", false, "Ripple"},
		{"date only", "Ripple", "1980-05-16", false, "Ripple (1980-05-16)"},
		{"segue only", "Scarlet Begonias", "", true, "Scarlet Begonias >"},
		{"segue and date", "Scarlet Begonias", "1977-05-08", true, "Scarlet Begonias > (1977-05-08)"},
		{"marker not doubled", "Scarlet Begonias >", "1977-05-08", true, "Scarlet Begonias > (1977-05-08)"},
		{"arrow marker not doubled", "Drums →", "", true, "Drums →"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTrackTitle(tt.title, tt.date, tt.hasSegue))
		})
	}
}

func TestFormatTrackTitleRoundTrip(t *testing.T) {
	// sanitizing an assembled title recovers the original parts
	assembled := FormatTrackTitle("China Cat Sunflower", "1972-08-27", true)
	got := normalize.Sanitize(assembled)
	assert.Equal(t, "China Cat Sunflower", got.Title)
	assert.Equal(t, "1972-08-27", got.EmbeddedDate)
	assert.True(t, got.HasSegue)
}
