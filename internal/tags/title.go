package tags

import (
	"fmt"

	"github.com/tapevault/tapevault-server/internal/normalize"
)

// FormatTrackTitle assembles the tag title written back to a file:
// "{Title} >? ({date})". The segue marker is appended only when the track
// segues and the title does not already carry a marker; the date suffix is
// appended only when a performance date is known.
func FormatTrackTitle(title, date string, hasSegue bool) string {
	out := title
	if hasSegue && !normalize.HasSegueMarker(out) {
		out += " >"
	}
	if date != "" {
		out = fmt.Sprintf("%s (%s)", out, date)
	}
	return out
}
