package processor

import (
	"path/filepath"
	"strings"

	"github.com/tapevault/tapevault-server/internal/domain"
)

// Classifier assigns an album type from filesystem location plus parsed
// folder and tag data.
type Classifier struct {
	officialRoot string // root for official-release folders
	studioDir    string // path segment naming the studio area
	parser       *FolderParser
}

// NewClassifier builds a classifier. studioDir is the literal path segment
// that marks studio albums, conventionally "Studio Albums".
func NewClassifier(officialRoot, studioDir string, parser *FolderParser) *Classifier {
	return &Classifier{
		officialRoot: filepath.Clean(officialRoot),
		studioDir:    studioDir,
		parser:       parser,
	}
}

// Classify derives the descriptor for the folder at folderPath. albumTag is
// the album tag read from a track inside the folder, or "" when unavailable.
//
// Location decides first: a path under the studio segment is Studio, a path
// under the official-releases root is OfficialRelease. Everything else
// starts Live and is refined to BoxSet or OfficialRelease by the album-tag
// colon convention when tag data is present.
func (c *Classifier) Classify(folderPath, albumTag string) domain.AlbumDescriptor {
	name := filepath.Base(folderPath)

	if c.isStudioPath(folderPath) {
		d := ParseStudioFolder(name)
		d.Edition = StudioEdition(albumTag)
		return d
	}

	if c.isOfficialPath(folderPath) {
		res := c.parser.Parse(name)
		d := res.Descriptor
		d.Type = domain.AlbumTypeOfficialRelease
		if d.OfficialRelease == "" {
			d.OfficialRelease = name
		}
		return d
	}

	res := c.parser.Parse(name)
	d := res.Descriptor
	if albumTag == "" {
		return d
	}
	tagged := ParseAlbumTag(albumTag)
	if tagged.Type == domain.AlbumTypeLive {
		return d
	}
	// the tag carries the release trailer; prefer its fields where present
	d.Type = tagged.Type
	d.OfficialRelease = tagged.OfficialRelease
	d.BoxSet = tagged.BoxSet
	if d.Date == "" {
		d.Date = tagged.Date
	}
	if d.Venue == "" {
		d.Venue = tagged.Venue
	}
	if d.City == "" {
		d.City = tagged.City
	}
	if d.State == "" {
		d.State = tagged.State
	}
	return d
}

func (c *Classifier) isStudioPath(path string) bool {
	if c.studioDir == "" {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.EqualFold(seg, c.studioDir) {
			return true
		}
	}
	return false
}

func (c *Classifier) isOfficialPath(path string) bool {
	if c.officialRoot == "" || c.officialRoot == "." {
		return false
	}
	rel, err := filepath.Rel(c.officialRoot, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}
