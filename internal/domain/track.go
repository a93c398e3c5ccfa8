package domain

// TrackDescriptor describes one audio file's inferred metadata.
//
// Lifecycle: created when a folder is scanned; NormalizedTitle is populated
// only by an explicit normalization pass and is never retroactively cleared.
type TrackDescriptor struct {
	FilePath        string `json:"filePath"`
	FileName        string `json:"fileName"`
	TrackNumber     int    `json:"trackNumber"`
	DiscNumber      int    `json:"discNumber,omitempty"`
	RawTitle        string `json:"rawTitle"`
	SanitizedTitle  string `json:"sanitizedTitle"`
	NormalizedTitle string `json:"normalizedTitle,omitempty"` // empty if no match
	PerformanceDate string `json:"performanceDate,omitempty"` // yyyy-MM-dd
	HasSegue        bool   `json:"hasSegue"`
}

// DisplayTitle returns the normalized title when available, otherwise the
// sanitized raw title. Consumers fall back this way everywhere a title is
// shown or written.
func (t TrackDescriptor) DisplayTitle() string {
	if t.NormalizedTitle != "" {
		return t.NormalizedTitle
	}
	if t.SanitizedTitle != "" {
		return t.SanitizedTitle
	}
	return t.RawTitle
}
