package model

// Metadata is the optional pre-fetched document describing a media URL.
// Any field may be empty; consumers fall back to URL-derived values.
type Metadata struct {
	Title        string
	Duration     int // seconds
	DurationText string
	ThumbnailURL string
	Source       string
}

// DownloadRequest carries everything needed to submit a download. It is
// consumed to construct a Task and is not retained afterwards.
type DownloadRequest struct {
	// ID lets callers keep a stable task identity across retries.
	// Empty means a fresh one is generated.
	ID string

	URL  string `validate:"required,url"`
	Kind MediaKind

	// Format is an optional engine format selector (-f).
	Format string

	// OutputFormat overrides the preferred container for the media kind.
	OutputFormat string

	// Overwrite skips collision probing and replaces ExistingPath if set.
	Overwrite    bool
	ExistingPath string

	Metadata *Metadata
}
