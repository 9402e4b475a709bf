// Package metadata fetches a media document for a URL by asking the download
// engine for its JSON dump. All fields are optional; callers fall back to
// URL-derived values when the fetch fails or returns partial data.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/ytget/mediagrab/internal/model"
	"github.com/ytget/mediagrab/internal/platform"
)

// DefaultFetchTimeout bounds one metadata request
const DefaultFetchTimeout = 60 * time.Second

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// engineDocument is the subset of the engine's JSON dump we consume
type engineDocument struct {
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"`
	DurationString string  `json:"duration_string"`
	Thumbnail      string  `json:"thumbnail"`
	ExtractorKey   string  `json:"extractor_key"`
	Uploader       string  `json:"uploader"`
}

// Provider fetches metadata documents through the download engine
type Provider struct {
	enginePath func() (string, error)
	timeout    time.Duration
}

// NewProvider creates a provider resolving the engine binary lazily
func NewProvider(enginePath func() (string, error)) *Provider {
	return &Provider{
		enginePath: enginePath,
		timeout:    DefaultFetchTimeout,
	}
}

// SetTimeout sets the timeout for one metadata request
func (p *Provider) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Fetch asks the engine for the URL's metadata document. A partial document
// is still returned; the title falls back to a URL-derived one.
func (p *Provider) Fetch(ctx context.Context, url string) (*model.Metadata, error) {
	meta, err := p.fetchWith(ctx, []string{"-J", "--no-playlist", url})
	if err != nil {
		return nil, errors.Wrapf(err, "metadata fetch for %s", url)
	}
	if meta.Title == "" {
		meta.Title = platform.TitleFromURL(url)
	}
	return meta, nil
}

func (p *Provider) fetchWith(ctx context.Context, args []string) (*model.Metadata, error) {
	bin, err := p.enginePath()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return nil, err
	}

	var doc engineDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, errors.Wrap(err, "decode metadata document")
	}

	meta := &model.Metadata{
		Title:        doc.Title,
		Duration:     int(doc.Duration),
		DurationText: doc.DurationString,
		ThumbnailURL: doc.Thumbnail,
		Source:       doc.ExtractorKey,
	}
	if meta.Source == "" {
		meta.Source = doc.Uploader
	}
	if meta.DurationText == "" && meta.Duration > 0 {
		meta.DurationText = FormatDuration(meta.Duration)
	}
	return meta, nil
}

// FormatDuration formats seconds into HH:MM:SS or MM:SS
func FormatDuration(seconds int) string {
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
