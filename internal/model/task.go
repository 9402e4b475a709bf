package model

import (
	"fmt"
	"strings"
	"time"
)

// MediaKind selects what the engine should fetch
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Task represents a single download attempt, from submission to a terminal state
type Task struct {
	ID           string
	URL          string
	Kind         MediaKind
	Status       Status
	Percent      float64 // 0 to 100
	Speed        string  // human readable speed (e.g., "1.2MiB/s")
	ETA          string  // human readable ETA (e.g., "00:10")
	Dir          string  // resolved download directory
	OutputPath   string  // target path; updated as the real file becomes known
	Title        string  // display title, refined as metadata arrives
	ThumbnailURL string
	Duration     int    // duration in seconds, 0 if unknown
	DurationText string // human readable duration
	Source       string // platform/extractor label
	FileSize     int64  // final file size in bytes
	LastError    string // last error message if any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (t *Task) GetDisplayTitle() string {
	// First priority: real title (non-URL)
	if t.Title != "" && !strings.HasPrefix(t.Title, "http") {
		return t.Title
	}

	// Second priority: filename from OutputPath
	if t.OutputPath != "" {
		parts := strings.FieldsFunc(t.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return t.URL
}

// FileSizeText formats the final file size in human readable form
func (t *Task) FileSizeText() string {
	return FormatFileSize(t.FileSize)
}

// FormatFileSize renders a byte count as a human readable size
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "—"
	}
	if size < FileSizeUnit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := size / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), FileSizeUnits[exp])
}
