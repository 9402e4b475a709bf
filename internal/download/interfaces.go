package download

import (
	"context"

	"github.com/ytget/mediagrab/internal/engine"
	"github.com/ytget/mediagrab/internal/model"
)

// SettingsProvider supplies the user configuration the orchestrator consumes.
// MaxConcurrentDownloads is re-read before every admission decision, so a
// limit change takes effect on the next check.
type SettingsProvider interface {
	DownloadDirectory() string
	MaxConcurrentDownloads() int
	SetMaxConcurrentDownloads(count int)
	PreferredVideoContainer() string
	PreferredAudioContainer() string
	ExtraEngineArgs() string
}

// BinaryLocator resolves the external executables. A missing download engine
// is fatal for a task; a missing remux engine only drops post-processing.
type BinaryLocator interface {
	DownloadEngine() (string, error)
	RemuxEngine() (string, error)
}

// MetadataProvider fetches the optional metadata document for a URL
type MetadataProvider interface {
	Fetch(ctx context.Context, url string) (*model.Metadata, error)
}

// Spawner creates one engine process. Tests substitute fakes here.
type Spawner func(ctx context.Context, binPath string, args []string) (engine.Process, error)
