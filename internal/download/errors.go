package download

import "errors"

var (
	// ErrEmptyURL rejects a request with no target URL
	ErrEmptyURL = errors.New("download URL is empty")

	// ErrNoDownloadDirectory rejects admission until a directory is chosen
	ErrNoDownloadDirectory = errors.New("no download directory configured")

	// ErrShuttingDown rejects requests submitted after Shutdown
	ErrShuttingDown = errors.New("downloader is shutting down")
)
