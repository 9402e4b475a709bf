package platform

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// External binary names
const (
	DownloadEngineName = "yt-dlp"
	RemuxEngineName    = "ffmpeg"
	WindowsExeSuffix   = ".exe"
)

// Binaries locates the external executables on the current OS via PATH lookup.
// It implements the download package's BinaryLocator interface.
type Binaries struct{}

// DownloadEngine returns the absolute path to the download engine executable
func (Binaries) DownloadEngine() (string, error) {
	path, err := exec.LookPath(binaryName(DownloadEngineName))
	if err != nil {
		return "", errors.Wrap(err, "download engine not found")
	}
	return path, nil
}

// RemuxEngine returns the absolute path to the remux engine executable
func (Binaries) RemuxEngine() (string, error) {
	path, err := exec.LookPath(binaryName(RemuxEngineName))
	if err != nil {
		return "", errors.Wrap(err, "remux engine not found")
	}
	return path, nil
}

func binaryName(base string) string {
	if runtime.GOOS == OSWindows {
		return base + WindowsExeSuffix
	}
	return base
}
