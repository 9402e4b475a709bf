package download

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/mediagrab/internal/model"
	"github.com/ytget/mediagrab/internal/platform"
)

// finalize locates the file the engine actually produced and renames it to
// the task's resolved title. Every failure here degrades to the best-known
// path; a completed task is never failed by finalization.
func (s *Service) finalize(task *model.Task, expectedExt string) {
	actual, ok := locateOutput(task.OutputPath, task.Dir, expectedExt)
	if !ok {
		s.logger.Warn("output file not found after download",
			"task", task.ID, "path", task.OutputPath)
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(actual), ".")
	title := task.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(actual), filepath.Ext(actual))
	}

	target := platform.ResolveRenamePath(task.Dir, title, ext, actual)
	if target != actual {
		if err := os.Rename(actual, target); err != nil {
			s.logger.Warn("rename failed, keeping engine filename",
				"task", task.ID, "from", actual, "error", err)
			target = actual
		}
	}

	task.OutputPath = target
	task.Title = strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	if info, err := os.Stat(target); err == nil {
		task.FileSize = info.Size()
	}
}

// locateOutput finds the engine's real output file. Ordered strategy, first
// hit wins: the recorded path itself, the recorded base name with the
// expected extension, then the most recently modified file in the directory
// carrying the expected extension.
func locateOutput(recorded, dir, expectedExt string) (string, bool) {
	if recorded != "" {
		if _, err := os.Stat(recorded); err == nil {
			return recorded, true
		}
		base := strings.TrimSuffix(filepath.Base(recorded), filepath.Ext(recorded))
		candidate := filepath.Join(dir, base+"."+expectedExt)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var newest string
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), "."+expectedExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, entry.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", false
	}
	return newest, true
}
