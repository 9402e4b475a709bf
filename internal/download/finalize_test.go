package download

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/mediagrab/internal/model"
)

func newFinalizeService(t *testing.T) *Service {
	t.Helper()
	settings := &fakeSettings{dir: t.TempDir(), max: 1}
	return NewService(settings, fakeLocator{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFinalizeIdempotentWhenAlreadyNamed(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()
	current := filepath.Join(dir, "clip.mp4")
	writeFile(t, current, "data")

	task := &model.Task{ID: "t1", Title: "clip", Dir: dir, OutputPath: current}
	svc.finalize(task, "mp4")

	// No rename: the path is unchanged and the file still exists.
	assert.Equal(t, current, task.OutputPath)
	assert.FileExists(t, current)
	assert.Equal(t, int64(4), task.FileSize)
}

func TestFinalizeRenamesToResolvedTitle(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()
	produced := filepath.Join(dir, "abc123 [raw].mp4")
	writeFile(t, produced, "data")

	task := &model.Task{ID: "t1", Title: "Nice Video", Dir: dir, OutputPath: produced}
	svc.finalize(task, "mp4")

	assert.Equal(t, filepath.Join(dir, "Nice Video.mp4"), task.OutputPath)
	assert.Equal(t, "Nice Video", task.Title)
	assert.FileExists(t, task.OutputPath)
	assert.NoFileExists(t, produced)
}

func TestFinalizeFindsExpectedExtension(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()

	// Recorded path has the wrong extension; same base with the expected one exists.
	writeFile(t, filepath.Join(dir, "clip.mp4"), "data")

	task := &model.Task{ID: "t1", Title: "clip", Dir: dir, OutputPath: filepath.Join(dir, "clip.webm")}
	svc.finalize(task, "mp4")

	assert.Equal(t, filepath.Join(dir, "clip.mp4"), task.OutputPath)
}

func TestFinalizeFallsBackToNewestMatch(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()

	older := filepath.Join(dir, "older.mp4")
	newer := filepath.Join(dir, "newer.mp4")
	writeFile(t, older, "old")
	writeFile(t, newer, "new")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	task := &model.Task{ID: "t1", Title: "My Title", Dir: dir, OutputPath: filepath.Join(dir, "vanished.mp4")}
	svc.finalize(task, "mp4")

	assert.Equal(t, filepath.Join(dir, "My Title.mp4"), task.OutputPath)
	assert.NoFileExists(t, newer)
	assert.FileExists(t, older)
}

func TestFinalizeSoftFailsWhenNothingFound(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()
	recorded := filepath.Join(dir, "missing.mp4")

	task := &model.Task{ID: "t1", Title: "missing", Dir: dir, OutputPath: recorded}
	svc.finalize(task, "mp4")

	// Best-known path is kept; nothing fails.
	assert.Equal(t, recorded, task.OutputPath)
	assert.Equal(t, int64(0), task.FileSize)
}

func TestFinalizeAvoidsCollisionOnRename(t *testing.T) {
	svc := newFinalizeService(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "clip.mp4"), "existing")
	produced := filepath.Join(dir, "clip.f137.mp4")
	writeFile(t, produced, "data")

	task := &model.Task{ID: "t1", Title: "clip", Dir: dir, OutputPath: produced}
	svc.finalize(task, "mp4")

	assert.Equal(t, filepath.Join(dir, "clip(1).mp4"), task.OutputPath)
	assert.FileExists(t, filepath.Join(dir, "clip.mp4"))
}
