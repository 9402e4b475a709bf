package engine

import (
	"context"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnFailsForMissingBinary(t *testing.T) {
	_, err := Spawn(context.Background(), "/nonexistent/engine-binary", []string{"--version"})
	assert.Error(t, err)
}

func TestSpawnStreamsLinesAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-based test")
	}

	proc, err := Spawn(context.Background(), "/bin/sh",
		[]string{"-c", "echo out-line; echo err-line 1>&2; exit 3"})
	require.NoError(t, err)

	var lines []string
	for line := range proc.Lines() {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	assert.Equal(t, []string{"err-line", "out-line"}, lines)

	select {
	case st := <-proc.Done():
		assert.Equal(t, 3, st.Code)
		assert.Error(t, st.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for exit status")
	}
}

func TestKillToleratesExitedProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-based test")
	}

	proc, err := Spawn(context.Background(), "/bin/sh", []string{"-c", "exit 0"})
	require.NoError(t, err)

	for range proc.Lines() {
	}
	<-proc.Done()

	// Kill after natural exit and a second kill must both be quiet.
	assert.NoError(t, proc.Kill())
	assert.NoError(t, proc.Kill())
}
