package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineDestination(t *testing.T) {
	sig := ParseLine("[download] Destination: /tmp/x.mp4")
	assert.Equal(t, SignalDestination, sig.Kind)
	assert.Equal(t, "/tmp/x.mp4", sig.Path)
}

func TestParseLinePercent(t *testing.T) {
	sig := ParseLine("[download]  42.5% of 10.00MiB at 1.2MiB/s ETA 00:10")
	assert.Equal(t, SignalPercent, sig.Kind)
	assert.Equal(t, 42.5, sig.Percent)
	assert.True(t, sig.HasSpeed)
	assert.Equal(t, "1.2MiB/s", sig.Speed)
	assert.True(t, sig.HasETA)
	assert.Equal(t, "00:10", sig.ETA)
}

func TestParseLinePercentOnly(t *testing.T) {
	sig := ParseLine("[download] 100% of 3.50MiB")
	assert.Equal(t, SignalPercent, sig.Kind)
	assert.Equal(t, 100.0, sig.Percent)
	assert.False(t, sig.HasSpeed)
	assert.False(t, sig.HasETA)
}

func TestParseLineClampsPercent(t *testing.T) {
	sig := ParseLine("[download] 104.3% of ~2.1MiB")
	assert.Equal(t, SignalPercent, sig.Kind)
	assert.Equal(t, 100.0, sig.Percent)
}

func TestParseLineProcessingMarkers(t *testing.T) {
	for _, line := range []string{
		`[Merger] Merging formats into "/tmp/x.mp4"`,
		"[ExtractAudio] Destination: /tmp/x.m4a",
	} {
		sig := ParseLine(line)
		assert.Equal(t, SignalProcessing, sig.Kind, "line %q", line)
	}
}

func TestParseLineError(t *testing.T) {
	line := "ERROR: [youtube] abc: Video unavailable"
	sig := ParseLine(line)
	assert.Equal(t, SignalError, sig.Kind)
	assert.Equal(t, line, sig.Message)
}

func TestParseLineIgnoresNoise(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"[youtube] abc: Downloading webpage",
		"[info] Writing video metadata",
		"WARNING: unable to obtain file audio codec",
	} {
		sig := ParseLine(line)
		assert.Equal(t, SignalNone, sig.Kind, "line %q", line)
	}
}
