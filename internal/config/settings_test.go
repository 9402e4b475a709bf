package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestDownloadDirectory(t *testing.T) {
	settings := NewSettings(test.NewApp())

	// Unset until the user picks one.
	if dir := settings.DownloadDirectory(); dir != "" {
		t.Errorf("Expected empty download directory, got %s", dir)
	}

	settings.SetDownloadDirectory("/custom/downloads")
	if dir := settings.DownloadDirectory(); dir != "/custom/downloads" {
		t.Errorf("Expected /custom/downloads, got %s", dir)
	}
}

func TestMaxConcurrentDownloads(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.MaxConcurrentDownloads(); got != DefaultMaxConcurrent {
		t.Errorf("Expected default %d, got %d", DefaultMaxConcurrent, got)
	}

	settings.SetMaxConcurrentDownloads(5)
	if got := settings.MaxConcurrentDownloads(); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}

	// Boundary values are clamped.
	settings.SetMaxConcurrentDownloads(0)
	if got := settings.MaxConcurrentDownloads(); got != MinConcurrent {
		t.Errorf("Expected clamp to %d, got %d", MinConcurrent, got)
	}

	settings.SetMaxConcurrentDownloads(15)
	if got := settings.MaxConcurrentDownloads(); got != MaxConcurrent {
		t.Errorf("Expected clamp to %d, got %d", MaxConcurrent, got)
	}
}

func TestPreferredContainers(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.PreferredVideoContainer(); got != DefaultVideoContainer {
		t.Errorf("Expected default %s, got %s", DefaultVideoContainer, got)
	}
	if got := settings.PreferredAudioContainer(); got != DefaultAudioContainer {
		t.Errorf("Expected default %s, got %s", DefaultAudioContainer, got)
	}

	settings.SetPreferredVideoContainer("mkv")
	settings.SetPreferredAudioContainer("mp3")
	if got := settings.PreferredVideoContainer(); got != "mkv" {
		t.Errorf("Expected mkv, got %s", got)
	}
	if got := settings.PreferredAudioContainer(); got != "mp3" {
		t.Errorf("Expected mp3, got %s", got)
	}
}

func TestExtraEngineArgs(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.ExtraEngineArgs(); got != "" {
		t.Errorf("Expected empty extra args, got %s", got)
	}

	settings.SetExtraEngineArgs("--socket-timeout 10")
	if got := settings.ExtraEngineArgs(); got != "--socket-timeout 10" {
		t.Errorf("Expected stored extra args, got %s", got)
	}
}
