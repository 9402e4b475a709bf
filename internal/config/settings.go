package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyMaxConcurrent  = "max_concurrent_downloads"
	KeyVideoContainer = "video_container"
	KeyAudioContainer = "audio_container"
	KeyExtraArgs      = "extra_engine_args"
)

// Default values
const (
	DefaultMaxConcurrent  = 3
	MinConcurrent         = 1
	MaxConcurrent         = 10
	DefaultVideoContainer = "mp4"
	DefaultAudioContainer = "m4a"
)

// Settings manages application configuration persisted via Fyne preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// DownloadDirectory returns the configured download directory, empty until
// one has been selected
func (s *Settings) DownloadDirectory() string {
	return s.app.Preferences().String(KeyDownloadDir)
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// MaxConcurrentDownloads returns the maximum number of simultaneous downloads
func (s *Settings) MaxConcurrentDownloads() int {
	value := s.app.Preferences().Int(KeyMaxConcurrent)
	if value == 0 {
		return DefaultMaxConcurrent
	}
	return clampConcurrent(value)
}

// SetMaxConcurrentDownloads sets the maximum number of simultaneous downloads
func (s *Settings) SetMaxConcurrentDownloads(count int) {
	s.app.Preferences().SetInt(KeyMaxConcurrent, clampConcurrent(count))
}

// PreferredVideoContainer returns the target container for video downloads
func (s *Settings) PreferredVideoContainer() string {
	value := s.app.Preferences().String(KeyVideoContainer)
	if value == "" {
		return DefaultVideoContainer
	}
	return value
}

// SetPreferredVideoContainer sets the target container for video downloads
func (s *Settings) SetPreferredVideoContainer(container string) {
	s.app.Preferences().SetString(KeyVideoContainer, container)
}

// PreferredAudioContainer returns the target container for audio downloads
func (s *Settings) PreferredAudioContainer() string {
	value := s.app.Preferences().String(KeyAudioContainer)
	if value == "" {
		return DefaultAudioContainer
	}
	return value
}

// SetPreferredAudioContainer sets the target container for audio downloads
func (s *Settings) SetPreferredAudioContainer(container string) {
	s.app.Preferences().SetString(KeyAudioContainer, container)
}

// ExtraEngineArgs returns the raw extra argument string passed to the engine
func (s *Settings) ExtraEngineArgs() string {
	return s.app.Preferences().String(KeyExtraArgs)
}

// SetExtraEngineArgs sets the raw extra argument string passed to the engine
func (s *Settings) SetExtraEngineArgs(args string) {
	s.app.Preferences().SetString(KeyExtraArgs, args)
}

func clampConcurrent(count int) int {
	if count < MinConcurrent {
		return MinConcurrent
	}
	if count > MaxConcurrent {
		return MaxConcurrent
	}
	return count
}
