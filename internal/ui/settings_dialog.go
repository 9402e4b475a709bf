package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediagrab/internal/config"
	"github.com/ytget/mediagrab/internal/download"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings    *config.Settings
	downloadSvc *download.Service
	window      fyne.Window
	dialog      *dialog.ConfirmDialog

	downloadDirEntry     *widget.Entry
	maxConcurrentEntry   *widget.Entry
	videoContainerSelect *widget.Select
	audioContainerSelect *widget.Select
	extraArgsEntry       *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, downloadSvc *download.Service, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:    settings,
		downloadSvc: downloadSvc,
		window:      window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxConcurrentEntry = widget.NewEntry()
	sd.maxConcurrentEntry.SetPlaceHolder("1-10")

	sd.videoContainerSelect = widget.NewSelect([]string{"mp4", "mkv", "webm"}, nil)
	sd.audioContainerSelect = widget.NewSelect([]string{"m4a", "mp3", "opus"}, nil)

	sd.extraArgsEntry = widget.NewEntry()
	sd.extraArgsEntry.SetPlaceHolder("Extra engine arguments")

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Max Concurrent Downloads:"),
		sd.maxConcurrentEntry,

		widget.NewLabel("Video Container:"),
		sd.videoContainerSelect,

		widget.NewLabel("Audio Container:"),
		sd.audioContainerSelect,

		widget.NewLabel("Extra Engine Arguments:"),
		sd.extraArgsEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.DownloadDirectory())
	sd.maxConcurrentEntry.SetText(strconv.Itoa(sd.settings.MaxConcurrentDownloads()))
	sd.videoContainerSelect.SetSelected(sd.settings.PreferredVideoContainer())
	sd.audioContainerSelect.SetSelected(sd.settings.PreferredAudioContainer())
	sd.extraArgsEntry.SetText(sd.settings.ExtraEngineArgs())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	// Routing the limit through the service lets queued tasks start
	// immediately when the limit grows.
	if raw := sd.maxConcurrentEntry.Text; raw != "" {
		if count, err := strconv.Atoi(raw); err == nil {
			sd.downloadSvc.SetConcurrencyLimit(count)
		}
	}

	if sd.videoContainerSelect.Selected != "" {
		sd.settings.SetPreferredVideoContainer(sd.videoContainerSelect.Selected)
	}
	if sd.audioContainerSelect.Selected != "" {
		sd.settings.SetPreferredAudioContainer(sd.audioContainerSelect.Selected)
	}

	sd.settings.SetExtraEngineArgs(sd.extraArgsEntry.Text)
}
