package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediagrab/internal/config"
	"github.com/ytget/mediagrab/internal/download"
	"github.com/ytget/mediagrab/internal/metadata"
	"github.com/ytget/mediagrab/internal/model"
	"github.com/ytget/mediagrab/internal/platform"
)

// MetadataTimeout bounds the title prefetch before a download is submitted
const MetadataTimeout = 10 * time.Second

// taskView is the UI's snapshot of one task, kept current by merging
// service events. Rows stay visible after the task leaves the live
// registry so the user keeps a session history.
type taskView struct {
	ID       string
	Title    string
	Status   model.Status
	Percent  float64
	Speed    string
	ETA      string
	Path     string
	FileSize int64
	Message  string
}

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	urlEntry    *widget.Entry
	audioCheck  *widget.Check
	downloadBtn *widget.Button
	taskList    *widget.List

	downloadSvc *download.Service
	metadataSvc *metadata.Provider
	settings    *config.Settings

	mu    sync.Mutex
	order []string
	views map[string]*taskView
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, downloadSvc *download.Service, metadataSvc *metadata.Provider, settings *config.Settings) *RootUI {
	ui := &RootUI{
		window:      window,
		downloadSvc: downloadSvc,
		metadataSvc: metadataSvc,
		settings:    settings,
		views:       make(map[string]*taskView),
	}

	ui.downloadSvc.Subscribe(ui.onEvent)
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a media URL")
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.audioCheck = widget.NewCheck("Audio only", nil)

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn,
		container.NewHBox(ui.audioCheck, ui.downloadBtn), ui.urlEntry)

	ui.taskList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.order)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	ui.window.SetContent(container.NewBorder(topPanel, nil, nil, nil, ui.taskList))
}

// createTaskItem builds the row template for the task list
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	title := widget.NewLabel("")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Truncation = fyne.TextTruncateEllipsis

	progress := widget.NewProgressBar()

	status := widget.NewLabel("")
	revealBtn := widget.NewButton("Show in folder", nil)
	revealBtn.Importance = widget.LowImportance
	revealBtn.Hide()

	bottom := container.NewHBox(status, layout.NewSpacer(), revealBtn)
	return container.NewVBox(title, progress, bottom)
}

// updateTaskItem fills one row from the current task snapshot
func (ui *RootUI) updateTaskItem(id widget.ListItemID, obj fyne.CanvasObject) {
	ui.mu.Lock()
	if id < 0 || id >= len(ui.order) {
		ui.mu.Unlock()
		return
	}
	view := *ui.views[ui.order[id]]
	ui.mu.Unlock()

	box := obj.(*fyne.Container)
	title := box.Objects[0].(*widget.Label)
	progress := box.Objects[1].(*widget.ProgressBar)
	bottom := box.Objects[2].(*fyne.Container)
	status := bottom.Objects[0].(*widget.Label)
	revealBtn := bottom.Objects[2].(*widget.Button)

	title.SetText(view.Title)
	progress.SetValue(view.Percent / 100)
	status.SetText(statusLine(view))

	if view.Status == model.StatusCompleted && view.Path != "" {
		path := view.Path
		revealBtn.OnTapped = func() {
			if err := platform.OpenFileInManager(path); err != nil {
				dialog.ShowError(err, ui.window)
			}
		}
		revealBtn.Show()
	} else {
		revealBtn.OnTapped = nil
		revealBtn.Hide()
	}
}

// statusLine renders the one-line state summary under a task title
func statusLine(view taskView) string {
	switch view.Status {
	case model.StatusQueued:
		return "Queued"
	case model.StatusDownloading:
		line := fmt.Sprintf("Downloading %.1f%%", view.Percent)
		if view.Speed != "" {
			line += " at " + view.Speed
		}
		if view.ETA != "" {
			line += ", ETA " + view.ETA
		}
		return line
	case model.StatusProcessing:
		return "Processing"
	case model.StatusCompleted:
		if view.FileSize > 0 {
			return "Completed, " + model.FormatFileSize(view.FileSize)
		}
		return "Completed"
	case model.StatusFailed, model.StatusCanceled:
		if view.Message != "" {
			return "Failed: " + view.Message
		}
		return "Failed"
	default:
		return string(view.Status)
	}
}

// onDownloadClick submits the entered URL as a new download task
func (ui *RootUI) onDownloadClick() {
	url := ui.urlEntry.Text
	if url == "" {
		return
	}

	kind := model.MediaVideo
	if ui.audioCheck.Checked {
		kind = model.MediaAudio
	}

	ui.urlEntry.SetText("")
	ui.downloadBtn.Disable()

	// Prefetch the title off the UI thread, then submit. Metadata failures
	// are not fatal; the task falls back to a URL-derived title.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), MetadataTimeout)
		defer cancel()

		meta, err := ui.metadataSvc.Fetch(ctx, url)
		if err != nil {
			meta = nil
		}

		_, err = ui.downloadSvc.Start(model.DownloadRequest{
			URL:      url,
			Kind:     kind,
			Metadata: meta,
		})

		fyne.Do(func() {
			ui.downloadBtn.Enable()
			if err != nil {
				dialog.ShowError(err, ui.window)
			}
		})
	}()
}

// onShowSettings opens the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.downloadSvc, ui.window).Show()
}

// onEvent merges one service event into the view state. Called from the
// service's watcher goroutines, so every widget touch goes through fyne.Do.
func (ui *RootUI) onEvent(ev model.Event) {
	ui.mu.Lock()
	switch ev.Type {
	case model.EventQueued:
		ui.order = append(ui.order, ev.TaskID)
		ui.views[ev.TaskID] = &taskView{
			ID:     ev.TaskID,
			Title:  ev.Task.GetDisplayTitle(),
			Status: ev.Task.Status,
		}

	case model.EventProgress:
		if view, ok := ui.views[ev.TaskID]; ok && ev.Progress != nil {
			applyProgress(view, ev.Progress)
		}

	case model.EventCompleted:
		if view, ok := ui.views[ev.TaskID]; ok {
			view.Status = model.StatusCompleted
			view.Percent = 100
			view.Path = ev.FilePath
			view.FileSize = ev.FileSize
			if ev.Title != "" {
				view.Title = ev.Title
			}
		}

	case model.EventFailed:
		if view, ok := ui.views[ev.TaskID]; ok {
			view.Status = model.StatusFailed
			view.Message = ev.Message
		}
	}
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.taskList.Refresh()
	})
}

// applyProgress merges the non-nil fields of a progress update
func applyProgress(view *taskView, p *model.Progress) {
	if p.Status != nil {
		view.Status = *p.Status
	}
	if p.Percent != nil {
		view.Percent = *p.Percent
	}
	if p.Speed != nil {
		view.Speed = *p.Speed
	}
	if p.ETA != nil {
		view.ETA = *p.ETA
	}
	if p.OutputPath != nil {
		view.Path = *p.OutputPath
	}
	if p.Title != nil && *p.Title != "" {
		view.Title = *p.Title
	}
}
