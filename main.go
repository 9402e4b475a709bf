package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/mediagrab/internal/config"
	"github.com/ytget/mediagrab/internal/download"
	"github.com/ytget/mediagrab/internal/metadata"
	"github.com/ytget/mediagrab/internal/platform"
	"github.com/ytget/mediagrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.mediagrab"
	AppName = "MediaGrab"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if settings.DownloadDirectory() == "" {
		if dir, err := platform.GetHomeDownloadsDir(); err == nil {
			settings.SetDownloadDirectory(dir)
		}
	}
	if dir := settings.DownloadDirectory(); dir != "" {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			logger.Warn("failed to ensure downloads dir", "dir", dir, "error", err)
		}
	}

	locator := platform.Binaries{}
	downloadSvc := download.NewService(settings, locator, logger)
	metadataSvc := metadata.NewProvider(locator.DownloadEngine)

	ui.NewRootUI(myWindow, downloadSvc, metadataSvc, settings)

	// Closing the window cancels everything still running before exit.
	myWindow.SetCloseIntercept(func() {
		downloadSvc.Shutdown()
		myWindow.Close()
	})

	myWindow.ShowAndRun()
}
