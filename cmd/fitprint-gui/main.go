// FitPrint - photo print layout desktop app
//
// A cross-platform desktop application for packing photo prints onto
// paper pages and exporting print-ready PDFs.
//
// Build:
//   go build -o fitprint-gui ./cmd/fitprint-gui
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o fitprint-gui.exe ./cmd/fitprint-gui
//   GOOS=darwin  GOARCH=amd64 go build -o fitprint-gui-darwin ./cmd/fitprint-gui
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/piwi3910/FitPrint/internal/logger"
	"github.com/piwi3910/FitPrint/internal/ui"
)

func main() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	application := app.NewWithID("com.piwi3910.fitprint")
	window := application.NewWindow("FitPrint - Photo Print Layout")

	appUI := ui.NewApp(application, window, log)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()

	log.Info("starting desktop app")
	window.ShowAndRun()
	log.Info("desktop app closed", zap.String("window", window.Title()))
}
