package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FitPrint/internal/model"
	"github.com/piwi3910/FitPrint/internal/project"
)

// showSettingsDialog displays the application preferences editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	paperKeys := make([]string, len(model.PaperSizes))
	for i, p := range model.PaperSizes {
		paperKeys[i] = p.Key
	}
	paperSelect := widget.NewSelect(paperKeys, func(selected string) {
		cfg.DefaultPaper = selected
	})
	paperSelect.SetSelected(cfg.DefaultPaper)

	orientationSelect := widget.NewSelect(
		[]string{string(model.OrientationAuto), string(model.OrientationPortrait), string(model.OrientationLandscape)},
		func(selected string) { cfg.DefaultOrientation = selected })
	orientationSelect.SetSelected(cfg.DefaultOrientation)

	strategySelect := widget.NewSelect(model.StrategyNames(), func(selected string) {
		cfg.DefaultStrategy = selected
	})
	strategySelect.SetSelected(cfg.DefaultStrategy)

	scaleSelect := widget.NewSelect(model.ScaleModes(), func(selected string) {
		cfg.DefaultScaleMode = model.ScaleMode(selected)
	})
	scaleSelect.SetSelected(string(cfg.DefaultScaleMode))

	rotationCheck := widget.NewCheck("", func(b bool) { cfg.DefaultRotation = b })
	rotationCheck.Checked = cfg.DefaultRotation

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Paper", paperSelect),
		widget.NewFormItem("Default Orientation", orientationSelect),
		widget.NewFormItem("Default Outer Margin (mm)", floatEntry(&cfg.DefaultOuterMargin)),
		widget.NewFormItem("Default Spacing (mm)", floatEntry(&cfg.DefaultSpacing)),
		widget.NewFormItem("Allow Rotation", rotationCheck),
		widget.NewFormItem("Default Strategy", strategySelect),
		widget.NewFormItem("Default Scale Mode", scaleSelect),
		widget.NewFormItem("Image DPI", floatEntry(&cfg.DefaultDPI)),
		widget.NewFormItem("Imported Photo Width (mm)", floatEntry(&cfg.DefaultPhotoWidth)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.applyTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save preferences: %w", err), a.window)
			} else {
				dialog.ShowInformation("Preferences Saved", "New projects will use these defaults.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// applyTheme switches the running app to the configured theme.
func (a *App) applyTheme() {
	a.theme.SetThemeName(a.config.Theme)
	a.app.Settings().SetTheme(a.theme)
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.inventory, a.templates); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("fitprint-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your preferences, paper and print size presets and templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.inventory = backup.Inventory
					a.templates = backup.Templates
					a.applyTheme()
					if err := a.saveAll(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported data: %w", err), a.window)
						return
					}
					a.SetupMenus()
					a.refreshSettingsPanel()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (preferences, presets, templates) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

func (a *App) saveAll() error {
	if err := a.saveConfig(); err != nil {
		return err
	}
	if err := project.SaveInventory(project.DefaultInventoryPath(), a.inventory); err != nil {
		return err
	}
	return project.SaveTemplates(project.DefaultTemplatePath(), a.templates)
}
