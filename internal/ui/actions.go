package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FitPrint/internal/engine"
	"github.com/piwi3910/FitPrint/internal/export"
	photoimporter "github.com/piwi3910/FitPrint/internal/importer"
	"github.com/piwi3910/FitPrint/internal/model"
	"github.com/piwi3910/FitPrint/internal/project"
)

// estimateWastePercent is the packing loss added to paper estimates.
const estimateWastePercent = 10

// ─── Layout ────────────────────────────────────────────────

func (a *App) prepareJob() (engine.Job, bool) {
	if len(a.project.Photos) == 0 {
		dialog.ShowInformation("Nothing to lay out", "Add at least one photo first.", a.window)
		return engine.Job{}, false
	}
	return engine.PrepareJob(a.project.Photos, a.project.Paper, a.project.Settings), true
}

// runGenerate packs the photos and shows the layout. With best set every
// strategy is tried and the layout with the fewest pages is kept.
func (a *App) runGenerate(best bool) {
	job, ok := a.prepareJob()
	if !ok {
		return
	}

	layout, err := job.Pack(best, engine.WithLogger(a.log))
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		dialog.ShowError(err, a.window)
		return
	case errors.Is(err, engine.ErrOversize):
		dialog.ShowInformation("Prints too large",
			fmt.Sprintf("%d prints do not fit the printable area of %s.\n\n"+
				"Reduce their size, choose larger paper or enable scaling.",
				len(layout.Rejected), a.project.Paper.Name),
			a.window)
	case errors.Is(err, engine.ErrUnplaceable):
		dialog.ShowInformation("Layout incomplete",
			fmt.Sprintf("%d prints could not be placed.", len(layout.Unplaced)), a.window)
	case err != nil:
		dialog.ShowError(err, a.window)
		return
	}

	a.project.Result = &layout
	a.refreshResults()
	a.tabs.SelectIndex(2)
}

func (a *App) showCompareDialog() {
	job, ok := a.prepareJob()
	if !ok {
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(job.Settings), job.Items, engine.WithLogger(a.log))
	best := engine.Best(results)

	rows := container.NewVBox(container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Pages", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Waste", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
	))

	var d dialog.Dialog
	for i, r := range results {
		res := r
		name := res.Scenario.Name
		if i == best {
			name += " (best)"
		}
		useBtn := widget.NewButton("Use", func() {
			s := res.Scenario.Settings
			a.project.Settings.Strategy = s.Strategy
			a.project.Settings.RotationAllowed = s.RotationAllowed
			a.project.Settings.Consolidate = s.Consolidate
			layout := res.Layout
			a.project.Result = &layout
			a.refreshSettingsPanel()
			a.refreshResults()
			a.tabs.SelectIndex(2)
			d.Hide()
		})
		waste := fmt.Sprintf("%.1f%%", res.WastePercent)
		if res.Err != nil {
			waste = "failed"
			useBtn.Disable()
		}
		rows.Add(container.NewGridWithColumns(5,
			widget.NewLabel(name),
			widget.NewLabel(fmt.Sprintf("%d", res.PagesUsed)),
			widget.NewLabel(fmt.Sprintf("%d", res.PlacedCount)),
			widget.NewLabel(waste),
			useBtn,
		))
	}

	d = dialog.NewCustom("Compare Strategies", "Close", container.NewVScroll(rows), a.window)
	d.Resize(fyne.NewSize(700, 420))
	d.Show()
}

func (a *App) showPaperEstimate() {
	job, ok := a.prepareJob()
	if !ok {
		return
	}

	price := 0.0
	if pp := a.inventory.FindPaperByName(a.project.Paper.Name); pp != nil {
		price = pp.PricePerSheet
	}
	est := model.CalculatePaperEstimate(job.Items, job.Settings.PageWidth, job.Settings.PageHeight,
		job.Settings.Spacing, estimateWastePercent, price)

	msg := fmt.Sprintf("Prints: %d\nPrintable area per page: %.0f x %.0f mm\n\n"+
		"Minimum pages: %d\nRecommended with %.0f%% waste: %d",
		len(job.Items), job.Settings.PageWidth, job.Settings.PageHeight,
		est.PagesNeededMin, est.WastePercent, est.PagesWithWaste)
	if est.PricePerSheet > 0 {
		msg += fmt.Sprintf("\nEstimated cost: %.2f", est.EstimatedCost)
	}
	dialog.ShowInformation("Paper Estimate", msg, a.window)
}

// ─── Projects ──────────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.addRecentProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.ProjectExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectFile(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.ProjectExtension}))
	d.Show()
}

func (a *App) openProjectFile(path string) {
	proj, err := project.LoadProject(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setProject(proj)
	a.addRecentProject(path)
}

func (a *App) showTemplatePicker() {
	if len(a.templates.Templates) == 0 {
		dialog.ShowInformation("No templates", "Save a project as a template first.", a.window)
		return
	}
	nameEntry := widget.NewEntry()
	nameEntry.SetText("Untitled Project")
	templateSelect := widget.NewSelect(a.templates.Names(), nil)
	templateSelect.SetSelectedIndex(0)

	form := dialog.NewForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template", templateSelect),
			widget.NewFormItem("Project Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			tmpl := a.templates.FindByName(templateSelect.Selected)
			if tmpl == nil {
				return
			}
			a.setProject(tmpl.ToProject(nameEntry.Text))
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

func (a *App) showSaveTemplateDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if a.templates.FindByName(nameEntry.Text) != nil {
				dialog.ShowError(fmt.Errorf("a template named %q already exists", nameEntry.Text), a.window)
				return
			}
			a.templates.Add(model.NewProjectTemplate(nameEntry.Text, descEntry.Text,
				a.project.Photos, a.project.Paper, a.project.Settings))
			if err := project.SaveTemplates(project.DefaultTemplatePath(), a.templates); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importOrder() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(photoimporter.ImportFile(reader.URI().Path()))
	}, a.window)
	exts := []string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm", ".yaml", ".yml", ".dxf"}
	d.SetFilter(storage.NewExtensionFileFilter(append(exts, photoimporter.ImageExtensions...)))
	d.Show()
}

// addImages adds every image in a folder as a photo at the default width.
func (a *App) addImages() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		entries, err := os.ReadDir(dir.Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		var paths []string
		for _, e := range entries {
			if !e.IsDir() && photoimporter.IsImageFile(e.Name()) {
				paths = append(paths, filepath.Join(dir.Path(), e.Name()))
			}
		}
		if len(paths) == 0 {
			dialog.ShowInformation("No images", "The folder contains no supported images.", a.window)
			return
		}
		a.handleImportResult(photoimporter.ImportImages(paths, a.project.Settings.DefaultWidth))
	}, a.window)
}

func (a *App) handleImportResult(result photoimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		a.log.Info("import warnings", zap.Strings("warnings", result.Warnings))
	}

	if len(result.Photos) > 0 {
		a.recordHistory("Import Photos")
		a.project.Photos = append(a.project.Photos, result.Photos...)
		a.refreshPhotoList()

		msg := fmt.Sprintf("Successfully imported %d photos (%d prints).",
			len(result.Photos), model.TotalCopies(result.Photos))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

// ─── Export ────────────────────────────────────────────────

// requireLayout reports whether a layout with pages exists, telling the
// user otherwise.
func (a *App) requireLayout() bool {
	if a.project.Result == nil || len(a.project.Result.Pages) == 0 {
		dialog.ShowInformation("No layout", "Generate a layout first before exporting.", a.window)
		return false
	}
	return true
}

// saveExport asks for a file name and runs write with the chosen path.
func (a *App) saveExport(defaultName, what string, write func(path string) error) {
	if !a.requireLayout() {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.log.Error("export failed", zap.String("kind", what), zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", what, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportPrintPDF() {
	a.saveExport(a.project.Name+".pdf", "Print PDF", func(path string) error {
		return export.ExportPrintPDF(path, *a.project.Result, a.project.Photos, a.project.Paper, a.project.Settings.OuterMargin)
	})
}

func (a *App) exportPreviewPDF() {
	a.saveExport(a.project.Name+"-preview.pdf", "Preview PDF", func(path string) error {
		return export.ExportPreviewPDF(path, *a.project.Result, a.project.Paper, a.project.Settings.OuterMargin)
	})
}

func (a *App) exportLabels() {
	a.saveExport(a.project.Name+"-labels.pdf", "Labels", func(path string) error {
		return export.ExportLabels(path, *a.project.Result)
	})
}

func (a *App) exportDXF() {
	a.saveExport(a.project.Name+".dxf", "DXF", func(path string) error {
		return export.ExportDXF(path, *a.project.Result, export.DefaultPageGap)
	})
}

func (a *App) exportXLSX() {
	a.saveExport(a.project.Name+".xlsx", "Excel report", func(path string) error {
		return export.ExportXLSX(path, *a.project.Result)
	})
}

func (a *App) exportSnapshot() {
	a.saveExport(a.project.Name+project.SnapshotExtension, "Snapshot", func(path string) error {
		snap := project.NewSnapshot(*a.project.Result, a.layoutPaper(), a.project.Settings.OuterMargin)
		return project.SaveSnapshot(path, snap)
	})
}

// openSnapshot shows a saved layout. The photo list is left alone.
func (a *App) openSnapshot() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		snap, err := project.LoadSnapshot(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		layout := snap.Layout
		a.project.Result = &layout
		a.project.Paper = snap.Paper
		a.project.Settings.OuterMargin = snap.Margin
		a.refreshSettingsPanel()
		a.refreshResults()
		a.tabs.SelectIndex(2)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.SnapshotExtension}))
	d.Show()
}
