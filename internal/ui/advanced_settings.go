package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FitPrint/internal/model"
)

// showAdvancedSettingsDialog opens the settings that are not shown in the
// quick settings panel: item order, consolidation, scaling and import.
func (a *App) showAdvancedSettingsDialog() {
	s := &a.project.Settings

	// --- Packing ---
	orderSelect := widget.NewSelect(model.OrderNames(), func(selected string) {
		s.Order = model.Order(selected)
	})
	orderSelect.SetSelected(string(s.Order))

	consolidateCheck := widget.NewCheck("", func(b bool) { s.Consolidate = b })
	consolidateCheck.Checked = s.Consolidate

	packingSection := widget.NewCard("Packing",
		"Order in which prints are offered to the strategy",
		container.NewGridWithColumns(2,
			widget.NewLabel("Item Order"), orderSelect,
			widget.NewLabel("Seed (balanced order)"), intEntry(&s.Seed),
			widget.NewLabel("Consolidate Pages"), consolidateCheck,
		))

	// --- Scaling ---
	scaleSelect := widget.NewSelect(model.ScaleModes(), func(selected string) {
		s.ScaleMode = model.ScaleMode(selected)
	})
	scaleSelect.SetSelected(string(s.ScaleMode))

	scalingSection := widget.NewCard("Scaling",
		"Resize prints before packing, keeping their aspect ratio",
		container.NewGridWithColumns(2,
			widget.NewLabel("Scale Mode"), scaleSelect,
			widget.NewLabel("Minimum Short Side (mm)"), floatEntry(&s.MinSize),
			widget.NewLabel("Maximum Long Side (mm)"), floatEntry(&s.MaxSize),
		))

	// --- Import ---
	importSection := widget.NewCard("Image Import", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("DPI"), floatEntry(&s.DPI),
			widget.NewLabel("Default Photo Width (mm)"), floatEntry(&s.DefaultWidth),
		))

	content := container.NewVScroll(container.NewVBox(
		packingSection,
		scalingSection,
		importSection,
	))

	d := dialog.NewCustom("Advanced Settings", "Close", content, a.window)
	d.Resize(fyne.NewSize(550, 500))
	d.Show()
}
