package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FitPrint/internal/model"
	"github.com/piwi3910/FitPrint/internal/project"
)

// ─── Paper Inventory Dialog ────────────────────────────────

func (a *App) showPaperInventoryDialog() {
	paperList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		paperList.RemoveAll()

		if len(a.inventory.Papers) == 0 {
			paperList.Add(widget.NewLabel("No paper presets defined."))
			return
		}

		paperList.Add(container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Price/Sheet", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		paperList.Add(widget.NewSeparator())

		for i := range a.inventory.Papers {
			idx := i
			p := a.inventory.Papers[idx]
			paperList.Add(container.NewGridWithColumns(5,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%.0f x %.0f mm", p.Width, p.Height)),
				widget.NewLabel(fmt.Sprintf("%.2f", p.PricePerSheet)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPaperPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Papers = append(a.inventory.Papers[:idx], a.inventory.Papers[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Paper", theme.ContentAddIcon(), func() {
		a.showPaperPresetDialog(-1, refreshList)
	})

	d := dialog.NewCustom("Paper Inventory", "Close",
		container.NewBorder(a.inventoryToolbar(addBtn, refreshList), nil, nil, nil, container.NewVScroll(paperList)),
		a.window)
	d.Resize(fyne.NewSize(650, 500))
	d.Show()
}

// showPaperPresetDialog edits the preset at idx, or adds a new one when
// idx is negative.
func (a *App) showPaperPresetDialog(idx int, onDone func()) {
	preset := model.NewPaperPreset("Custom Paper", 210, 297, 0)
	title, confirm := "Add Paper", "Add"
	if idx >= 0 {
		preset = a.inventory.Papers[idx]
		title, confirm = "Edit Paper", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(preset.Name)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", preset.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", preset.Height))
	priceEntry := widget.NewEntry()
	priceEntry.SetText(fmt.Sprintf("%.2f", preset.PricePerSheet))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Price per Sheet", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, errW := strconv.ParseFloat(widthEntry.Text, 64)
			h, errH := strconv.ParseFloat(heightEntry.Text, 64)
			if errW != nil || errH != nil || w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be positive numbers"), a.window)
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)

			preset.Name = nameEntry.Text
			preset.Width = w
			preset.Height = h
			preset.PricePerSheet = price
			if idx >= 0 {
				a.inventory.Papers[idx] = preset
			} else {
				a.inventory.Papers = append(a.inventory.Papers, preset)
			}
			a.saveInventory()
			a.refreshSettingsPanel()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

// ─── Print Size Inventory Dialog ───────────────────────────

func (a *App) showPrintSizeInventoryDialog() {
	sizeList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		sizeList.RemoveAll()

		if len(a.inventory.PrintSizes) == 0 {
			sizeList.Add(widget.NewLabel("No print sizes defined."))
			return
		}

		sizeList.Add(container.NewGridWithColumns(4,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		sizeList.Add(widget.NewSeparator())

		for i := range a.inventory.PrintSizes {
			idx := i
			s := a.inventory.PrintSizes[idx]
			sizeList.Add(container.NewGridWithColumns(4,
				widget.NewLabel(s.Name),
				widget.NewLabel(fmt.Sprintf("%.0f x %.0f mm", s.Width, s.Height)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPrintSizeDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.PrintSizes = append(a.inventory.PrintSizes[:idx], a.inventory.PrintSizes[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Print Size", theme.ContentAddIcon(), func() {
		a.showPrintSizeDialog(-1, refreshList)
	})

	d := dialog.NewCustom("Print Sizes", "Close",
		container.NewBorder(a.inventoryToolbar(addBtn, refreshList), nil, nil, nil, container.NewVScroll(sizeList)),
		a.window)
	d.Resize(fyne.NewSize(550, 500))
	d.Show()
}

func (a *App) showPrintSizeDialog(idx int, onDone func()) {
	size := model.NewPrintSize("10x15", 102, 152)
	title, confirm := "Add Print Size", "Add"
	if idx >= 0 {
		size = a.inventory.PrintSizes[idx]
		title, confirm = "Edit Print Size", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(size.Name)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", size.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", size.Height))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, errW := strconv.ParseFloat(widthEntry.Text, 64)
			h, errH := strconv.ParseFloat(heightEntry.Text, 64)
			if errW != nil || errH != nil || w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be positive numbers"), a.window)
				return
			}
			size.Name = nameEntry.Text
			size.Width = w
			size.Height = h
			if idx >= 0 {
				a.inventory.PrintSizes[idx] = size
			} else {
				a.inventory.PrintSizes = append(a.inventory.PrintSizes, size)
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) inventoryToolbar(addBtn *widget.Button, onDone func()) fyne.CanvasObject {
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(onDone)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), a.exportInventory)
	return container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)
}

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		a.refreshSettingsPanel()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d papers and %d print sizes.",
				len(a.inventory.Papers), len(a.inventory.PrintSizes)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SaveInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Inventory exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if err := project.SaveInventory(project.DefaultInventoryPath(), a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}
