package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/FitPrint/internal/model"
	"github.com/piwi3910/FitPrint/internal/project"
	"github.com/piwi3910/FitPrint/internal/ui/widgets"
)

const maxRecentProjects = 10

// App holds all application state and UI references.
type App struct {
	app       fyne.App
	window    fyne.Window
	log       *zap.Logger
	project   model.Project
	config    model.AppConfig
	inventory model.Inventory
	templates model.TemplateStore
	history   *History
	theme     *FitPrintTheme

	// UI references for dynamic updates
	tabs            *container.AppTabs
	photosContainer *fyne.Container
	resultContainer *fyne.Container
	settingsPanel   *fyne.Container
	statusLabel     *widget.Label
}

// NewApp loads the saved preferences, inventory and templates and creates
// an empty project from the preferred defaults. Unreadable files are
// logged and replaced by defaults.
func NewApp(application fyne.App, window fyne.Window, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		app:     application,
		window:  window,
		log:     log,
		history: NewHistory(),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn("failed to load preferences, using defaults", zap.Error(err))
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		log.Warn("failed to load inventory, using defaults", zap.String("path", path), zap.Error(err))
	}
	a.inventory = inv

	templates, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		log.Warn("failed to load templates", zap.Error(err))
		templates = model.NewTemplateStore()
	}
	a.templates = templates

	a.theme = NewFitPrintTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)

	a.project = a.newProject()
	return a
}

// newProject creates an empty project carrying the preferred defaults.
func (a *App) newProject() model.Project {
	proj := model.NewProject()
	a.config.ApplyToSettings(&proj.Settings)
	proj.Paper = a.config.Paper()
	return proj
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Print PDF...", a.exportPrintPDF),
		fyne.NewMenuItem("Preview PDF...", a.exportPreviewPDF),
		fyne.NewMenuItem("Labels PDF...", a.exportLabels),
		fyne.NewMenuItem("DXF Cut Lines...", a.exportDXF),
		fyne.NewMenuItem("Excel Report...", a.exportXLSX),
		fyne.NewMenuItem("Layout Snapshot...", a.exportSnapshot),
	)

	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = a.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", a.resetProject),
		fyne.NewMenuItem("New from Template...", a.showTemplatePicker),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		recentItem,
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItem("Save as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Order...", a.importOrder),
		fyne.NewMenuItem("Add Images...", a.addImages),
		fyne.NewMenuItem("Open Snapshot...", a.openSnapshot),
		fyne.NewMenuItemSeparator(),
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Photos", func() {
			a.recordHistory("Clear Photos")
			a.project.Photos = []model.Photo{}
			a.refreshPhotoList()
		}),
	)

	layoutMenu := fyne.NewMenu("Layout",
		fyne.NewMenuItem("Generate", func() { a.runGenerate(false) }),
		fyne.NewMenuItem("Generate Best of All Strategies", func() { a.runGenerate(true) }),
		fyne.NewMenuItem("Compare Strategies...", a.showCompareDialog),
		fyne.NewMenuItem("Paper Estimate...", a.showPaperEstimate),
	)

	settingsMenu := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Advanced Layout Settings...", a.showAdvancedSettingsDialog),
		fyne.NewMenuItem("Paper Presets...", a.showPaperInventoryDialog),
		fyne.NewMenuItem("Print Sizes...", a.showPrintSizeInventoryDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, layoutMenu, settingsMenu, helpMenu))

	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.redo() })
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyG, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.runGenerate(false) })
}

func (a *App) buildRecentMenu() *fyne.Menu {
	menu := fyne.NewMenu("")
	if len(a.config.RecentProjects) == 0 {
		item := fyne.NewMenuItem("No recent projects", nil)
		item.Disabled = true
		menu.Items = append(menu.Items, item)
		return menu
	}
	for _, path := range a.config.RecentProjects {
		p := path
		menu.Items = append(menu.Items, fyne.NewMenuItem(p, func() { a.openProjectFile(p) }))
	}
	return menu
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About FitPrint",
		"FitPrint - Photo Print Layout\n\n"+
			"Packs photo prints onto as few sheets of paper as possible\n"+
			"and exports print-ready PDFs, labels and cut lines.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	photosTab := container.NewTabItem("Photos", a.buildPhotosPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsTab())
	resultsTab := container.NewTabItem("Layout", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(photosTab, settingsTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.statusLabel = widget.NewLabel("")
	a.updateStatus()

	root := container.NewBorder(a.buildToolbar(), a.statusLabel, nil, nil, a.tabs)
	return fynetooltip.AddWindowToolTipLayer(root, a.window.Canvas())
}

func (a *App) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open project", a.loadProject),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save project", a.saveProject),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentAddIcon(), "Add photo", a.showAddPhotoDialog),
		newIconButtonWithTooltip(theme.FileImageIcon(), "Add images", a.addImages),
		newIconButtonWithTooltip(theme.UploadIcon(), "Import order (CSV, Excel, YAML, DXF)", a.importOrder),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Generate layout", func() { a.runGenerate(false) }),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Compare strategies", a.showCompareDialog),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export print PDF", a.exportPrintPDF),
	)
}

func (a *App) updateStatus() {
	if a.statusLabel == nil {
		return
	}
	text := fmt.Sprintf("%s | %d photos, %d prints | %s",
		a.project.Name, len(a.project.Photos), model.TotalCopies(a.project.Photos), a.project.Paper.Name)
	if r := a.project.Result; r != nil && len(r.Pages) > 0 {
		text += fmt.Sprintf(" | %d pages, %.1f%% used", len(r.Pages), r.TotalEfficiency())
	}
	a.statusLabel.SetText(text)
}

// ─── Photos Panel ──────────────────────────────────────────

func (a *App) buildPhotosPanel() fyne.CanvasObject {
	a.photosContainer = container.NewVBox()
	a.refreshPhotoList()

	addBtn := widget.NewButtonWithIcon("Add Photo", theme.ContentAddIcon(), func() {
		a.showAddPhotoDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Photos", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.photosContainer),
	)
}

func (a *App) refreshPhotoList() {
	defer a.updateStatus()
	a.photosContainer.RemoveAll()

	if len(a.project.Photos) == 0 {
		a.photosContainer.Add(widget.NewLabel("No photos added yet. Click 'Add Photo' or import an order to begin."))
		return
	}

	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Width (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Height (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Copies", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Image", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Locked", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.photosContainer.Add(header)
	a.photosContainer.Add(widget.NewSeparator())

	for i := range a.project.Photos {
		idx := i
		p := a.project.Photos[idx]
		source := "-"
		if p.Path != "" {
			source = fmt.Sprintf("%dx%d px", p.PixelWidth, p.PixelHeight)
		}
		locked := ""
		if p.LockOrientation {
			locked = "yes"
		}
		row := container.NewGridWithColumns(8,
			widget.NewLabel(p.Name),
			widget.NewLabel(fmt.Sprintf("%.1f", p.Width)),
			widget.NewLabel(fmt.Sprintf("%.1f", p.Height)),
			widget.NewLabel(fmt.Sprintf("%d", p.Copies)),
			widget.NewLabel(source),
			widget.NewLabel(locked),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit photo", func() {
				a.showEditPhotoDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove photo", func() {
				a.recordHistory("Remove Photo")
				a.project.Photos = append(a.project.Photos[:idx], a.project.Photos[idx+1:]...)
				a.refreshPhotoList()
			}),
		)
		a.photosContainer.Add(row)
	}
}

// photoForm holds the entries shared by the add and edit photo dialogs.
type photoForm struct {
	name   *widget.Entry
	width  *widget.Entry
	height *widget.Entry
	copies *widget.Entry
	lock   *widget.Check
	size   *widget.Select
}

func (a *App) newPhotoForm(p model.Photo) *photoForm {
	f := &photoForm{
		name:   widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		copies: widget.NewEntry(),
		lock:   widget.NewCheck("", nil),
	}
	f.name.SetPlaceHolder("Photo name")
	f.name.SetText(p.Name)
	if p.Width > 0 {
		f.width.SetText(fmt.Sprintf("%.1f", p.Width))
	}
	if p.Height > 0 {
		f.height.SetText(fmt.Sprintf("%.1f", p.Height))
	}
	f.copies.SetText(fmt.Sprintf("%d", p.Copies))
	f.lock.Checked = p.LockOrientation

	f.size = widget.NewSelect(a.inventory.PrintSizeNames(), func(selected string) {
		ps := a.inventory.FindPrintSizeByName(selected)
		if ps == nil {
			return
		}
		w, _ := strconv.ParseFloat(f.width.Text, 64)
		h, _ := strconv.ParseFloat(f.height.Text, 64)
		tmp := model.Photo{Width: w, Height: h}
		ps.ApplyTo(&tmp)
		f.width.SetText(fmt.Sprintf("%.1f", tmp.Width))
		f.height.SetText(fmt.Sprintf("%.1f", tmp.Height))
	})
	f.size.PlaceHolder = "Select a print size..."
	return f
}

func (f *photoForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Name", f.name),
		widget.NewFormItem("Print Size", f.size),
		widget.NewFormItem("Width (mm)", f.width),
		widget.NewFormItem("Height (mm)", f.height),
		widget.NewFormItem("Copies", f.copies),
		widget.NewFormItem("Lock Orientation", f.lock),
	}
}

// parse returns the width, height and copies, or an error when any of
// them is not positive.
func (f *photoForm) parse() (w, h float64, copies int, err error) {
	w, _ = strconv.ParseFloat(f.width.Text, 64)
	h, _ = strconv.ParseFloat(f.height.Text, 64)
	copies, _ = strconv.Atoi(f.copies.Text)
	if w <= 0 || h <= 0 || copies <= 0 {
		return 0, 0, 0, fmt.Errorf("width, height, and copies must be > 0")
	}
	return w, h, copies, nil
}

func (a *App) showAddPhotoDialog() {
	f := a.newPhotoForm(model.Photo{Name: fmt.Sprintf("Photo %d", len(a.project.Photos)+1), Copies: 1})

	form := dialog.NewForm("Add Photo", "Add", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			w, h, copies, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			photo := model.NewPhoto(f.name.Text, w, h, copies)
			photo.LockOrientation = f.lock.Checked

			a.recordHistory("Add Photo")
			a.project.Photos = append(a.project.Photos, photo)
			a.refreshPhotoList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

func (a *App) showEditPhotoDialog(idx int) {
	f := a.newPhotoForm(a.project.Photos[idx])

	form := dialog.NewForm("Edit Photo", "Save", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			w, h, copies, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.recordHistory("Edit Photo")
			p := &a.project.Photos[idx]
			p.Name = f.name.Text
			p.Width = w
			p.Height = h
			p.Copies = copies
			p.LockOrientation = f.lock.Checked
			a.refreshPhotoList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsTab() fyne.CanvasObject {
	a.settingsPanel = container.NewStack()
	a.refreshSettingsPanel()
	return a.settingsPanel
}

// refreshSettingsPanel rebuilds the settings form, e.g. after a project
// was loaded.
func (a *App) refreshSettingsPanel() {
	if a.settingsPanel == nil {
		return
	}
	a.settingsPanel.RemoveAll()
	a.settingsPanel.Add(a.buildSettingsPanel())
	a.settingsPanel.Refresh()
}

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.project.Settings

	paperNames := a.inventory.PaperNames()
	paperSelect := widget.NewSelect(paperNames, func(selected string) {
		if pp := a.inventory.FindPaperByName(selected); pp != nil {
			a.project.Paper = pp.ToPaper()
			a.updateStatus()
		}
	})
	paperSelect.PlaceHolder = a.project.Paper.Name
	if a.inventory.FindPaperByName(a.project.Paper.Name) != nil {
		paperSelect.SetSelected(a.project.Paper.Name)
	}

	orientationSelect := widget.NewSelect(
		[]string{string(model.OrientationAuto), string(model.OrientationPortrait), string(model.OrientationLandscape)},
		func(selected string) { s.Orientation = model.PaperOrientation(selected) })
	orientationSelect.SetSelected(string(s.Orientation))

	strategySelect := widget.NewSelect(model.StrategyNames(), func(selected string) {
		s.Strategy = model.Strategy(selected)
	})
	strategySelect.SetSelected(string(s.Strategy))

	rotationCheck := widget.NewCheck("", func(b bool) { s.RotationAllowed = b })
	rotationCheck.Checked = s.RotationAllowed

	paperSection := widget.NewCard("Paper", "", container.NewGridWithColumns(2,
		widget.NewLabel("Paper Size"), paperSelect,
		widget.NewLabel("Orientation"), orientationSelect,
		widget.NewLabel("Outer Margin (mm)"), floatEntry(&s.OuterMargin),
	))

	layoutSection := widget.NewCard("Layout", "", container.NewGridWithColumns(2,
		widget.NewLabel("Spacing Between Prints (mm)"), floatEntry(&s.Spacing),
		widget.NewLabel("Allow Rotation"), rotationCheck,
		widget.NewLabel("Strategy"), strategySelect,
	))

	generateBtn := widget.NewButtonWithIcon("Generate Layout", theme.MediaPlayIcon(), func() {
		a.runGenerate(false)
	})
	generateBtn.Importance = widget.HighImportance

	advancedBtn := widget.NewButtonWithIcon("Advanced...", theme.SettingsIcon(), a.showAdvancedSettingsDialog)

	return container.NewVScroll(container.NewVBox(
		paperSection,
		layoutSection,
		container.NewHBox(layout.NewSpacer(), advancedBtn, generateBtn),
	))
}

// floatEntry creates an entry bound to a float setting.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%.1f", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

func intEntry(val *int64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%d", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			*val = v
		}
	}
	return e
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No layout yet. Add photos, then click Generate."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	defer a.updateStatus()
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderLayoutResults(a.project.Result, a.layoutPaper(), a.project.Settings.OuterMargin))
	a.resultContainer.Refresh()
}

// layoutPaper returns the project paper turned to match the current
// layout's page orientation.
func (a *App) layoutPaper() model.Paper {
	p := a.project.Paper
	r := a.project.Result
	if r == nil || r.PageWidth == r.PageHeight {
		return p
	}
	if (r.PageWidth > r.PageHeight) != (p.Width > p.Height) {
		return p.Rotated()
	}
	return p
}

// ─── History ───────────────────────────────────────────────

// recordHistory snapshots the photo list before a change.
func (a *App) recordHistory(label string) {
	a.history.Push(MakeSnapshot(a.project.Photos, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.project.Photos, "current"))
	if !ok {
		return
	}
	a.project.Photos = snap.Photos
	a.refreshPhotoList()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project.Photos, "current"))
	if !ok {
		return
	}
	a.project.Photos = snap.Photos
	a.refreshPhotoList()
}

// resetProject replaces the current project and clears the history.
func (a *App) resetProject() {
	a.setProject(a.newProject())
}

func (a *App) setProject(proj model.Project) {
	if proj.Photos == nil {
		proj.Photos = []model.Photo{}
	}
	a.project = proj
	a.history.Clear()
	a.refreshPhotoList()
	a.refreshSettingsPanel()
	a.refreshResults()
}

// addRecentProject records path in the preferences and rebuilds the menu.
func (a *App) addRecentProject(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		a.log.Warn("failed to save preferences", zap.Error(err))
	}
	a.SetupMenus()
}
