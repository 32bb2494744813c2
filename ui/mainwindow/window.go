// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"sticker-slicer/internal/app"
	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/export"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/internal/project"
	"sticker-slicer/internal/region"
	"sticker-slicer/internal/segment"
	"sticker-slicer/pkg/geometry"
	"sticker-slicer/ui/canvas"
	"sticker-slicer/ui/dialogs"
	"sticker-slicer/ui/panels"
	"sticker-slicer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastAtlas = "lastAtlas"
)

// watchInterval is how often the loaded atlas file is polled for changes.
const watchInterval = 2 * time.Second

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	zoomLabel *widget.Label
	watcher   *app.FileWatcher

	// Menu items that need state tracking
	mainMenu        *fyne.MainMenu
	fitToWindowItem *fyne.MenuItem
	labelsItem      *fyne.MenuItem
	sortItems       []*fyne.MenuItem
	sortNames       []string
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(i18n.T("app.title"))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastAtlas()

	win.Resize(fyne.NewSize(1200, 800))
	win.SetCloseIntercept(func() {
		mw.guardUnsaved(win.Close)
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	// Create the image canvas
	mw.canvas = canvas.NewImageCanvas()

	// Create the side panel with tabs
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)

	// Create status bar
	mw.statusBar = widget.NewLabel(i18n.T("status.ready"))

	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	// Create toolbar with zoom controls
	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Create main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom and selection controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})
	selectBtn := widget.NewButton("Select", func() {
		mw.canvas.EnableSelectMode()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		mw.zoomLabel,
		selectBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu(i18n.T("menu.file"),
		fyne.NewMenuItem(i18n.T("menu.file.open_atlas"), mw.onOpenAtlas),
		fyne.NewMenuItem(i18n.T("menu.file.open_proj"), mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.file.save_proj"), mw.onSaveProject),
		fyne.NewMenuItem(i18n.T("menu.file.save_as"), mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.file.export_dir"), mw.onExportStickers),
		fyne.NewMenuItem(i18n.T("menu.file.export_zip"), mw.onExportArchive),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.file.quit"), func() { mw.app.Quit() }),
	)

	// Edit menu
	editMenu := fyne.NewMenu(i18n.T("menu.edit"),
		fyne.NewMenuItem(i18n.T("menu.edit.select_all"), mw.onSelectAll),
		fyne.NewMenuItem(i18n.T("menu.edit.deselect_all"), mw.onDeselectAll),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.edit.delete"), mw.onDeleteSelected),
	)

	// View menu: sort modes, label visibility and fit mode carry a
	// checkmark, their labels are filled in by syncViewMenu
	mw.sortNames = []string{
		i18n.T("sort.discovery"),
		i18n.T("sort.largest"),
		i18n.T("sort.smallest"),
	}
	mw.sortItems = []*fyne.MenuItem{
		fyne.NewMenuItem("", func() { mw.onSelectSort(region.SortDiscovery) }),
		fyne.NewMenuItem("", func() { mw.onSelectSort(region.SortLargest) }),
		fyne.NewMenuItem("", func() { mw.onSelectSort(region.SortSmallest) }),
	}
	mw.labelsItem = fyne.NewMenuItem("", mw.onToggleLabels)
	mw.fitToWindowItem = fyne.NewMenuItem("", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu(i18n.T("menu.view"),
		mw.sortItems[0],
		mw.sortItems[1],
		mw.sortItems[2],
		fyne.NewMenuItemSeparator(),
		mw.labelsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.view.zoom_in"), mw.onZoomIn),
		fyne.NewMenuItem(i18n.T("menu.view.zoom_out"), mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem(i18n.T("menu.view.zoom_reset"), mw.onActualSize),
	)

	// Tools menu
	toolsMenu := fyne.NewMenu(i18n.T("menu.tools"),
		fyne.NewMenuItem(i18n.T("menu.tools.rescan"), mw.onRescan),
		fyne.NewMenuItem(i18n.T("menu.tools.suggest"), mw.onSuggestThreshold),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.tools.prefs"), mw.onPreferences),
	)

	// Help menu
	helpMenu := fyne.NewMenu(i18n.T("menu.help"),
		fyne.NewMenuItem(i18n.T("menu.help.about"), mw.onAbout),
	)

	mw.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
	mw.syncViewMenu()
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventAtlasLoaded, func(data interface{}) {
		if a, ok := data.(*atlas.Atlas); ok {
			mw.canvas.SetImage(a.Image)
			mw.canvas.SetFitToWindow(true)
			mw.watchAtlas(a.Path)
		}
		mw.updateTitle()
		mw.syncViewMenu()
	})

	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		mw.updateTitle()
		mw.syncViewMenu()
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		mw.updateTitle()
		mw.updateStatus(i18n.T("status.proj_saved"))
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		mw.updateTitle()
	})

	mw.state.On(app.EventRegionsChanged, func(data interface{}) {
		mw.updateCounts()
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		mw.updateCounts()
	})

	mw.state.On(app.EventSortChanged, func(data interface{}) {
		mw.syncViewMenu()
	})

	mw.state.On(app.EventViewChanged, func(data interface{}) {
		mw.syncViewMenu()
	})
}

// syncViewMenu updates the checkmarks in the View menu from the current state.
func (mw *MainWindow) syncViewMenu() {
	for i, item := range mw.sortItems {
		item.Label = markLabel(mw.sortNames[i], mw.state.SortMode == region.SortMode(i))
	}
	mw.labelsItem.Label = markLabel(i18n.T("menu.view.labels"), mw.state.ShowLabels)
	mw.fitToWindowItem.Label = markLabel(i18n.T("menu.view.fit"), mw.canvas.GetFitToWindow())
	mw.mainMenu.Refresh()
}

// markLabel prefixes a menu label with a checkmark or a matching blank.
func markLabel(label string, checked bool) string {
	if checked {
		return "✓ " + label
	}
	return "  " + label
}

// updateTitle rebuilds the window title from the project and atlas state.
func (mw *MainWindow) updateTitle() {
	title := i18n.T("app.title")
	switch {
	case mw.state.ProjectPath != "":
		title += " - " + filepath.Base(mw.state.ProjectPath)
	case mw.state.Atlas != nil:
		title += " - " + filepath.Base(mw.state.Atlas.Path)
	}
	if mw.state.Modified {
		title += " *"
	}
	mw.SetTitle(title)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// updateCounts shows the sticker and selection counts in the status bar.
func (mw *MainWindow) updateCounts() {
	if res := mw.state.LastResult; res != nil {
		switch res.Status {
		case segment.StatusEmptyAtlas:
			mw.updateStatus(i18n.T("status.empty_atlas"))
			return
		case segment.StatusNothingFound:
			mw.updateStatus(i18n.T("status.nothing"))
			return
		}
	}
	mw.updateStatus(fmt.Sprintf(i18n.T("status.counts"),
		mw.state.Regions.Len(), mw.state.Regions.SelectedCount()))
}

// guardUnsaved runs action immediately, or asks about discarding unsaved
// changes first.
func (mw *MainWindow) guardUnsaved(action func()) {
	if !mw.state.Modified {
		action()
		return
	}
	dlg := dialog.NewCustomConfirm(i18n.T("app.title"), i18n.T("common.yes"), i18n.T("common.no"),
		widget.NewLabel(i18n.T("dialog.unsaved")), func(discard bool) {
			if discard {
				action()
			}
		}, mw.Window)
	dlg.Show()
}

// watchAtlas restarts the file watcher on the freshly loaded atlas path.
func (mw *MainWindow) watchAtlas(path string) {
	if mw.watcher != nil {
		mw.watcher.Stop()
		mw.watcher = nil
	}

	w := app.NewFileWatcher(path, watchInterval)
	if w == nil {
		return
	}
	w.OnChange(func() {
		mw.promptReload(path)
	})
	w.Start()
	mw.watcher = w
}

// promptReload asks whether to reload the atlas after it changed on disk.
func (mw *MainWindow) promptReload(path string) {
	dlg := dialog.NewCustomConfirm(i18n.T("app.title"), i18n.T("common.yes"), i18n.T("common.no"),
		widget.NewLabel(i18n.T("dialog.atlas_changed")), func(reload bool) {
			if !reload {
				return
			}
			if err := mw.state.LoadAtlas(path); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			if err := mw.state.Rescan(); err != nil {
				dialog.ShowError(err, mw.Window)
			}
		}, mw.Window)
	dlg.Show()
}

// restoreLastAtlas loads the atlas used in the previous session.
func (mw *MainWindow) restoreLastAtlas() {
	path := mw.app.Preferences().String(prefKeyLastAtlas)
	if path == "" {
		return
	}

	if err := mw.state.LoadAtlas(path); err != nil {
		log.Printf("Could not restore last atlas %s: %v", path, err)
		return
	}
	if err := mw.state.Rescan(); err != nil {
		log.Printf("Rescan after restore failed: %v", err)
	}
	mw.state.SetModified(false) // Don't mark as modified on restore
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// Menu action handlers

func (mw *MainWindow) onOpenAtlas() {
	mw.guardUnsaved(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			mw.saveLastDir(path)
			if err := mw.state.LoadAtlas(path); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.app.Preferences().SetString(prefKeyLastAtlas, path)
			if err := mw.state.Rescan(); err != nil {
				dialog.ShowError(err, mw.Window)
			}
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter(atlas.SupportedFormats()))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

func (mw *MainWindow) onOpenProject() {
	mw.guardUnsaved(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			mw.saveLastDir(path)
			if err := mw.state.LoadProject(path); err != nil {
				dialog.ShowError(err, mw.Window)
			}
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{project.Ext}))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != project.Ext {
			path += project.Ext
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName(mw.defaultProjectName())
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// defaultProjectName derives a project file name from the atlas file.
func (mw *MainWindow) defaultProjectName() string {
	name := "project"
	if mw.state.Atlas != nil {
		base := filepath.Base(mw.state.Atlas.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return name + project.Ext
}

// exportBounds returns the crop bounds of the selected stickers, or nil
// with a status message when there is nothing to export.
func (mw *MainWindow) exportBounds() []geometry.RectInt {
	if mw.state.Atlas == nil {
		mw.updateStatus(i18n.T("status.no_atlas"))
		return nil
	}
	bounds := export.SelectedBounds(mw.state.Regions.All())
	if len(bounds) == 0 {
		mw.updateStatus(i18n.T("dialog.export.none"))
		return nil
	}
	return bounds
}

func (mw *MainWindow) onExportStickers() {
	bounds := mw.exportBounds()
	if bounds == nil {
		return
	}
	fd := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil || list == nil {
			return
		}
		dir := list.Path()
		mw.app.Preferences().SetString(prefKeyLastDir, dir)
		files, err := export.Files(dir, mw.state.Atlas.Image, bounds)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus(fmt.Sprintf(i18n.T("dialog.export.done"), len(files)))
	}, mw.Window)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportArchive() {
	bounds := mw.exportBounds()
	if bounds == nil {
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".zip" {
			path += ".zip"
		}
		mw.saveLastDir(path)
		if err := export.ArchiveFile(path, mw.state.Atlas.Image, bounds); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus(fmt.Sprintf(i18n.T("dialog.export.done"), len(bounds)))
	}, mw.Window)
	fd.SetFileName("stickers.zip")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSelectAll() {
	mw.state.SelectAll()
}

func (mw *MainWindow) onDeselectAll() {
	mw.state.DeselectAll()
}

func (mw *MainWindow) onDeleteSelected() {
	mw.state.DeleteSelected()
}

func (mw *MainWindow) onSelectSort(mode region.SortMode) {
	mw.state.SetSortMode(mode)
}

func (mw *MainWindow) onToggleLabels() {
	mw.state.SetShowLabels(!mw.state.ShowLabels)
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	mw.canvas.SetFitToWindow(!mw.canvas.GetFitToWindow())
	mw.syncViewMenu()
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.syncViewMenu()
	}
}

func (mw *MainWindow) onRescan() {
	mw.sidePanel.Extraction().Rescan()
}

func (mw *MainWindow) onSuggestThreshold() {
	mw.sidePanel.Extraction().SuggestThreshold()
}

func (mw *MainWindow) onPreferences() {
	dialogs.NewPrefsDialog(mw.prefs, mw.app, mw.Window).Show()
}

func (mw *MainWindow) onAbout() {
	dialogs.ShowAbout(mw.Window)
}
