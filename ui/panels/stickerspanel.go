package panels

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"sticker-slicer/internal/app"
	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/internal/palette"
	"sticker-slicer/internal/region"
	"sticker-slicer/pkg/geometry"
	"sticker-slicer/ui/canvas"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Overlay colors for sticker outlines.
var (
	selectedColor   = color.RGBA{R: 0x00, G: 0xC8, B: 0x96, A: 255} // Teal
	deselectedColor = color.RGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 255} // Gray
	focusColor      = color.RGBA{R: 0x7E, G: 0x57, B: 0xC2, A: 255} // Violet
)

const thumbnailEdge = 32

// StickersPanel lists extracted stickers and manages their selection.
type StickersPanel struct {
	state     *app.State
	canvas    *canvas.ImageCanvas
	container fyne.CanvasObject

	sortSelect  *widget.Select
	list        *widget.List
	countLabel  *widget.Label
	detailLabel *widget.Label

	// View snapshot, rebuilt on state changes. Thumbnails and swatches
	// are keyed by sticker ID so re-sorting does not recompute them.
	rows     []region.Region
	thumbs   map[int]image.Image
	swatches map[int]palette.Swatch
}

// NewStickersPanel creates a new stickers panel.
func NewStickersPanel(state *app.State, cvs *canvas.ImageCanvas) *StickersPanel {
	st := &StickersPanel{
		state:    state,
		canvas:   cvs,
		thumbs:   make(map[int]image.Image),
		swatches: make(map[int]palette.Swatch),
	}

	// Initialize labels first (before any callbacks can fire)
	st.countLabel = widget.NewLabel(i18n.T("panel.regions.empty"))
	st.detailLabel = widget.NewLabel("")
	st.detailLabel.Wrapping = fyne.TextWrapWord

	// Sort order selection
	sortNames := []string{
		i18n.T("sort.discovery"),
		i18n.T("sort.largest"),
		i18n.T("sort.smallest"),
	}
	st.sortSelect = widget.NewSelect(sortNames, func(selected string) {
		for i, name := range sortNames {
			if name == selected {
				state.SetSortMode(region.SortMode(i))
				return
			}
		}
	})
	st.sortSelect.SetSelected(sortNames[state.SortMode])

	// Sticker list
	st.list = widget.NewList(
		func() int {
			return len(st.rows)
		},
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			thumb := fynecanvas.NewImageFromImage(nil)
			thumb.FillMode = fynecanvas.ImageFillContain
			thumb.SetMinSize(fyne.NewSize(thumbnailEdge, thumbnailEdge))
			swatch := fynecanvas.NewRectangle(color.Transparent)
			swatch.SetMinSize(fyne.NewSize(14, 14))
			return container.NewHBox(check, thumb, swatch, widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			st.updateRow(id, obj)
		},
	)
	st.list.OnSelected = func(id widget.ListItemID) {
		st.focusRow(id)
	}

	// Buttons
	selectAllBtn := widget.NewButton(i18n.T("menu.edit.select_all"), func() {
		state.SelectAll()
	})
	deselectAllBtn := widget.NewButton(i18n.T("menu.edit.deselect_all"), func() {
		state.DeselectAll()
	})
	deleteBtn := widget.NewButton(i18n.T("menu.edit.delete"), func() {
		state.DeleteSelected()
	})

	// Canvas interaction: left click toggles, right click focuses,
	// rubber-band selects everything it touches
	cvs.OnLeftClick(func(x, y float64) {
		st.onCanvasClick(x, y)
	})
	cvs.OnRightClick(func(x, y float64) {
		st.onCanvasFocus(x, y)
	})
	cvs.OnSelect(func(x1, y1, x2, y2 float64) {
		st.onRubberBand(x1, y1, x2, y2)
	})

	// Layout
	st.container = container.NewBorder(
		container.NewVBox(
			widget.NewLabel(i18n.T("menu.view.sort")),
			st.sortSelect,
			st.countLabel,
		),
		container.NewVBox(
			st.detailLabel,
			container.NewHBox(selectAllBtn, deselectAllBtn, deleteBtn),
		),
		nil, nil,
		st.list,
	)

	// Register for events
	state.On(app.EventRegionsChanged, func(data interface{}) {
		st.Reload()
	})
	state.On(app.EventSelectionChanged, func(data interface{}) {
		st.refreshView()
	})
	state.On(app.EventSortChanged, func(data interface{}) {
		st.refreshView()
	})
	state.On(app.EventProjectLoaded, func(data interface{}) {
		st.sortSelect.SetSelected(sortNames[state.SortMode])
	})
	state.On(app.EventViewChanged, func(data interface{}) {
		st.syncOverlays()
	})
	state.On(app.EventAtlasLoaded, func(data interface{}) {
		st.canvas.ClearOverlay("focus")
		st.detailLabel.SetText("")
	})

	return st
}

// Container returns the panel container.
func (st *StickersPanel) Container() fyne.CanvasObject {
	return st.container
}

// Reload rebuilds thumbnails and swatches, then refreshes the view.
func (st *StickersPanel) Reload() {
	st.thumbs = make(map[int]image.Image)
	st.swatches = make(map[int]palette.Swatch)

	if st.state.Atlas != nil && st.state.Atlas.Image != nil {
		img := st.state.Atlas.Image
		regions := st.state.Regions.All()
		bounds := make([]geometry.RectInt, len(regions))
		for i, r := range regions {
			bounds[i] = r.Bounds
			st.thumbs[r.ID] = atlas.Thumbnail(img, r.Bounds, thumbnailEdge)
		}
		for i, sw := range palette.Swatches(img, bounds) {
			st.swatches[regions[i].ID] = sw
		}
	}

	st.refreshView()
}

// refreshView re-snapshots the ordered rows and redraws list and overlays.
func (st *StickersPanel) refreshView() {
	st.rows = st.state.OrderedRegions()

	if len(st.rows) == 0 {
		st.countLabel.SetText(i18n.T("panel.regions.empty"))
	} else {
		st.countLabel.SetText(fmt.Sprintf(i18n.T("status.counts"),
			st.state.Regions.Len(), st.state.Regions.SelectedCount()))
	}

	st.list.Refresh()
	st.syncOverlays()
}

// updateRow fills one list row from the view snapshot.
func (st *StickersPanel) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(st.rows) {
		return
	}
	r := st.rows[id]
	row := obj.(*fyne.Container).Objects

	check := row[0].(*widget.Check)
	check.OnChanged = nil // do not fire while syncing
	check.SetChecked(r.Selected)
	check.OnChanged = func(bool) {
		st.state.ToggleRegion(r.ID)
	}

	thumb := row[1].(*fynecanvas.Image)
	thumb.Image = st.thumbs[r.ID]
	thumb.Refresh()

	swatch := row[2].(*fynecanvas.Rectangle)
	if sw, ok := st.swatches[r.ID]; ok {
		swatch.FillColor = sw.Color
	} else {
		swatch.FillColor = color.Transparent
	}
	swatch.Refresh()

	label := row[3].(*widget.Label)
	label.SetText(fmt.Sprintf("#%d  %d × %d", r.ID, r.Bounds.Width, r.Bounds.Height))
}

// focusRow highlights a sticker on the canvas and shows its details.
func (st *StickersPanel) focusRow(id widget.ListItemID) {
	if id >= len(st.rows) {
		return
	}
	r := st.rows[id]

	st.canvas.SetOverlay("focus", &canvas.Overlay{
		Rectangles: []canvas.OverlayRect{{
			X:      r.Bounds.X,
			Y:      r.Bounds.Y,
			Width:  r.Bounds.Width,
			Height: r.Bounds.Height,
			Fill:   canvas.FillTarget,
		}},
		Color: focusColor,
	})
	c := r.Bounds.Center()
	st.canvas.CenterOn(float64(c.X), float64(c.Y))

	detail := fmt.Sprintf("#%d  %d × %d @ (%d, %d)",
		r.ID, r.Bounds.Width, r.Bounds.Height, r.Bounds.X, r.Bounds.Y)
	if sw, ok := st.swatches[r.ID]; ok {
		detail += "  " + sw.Hex
	}
	st.detailLabel.SetText(detail)
}

// onCanvasClick toggles the sticker under the cursor.
func (st *StickersPanel) onCanvasClick(x, y float64) {
	for _, r := range st.state.Regions.All() {
		if r.Bounds.Contains(int(x), int(y)) {
			st.state.ToggleRegion(r.ID)
			return
		}
	}
}

// onCanvasFocus focuses the sticker under the cursor in the list.
func (st *StickersPanel) onCanvasFocus(x, y float64) {
	for i, r := range st.rows {
		if r.Bounds.Contains(int(x), int(y)) {
			st.list.Select(i)
			return
		}
	}
}

// onRubberBand selects every sticker the dragged rectangle touches.
// The callback delivers canvas coordinates.
func (st *StickersPanel) onRubberBand(x1, y1, x2, y2 float64) {
	ix1, iy1 := st.canvas.CanvasToImage(x1, y1)
	ix2, iy2 := st.canvas.CanvasToImage(x2, y2)
	sel := geometry.RectInt{
		X:      int(ix1),
		Y:      int(iy1),
		Width:  int(ix2 - ix1),
		Height: int(iy2 - iy1),
	}

	for _, r := range st.state.Regions.All() {
		if !r.Selected && r.Bounds.Intersects(sel) {
			st.state.ToggleRegion(r.ID)
		}
	}
}

// syncOverlays redraws the sticker outlines on the canvas.
// Selected stickers get a striped fill, deselected ones a plain outline.
func (st *StickersPanel) syncOverlays() {
	var selected, deselected []canvas.OverlayRect

	showLabels := st.state.ShowLabels
	for _, r := range st.state.Regions.All() {
		rect := canvas.OverlayRect{
			X:      r.Bounds.X,
			Y:      r.Bounds.Y,
			Width:  r.Bounds.Width,
			Height: r.Bounds.Height,
		}
		if showLabels {
			rect.Label = strconv.Itoa(r.ID)
		}
		if r.Selected {
			rect.Fill = canvas.FillStripe
			rect.StripeInterval = 12
			selected = append(selected, rect)
		} else {
			deselected = append(deselected, rect)
		}
	}

	st.canvas.SetOverlay("selected", &canvas.Overlay{Rectangles: selected, Color: selectedColor})
	st.canvas.SetOverlay("deselected", &canvas.Overlay{Rectangles: deselected, Color: deselectedColor})
}
