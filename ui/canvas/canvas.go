// Package canvas provides an image canvas with pan, zoom, and selection.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ImageCanvas displays the atlas with pan, zoom, overlays, and rubber-band selection.
type ImageCanvas struct {
	widget.BaseWidget

	// Atlas image, cached as RGBA for fast per-pixel sampling
	img *image.RGBA

	// Overlays (keyed by name, e.g. "selected", "focus")
	overlays map[string]*Overlay

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Selection (rubber-band)
	selecting     bool
	selectMode    bool // When true, next drag creates a selection
	selectStart   fyne.Position
	selectEnd     fyne.Position
	selectionRect *OverlayRect // Current selection rectangle (in canvas coords)

	// Container
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size // Current image display size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onSelect     func(x1, y1, x2, y2 float64) // Called with canvas coordinates
	onLeftClick  func(x, y float64)           // Left click at image coordinates
	onRightClick func(x, y float64)           // Right click at image coordinates
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// ScrollTo sets the scroll container's offset.
func (zs *zoomScroll) ScrollTo(pos fyne.Position) {
	zs.scroll.Offset = pos
	zs.scroll.Refresh()
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(ic *ImageCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: ic,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	if !dc.canvas.selectMode {
		return
	}

	// ev.Position is relative to viewport, add scroll offset for content position
	scrollOffset := dc.canvas.scroll.Offset()
	pos := fyne.Position{
		X: ev.Position.X + scrollOffset.X,
		Y: ev.Position.Y + scrollOffset.Y,
	}

	if !dc.canvas.selecting {
		dc.canvas.selecting = true
		dc.canvas.selectStart = pos
	}
	dc.canvas.selectEnd = pos

	// Use canvas coordinates directly
	x1, y1 := float64(dc.canvas.selectStart.X), float64(dc.canvas.selectStart.Y)
	x2, y2 := float64(dc.canvas.selectEnd.X), float64(dc.canvas.selectEnd.Y)

	// Normalize
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	// Store in canvas coordinates (selectionRect holds canvas coords)
	dc.canvas.selectionRect = &OverlayRect{
		X:      int(x1),
		Y:      int(y1),
		Width:  int(x2 - x1),
		Height: int(y2 - y1),
	}
	dc.canvas.Refresh()
}

func (dc *draggableContent) DragEnd() {
	if !dc.canvas.selectMode || !dc.canvas.selecting {
		return
	}

	dc.canvas.selecting = false
	dc.canvas.selectMode = false // Auto-disable after selection

	// Call callback with canvas coordinates
	if dc.canvas.onSelect != nil && dc.canvas.selectionRect != nil {
		rect := dc.canvas.selectionRect
		dc.canvas.onSelect(
			float64(rect.X),
			float64(rect.Y),
			float64(rect.X+rect.Width),
			float64(rect.Y+rect.Height),
		)
	}

	// Clear selection rectangle
	dc.canvas.selectionRect = nil
	dc.canvas.Refresh()
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// Tapped handles left-click events.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if dc.canvas.onLeftClick == nil {
		return
	}

	// Workaround for Fyne bug: reject clicks outside widget bounds
	// ev.Position should be relative to the widget, so check for valid range
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	// Convert screen position to image coordinates
	scrollOffset := dc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + scrollOffset.X)
	canvasY := float64(ev.Position.Y + scrollOffset.Y)

	// Convert from canvas (zoomed) to image coordinates
	imgX := canvasX / dc.canvas.zoom
	imgY := canvasY / dc.canvas.zoom

	dc.canvas.onLeftClick(imgX, imgY)
}

// TappedSecondary handles right-click events.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if dc.canvas.onRightClick == nil {
		return
	}

	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	// Convert screen position to image coordinates
	scrollOffset := dc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + scrollOffset.X)
	canvasY := float64(ev.Position.Y + scrollOffset.Y)

	// Convert from canvas (zoomed) to image coordinates
	imgX := canvasX / dc.canvas.zoom
	imgY := canvasY / dc.canvas.zoom

	dc.canvas.onRightClick(imgX, imgY)
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:     1.0,
		imgSize:  fyne.NewSize(400, 300),
		overlays: make(map[string]*Overlay),
	}

	// Create the raster for drawing
	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	// Wrap raster in draggable content for mouse events
	ic.content = newDraggableContent(ic, ic.raster)

	// Create zoomable scroll container (wheel = zoom, drag = select)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// EnableSelectMode enables selection mode for the next drag.
func (ic *ImageCanvas) EnableSelectMode() {
	ic.selectMode = true
	ic.selecting = false
	ic.selectionRect = nil
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetImage sets the atlas image to display. Passing nil clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	if img == nil {
		ic.img = nil
	} else {
		b := img.Bounds()
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		ic.img = rgba
	}
	ic.updateContentSize()
}

// SetOverlay sets an overlay with the given name.
func (ic *ImageCanvas) SetOverlay(name string, overlay *Overlay) {
	ic.overlays[name] = overlay
	ic.Refresh()
}

// ClearOverlay removes an overlay by name.
func (ic *ImageCanvas) ClearOverlay(name string) {
	delete(ic.overlays, name)
	ic.Refresh()
}

// ClearAllOverlays removes all overlays.
func (ic *ImageCanvas) ClearAllOverlays() {
	ic.overlays = make(map[string]*Overlay)
	ic.Refresh()
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ic *ImageCanvas) GetZoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (ic *ImageCanvas) FitToWindow() {
	bounds := ic.getImageBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	// Get viewport size
	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	// Calculate zoom to fit both dimensions
	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	ic.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (ic *ImageCanvas) GetFitToWindow() bool {
	return ic.fitToWindow
}

// CheckResize checks if scroll container was resized and auto-fits if enabled.
func (ic *ImageCanvas) CheckResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// CenterOn scrolls so the given image coordinates sit in the middle of the viewport.
func (ic *ImageCanvas) CenterOn(imgX, imgY float64) {
	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	canvasX, canvasY := ic.ImageToCanvas(imgX, imgY)
	offX := float32(canvasX) - viewSize.Width/2
	offY := float32(canvasY) - viewSize.Height/2

	// Clamp to content extents, then to the origin
	if maxX := ic.imgSize.Width - viewSize.Width; offX > maxX {
		offX = maxX
	}
	if maxY := ic.imgSize.Height - viewSize.Height; offY > maxY {
		offY = maxY
	}
	if offX < 0 {
		offX = 0
	}
	if offY < 0 {
		offY = 0
	}

	ic.scroll.ScrollTo(fyne.NewPos(offX, offY))
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnSelect sets a callback for selection completion.
func (ic *ImageCanvas) OnSelect(callback func(x1, y1, x2, y2 float64)) {
	ic.onSelect = callback
}

// OnLeftClick sets a callback for left-click events.
// Coordinates are in image space (not zoomed).
func (ic *ImageCanvas) OnLeftClick(callback func(x, y float64)) {
	ic.onLeftClick = callback
}

// OnRightClick sets a callback for right-click events.
// Coordinates are in image space (not zoomed).
func (ic *ImageCanvas) OnRightClick(callback func(x, y float64)) {
	ic.onRightClick = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// getImageBounds returns the bounds of the atlas image.
func (ic *ImageCanvas) getImageBounds() image.Rectangle {
	if ic.img == nil {
		return image.Rect(0, 0, 0, 0)
	}
	return ic.img.Bounds()
}

// updateContentSize updates the content size based on image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	bounds := ic.getImageBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		width := float32(float64(bounds.Dx()) * ic.zoom)
		height := float32(float64(bounds.Dy()) * ic.zoom)
		ic.imgSize = fyne.NewSize(width, height)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// Checkerboard backdrop drawn under transparent atlas pixels.
// The tile size is in screen pixels so the pattern does not scale with zoom.
const checkerTile = 8

var (
	checkerLight = color.RGBA{R: 0x3C, G: 0x3C, B: 0x40, A: 255}
	checkerDark  = color.RGBA{R: 0x2E, G: 0x2E, B: 0x32, A: 255}
)

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	// Check for size change and auto-fit if enabled
	currentSize := fyne.NewSize(float32(w), float32(h))
	if ic.fitToWindow && currentSize != ic.lastScrollSize && w > 0 && h > 0 {
		ic.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go func() {
			ic.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))

	ic.drawCheckerboard(output)

	if ic.img != nil {
		ic.blitImage(output, w, h)
	}

	// Draw overlays
	for _, overlay := range ic.overlays {
		if overlay != nil {
			ic.drawOverlay(output, overlay)
		}
	}

	// Draw selection rectangle if selecting
	if ic.selecting && ic.selectionRect != nil {
		ic.drawSelectionRect(output, ic.selectionRect)
	}

	return output
}

// drawCheckerboard fills the output with the transparency backdrop.
func (ic *ImageCanvas) drawCheckerboard(output *image.RGBA) {
	b := output.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ((x/checkerTile)+(y/checkerTile))%2 == 0 {
				output.SetRGBA(x, y, checkerLight)
			} else {
				output.SetRGBA(x, y, checkerDark)
			}
		}
	}
}

// blitImage draws the atlas onto the output, scaled by zoom with
// nearest-neighbor sampling and alpha-blended over the backdrop.
func (ic *ImageCanvas) blitImage(output *image.RGBA, w, h int) {
	src := ic.img
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		srcY := int(float64(y) / ic.zoom)
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x) / ic.zoom)
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}

			c := src.RGBAAt(srcX, srcY)
			if c.A == 255 {
				output.SetRGBA(x, y, c)
			} else if c.A > 0 {
				// Pix is alpha-premultiplied, so source-over is src + dst*(1-a)
				dst := output.RGBAAt(x, y)
				inv := 1 - float64(c.A)/255
				r := uint8(float64(c.R) + float64(dst.R)*inv)
				g := uint8(float64(c.G) + float64(dst.G)*inv)
				b := uint8(float64(c.B) + float64(dst.B)*inv)
				output.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
			// Fully transparent: keep the backdrop
		}
	}
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (ic *ImageCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	canvasX = imgX * ic.zoom
	canvasY = imgY * ic.zoom
	return
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (ic *ImageCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	imgX = canvasX / ic.zoom
	imgY = canvasY / ic.zoom
	return
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	// Check for resize and auto-fit if enabled
	r.canvas.CheckResize(size)
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *imageCanvasRenderer) Destroy() {}
