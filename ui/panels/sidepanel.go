// Package panels provides UI panels for the application.
package panels

import (
	"sticker-slicer/internal/app"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.ImageCanvas
	container *container.AppTabs

	extractionPanel *ExtractionPanel
	stickersPanel   *StickersPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.ImageCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	// Create individual panels
	sp.extractionPanel = NewExtractionPanel(state)
	sp.stickersPanel = NewStickersPanel(state, cvs)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem(i18n.T("panel.settings.title"), sp.extractionPanel.Container()),
		container.NewTabItem(i18n.T("panel.regions.title"), sp.stickersPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// Extraction returns the extraction panel.
func (sp *SidePanel) Extraction() *ExtractionPanel {
	return sp.extractionPanel
}

// Stickers returns the stickers panel.
func (sp *SidePanel) Stickers() *StickersPanel {
	return sp.stickersPanel
}
