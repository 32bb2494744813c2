package panels

import (
	"fmt"
	"strconv"

	"sticker-slicer/internal/app"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/internal/segment"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ExtractionPanel edits segmentation parameters and triggers rescans.
type ExtractionPanel struct {
	state     *app.State
	container fyne.CanvasObject

	thresholdSlider *widget.Slider
	thresholdLabel  *widget.Label
	minDimEntry     *widget.Entry
	paddingEntry    *widget.Entry
	rescanButton    *widget.Button
	suggestButton   *widget.Button
	statusLabel     *widget.Label
}

// NewExtractionPanel creates a new extraction panel.
func NewExtractionPanel(state *app.State) *ExtractionPanel {
	ep := &ExtractionPanel{
		state: state,
	}

	// Initialize labels first (before any callbacks can fire)
	ep.thresholdLabel = widget.NewLabel(strconv.Itoa(int(state.Params.AlphaThreshold)))
	ep.statusLabel = widget.NewLabel(i18n.T("status.ready"))
	ep.statusLabel.Wrapping = fyne.TextWrapWord

	ep.thresholdSlider = widget.NewSlider(1, 255)
	ep.thresholdSlider.SetValue(float64(state.Params.AlphaThreshold))
	ep.thresholdSlider.OnChanged = func(val float64) {
		ep.thresholdLabel.SetText(strconv.Itoa(int(val)))
		ep.applyParams()
	}

	ep.minDimEntry = widget.NewEntry()
	ep.minDimEntry.SetText(strconv.Itoa(state.Params.MinDimension))
	ep.minDimEntry.OnChanged = func(string) {
		ep.applyParams()
	}

	ep.paddingEntry = widget.NewEntry()
	ep.paddingEntry.SetText(strconv.Itoa(state.Params.Padding))
	ep.paddingEntry.OnChanged = func(string) {
		ep.applyParams()
	}

	ep.rescanButton = widget.NewButton(i18n.T("panel.settings.rescan"), func() {
		ep.Rescan()
	})

	ep.suggestButton = widget.NewButton(i18n.T("panel.settings.suggest"), func() {
		ep.SuggestThreshold()
	})

	// Layout
	ep.container = container.NewVBox(
		widget.NewCard(i18n.T("panel.settings.title"), "", container.NewVBox(
			widget.NewLabel(i18n.T("panel.settings.threshold")),
			container.NewBorder(nil, nil, nil, ep.thresholdLabel, ep.thresholdSlider),
			widget.NewLabel(i18n.T("panel.settings.min_dim")),
			ep.minDimEntry,
			widget.NewLabel(i18n.T("panel.settings.padding")),
			ep.paddingEntry,
			container.NewHBox(ep.rescanButton, ep.suggestButton),
		)),
		ep.statusLabel,
	)

	// Register for events
	state.On(app.EventProjectLoaded, func(data interface{}) {
		ep.syncFromState()
	})
	state.On(app.EventRegionsChanged, func(data interface{}) {
		ep.updateStatus()
	})
	state.On(app.EventSelectionChanged, func(data interface{}) {
		ep.updateStatus()
	})

	return ep
}

// Container returns the panel container.
func (ep *ExtractionPanel) Container() fyne.CanvasObject {
	return ep.container
}

// Rescan runs segmentation with the current parameters.
func (ep *ExtractionPanel) Rescan() {
	if ep.state.Raster == nil {
		ep.statusLabel.SetText(i18n.T("status.no_atlas"))
		return
	}
	ep.applyParams()
	if err := ep.state.Rescan(); err != nil {
		ep.statusLabel.SetText(err.Error())
		return
	}
	ep.updateStatus()
}

// SuggestThreshold estimates a threshold from the alpha histogram and applies it.
func (ep *ExtractionPanel) SuggestThreshold() {
	if ep.state.Raster == nil {
		ep.statusLabel.SetText(i18n.T("status.no_atlas"))
		return
	}
	th := segment.SuggestThreshold(ep.state.Raster)
	ep.thresholdSlider.SetValue(float64(th))
}

// applyParams reads the widgets and pushes the parameters into state.
func (ep *ExtractionPanel) applyParams() {
	minDim, err := strconv.Atoi(ep.minDimEntry.Text)
	if err != nil {
		ep.statusLabel.SetText(err.Error())
		return
	}
	padding, err := strconv.Atoi(ep.paddingEntry.Text)
	if err != nil {
		ep.statusLabel.SetText(err.Error())
		return
	}

	p := ep.state.Params
	p.AlphaThreshold = uint8(ep.thresholdSlider.Value)
	p.MinDimension = minDim
	p.Padding = padding

	if err := ep.state.SetParams(p); err != nil {
		ep.statusLabel.SetText(err.Error())
	}
}

// syncFromState refreshes the widgets after the parameters change outside the panel.
func (ep *ExtractionPanel) syncFromState() {
	p := ep.state.Params
	ep.thresholdSlider.SetValue(float64(p.AlphaThreshold))
	ep.minDimEntry.SetText(strconv.Itoa(p.MinDimension))
	ep.paddingEntry.SetText(strconv.Itoa(p.Padding))
	ep.updateStatus()
}

// updateStatus shows the outcome of the last scan.
func (ep *ExtractionPanel) updateStatus() {
	if res := ep.state.LastResult; res != nil && res.Status != segment.StatusOK {
		switch res.Status {
		case segment.StatusEmptyAtlas:
			ep.statusLabel.SetText(i18n.T("status.empty_atlas"))
		case segment.StatusNothingFound:
			ep.statusLabel.SetText(i18n.T("status.nothing"))
		}
		return
	}
	ep.statusLabel.SetText(fmt.Sprintf(i18n.T("status.counts"),
		ep.state.Regions.Len(), ep.state.Regions.SelectedCount()))
}
