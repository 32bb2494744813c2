// Package canvas provides overlay types for the image canvas.
package canvas

import "image/color"

// Overlay represents a drawable overlay on the canvas.
type Overlay struct {
	Rectangles []OverlayRect
	Color      color.RGBA
}

// FillPattern indicates how to fill a rectangle.
type FillPattern int

const (
	FillNone   FillPattern = iota // Just outline
	FillSolid                     // Solid fill
	FillStripe                    // Diagonal stripe
	FillTarget                    // Crosshairs through center (target marker)
)

// OverlayRect represents a rectangle to draw on the overlay.
// Coordinates are in image space; drawing scales them by the current zoom.
type OverlayRect struct {
	X, Y, Width, Height int
	Label               string      // Optional label to draw centered in the rectangle
	Fill                FillPattern // Fill pattern for the rectangle
	StripeInterval      int         // Interval for stripe patterns (0 = use width)
}
