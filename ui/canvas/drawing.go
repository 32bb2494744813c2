// Package canvas provides drawing primitives for the image canvas.
package canvas

import (
	"image"
	"image/color"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters A-Z and common symbols.
// Each letter is represented as 5 rows of 3 bits.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'*': {0b000, 0b101, 0b010, 0b101, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	// Convert lowercase to uppercase
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{} // Empty pattern for unsupported characters
}

// drawOverlay draws an overlay on the output image.
func (ic *ImageCanvas) drawOverlay(output *image.RGBA, overlay *Overlay) {
	col := overlay.Color
	bounds := output.Bounds()

	for _, rect := range overlay.Rectangles {
		// Scale rectangle coordinates by zoom
		x1 := int(float64(rect.X) * ic.zoom)
		y1 := int(float64(rect.Y) * ic.zoom)
		x2 := int(float64(rect.X+rect.Width) * ic.zoom)
		y2 := int(float64(rect.Y+rect.Height) * ic.zoom)

		// Draw fill pattern first (before outline)
		if rect.Fill != FillNone {
			interval := rect.StripeInterval
			if interval <= 0 {
				interval = rect.Width // Default to sticker width
			}
			// Scale interval by zoom
			interval = int(float64(interval) * ic.zoom)
			if interval < 2 {
				interval = 2
			}

			ic.drawFillPattern(output, x1, y1, x2, y2, col, rect.Fill, interval)
		}

		// Draw rectangle outline (2 pixel thick)
		for t := 0; t < 2; t++ {
			// Top edge
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X && y1+t >= bounds.Min.Y && y1+t < bounds.Max.Y {
					output.Set(x, y1+t, col)
				}
			}
			// Bottom edge
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X && y2-t >= bounds.Min.Y && y2-t < bounds.Max.Y {
					output.Set(x, y2-t, col)
				}
			}
			// Left edge
			for y := y1; y <= y2; y++ {
				if x1+t >= bounds.Min.X && x1+t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(x1+t, y, col)
				}
			}
			// Right edge
			for y := y1; y <= y2; y++ {
				if x2-t >= bounds.Min.X && x2-t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(x2-t, y, col)
				}
			}
		}

		// Draw label centered in the rectangle
		if rect.Label != "" {
			ic.drawLabel(output, rect.Label, x1, y1, x2, y2, col)
		}
	}
}

// drawSelectionRect draws a dashed rubber-band rectangle.
// Coordinates are already in canvas space.
func (ic *ImageCanvas) drawSelectionRect(output *image.RGBA, rect *OverlayRect) {
	col := color.RGBA{R: 255, G: 255, B: 0, A: 255} // Yellow

	x1 := rect.X
	y1 := rect.Y
	x2 := rect.X + rect.Width
	y2 := rect.Y + rect.Height

	bounds := output.Bounds()

	// Dashed pattern: 2 pixels on, 2 pixels off
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 {
			if x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
				output.Set(x, y1, col)
			}
		}
		if (x+y2)%4 < 2 {
			if x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
				output.Set(x, y2, col)
			}
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 {
			if x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				output.Set(x1, y, col)
			}
		}
		if (x2+y)%4 < 2 {
			if x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				output.Set(x2, y, col)
			}
		}
	}
}

// drawFillPattern fills a rectangle with the specified pattern.
func (ic *ImageCanvas) drawFillPattern(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, pattern FillPattern, interval int) {
	bounds := output.Bounds()

	switch pattern {
	case FillSolid:
		// Fill entire rectangle
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(x, y, col)
				}
			}
		}

	case FillStripe:
		// Diagonal stripes (top-left to bottom-right)
		// A pixel is on the stripe if (x + y) mod interval < lineWidth
		lineWidth := interval / 4
		if lineWidth < 1 {
			lineWidth = 1
		}
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				if ((x + y) % interval) < lineWidth {
					if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
						output.Set(x, y, col)
					}
				}
			}
		}

	case FillTarget:
		// Crosshairs through center (target marker)
		centerX := (x1 + x2) / 2
		centerY := (y1 + y2) / 2
		lineWidth := 2
		if ic.zoom > 1 {
			lineWidth = int(2 * ic.zoom)
		}

		// Horizontal line through center
		for x := x1; x <= x2; x++ {
			for t := -lineWidth / 2; t <= lineWidth/2; t++ {
				py := centerY + t
				if x >= bounds.Min.X && x < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(x, py, col)
				}
			}
		}

		// Vertical line through center
		for y := y1; y <= y2; y++ {
			for t := -lineWidth / 2; t <= lineWidth/2; t++ {
				px := centerX + t
				if px >= bounds.Min.X && px < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
					output.Set(px, y, col)
				}
			}
		}
	}
}

// drawLabel draws a centered label inside a rectangle.
func (ic *ImageCanvas) drawLabel(output *image.RGBA, label string, x1, y1, x2, y2 int, col color.RGBA) {
	// Calculate scale based on zoom (base scale is 2 pixels per font pixel at zoom 1.0)
	scale := int(ic.zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}

	// Calculate total width of label (3 pixels per character + 1 pixel spacing)
	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	labelWidth := len(label)*charWidth + (len(label)-1)*spacing

	// Calculate center position
	centerX := (x1 + x2) / 2
	centerY := (y1 + y2) / 2

	// Start position for first character
	startX := centerX - labelWidth/2
	startY := centerY - charHeight/2

	bounds := output.Bounds()

	// Draw each character
	for i, ch := range label {
		pattern := getCharPattern(ch)

		charX := startX + i*(charWidth+spacing)

		// Draw the character pattern
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) != 0 {
					// Draw a scaled pixel block
					for dy := 0; dy < scale; dy++ {
						for dx := 0; dx < scale; dx++ {
							px := charX + c*scale + dx
							py := startY + row*scale + dy
							if px >= bounds.Min.X && px < bounds.Max.X &&
								py >= bounds.Min.Y && py < bounds.Max.Y {
								output.Set(px, py, col)
							}
						}
					}
				}
			}
		}
	}
}
