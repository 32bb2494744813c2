package segment

import "fmt"

// Params controls segmentation behavior.
type Params struct {
	// Alpha cutoff: a pixel whose alpha is >= AlphaThreshold counts as
	// opaque. Valid range is 1-255. Zero is rejected because it would
	// classify fully transparent background as opaque.
	AlphaThreshold uint8 `json:"alpha_threshold"`

	// Minimum width AND height (pixels) a component must reach, measured
	// on the raw bounds before padding. A component failing either
	// dimension is dropped.
	MinDimension int `json:"min_dimension"`

	// Padding added to all four sides of each surviving region, clipped
	// to the atlas bounds afterwards.
	Padding int `json:"padding"`
}

// DefaultParams returns default segmentation parameters.
// These keep everything: any visible pixel is opaque, single-pixel
// stickers survive, bounds stay tight.
func DefaultParams() Params {
	return Params{
		AlphaThreshold: 1, // Any non-zero alpha is opaque
		MinDimension:   1, // Keep even single-pixel components
		Padding:        0, // Tight bounds
	}
}

// Validate checks the parameters. It is called before every scan so an
// invalid configuration is rejected without touching the raster.
func (p Params) Validate() error {
	if p.AlphaThreshold < 1 {
		return fmt.Errorf("alpha threshold must be 1-255, got %d", p.AlphaThreshold)
	}
	if p.MinDimension < 0 {
		return fmt.Errorf("min dimension must be >= 0, got %d", p.MinDimension)
	}
	if p.Padding < 0 {
		return fmt.Errorf("padding must be >= 0, got %d", p.Padding)
	}
	return nil
}

// WithThreshold returns a copy of params with the given alpha cutoff.
func (p Params) WithThreshold(threshold uint8) Params {
	p.AlphaThreshold = threshold
	return p
}

// WithMinDimension returns a copy of params with the given size floor.
func (p Params) WithMinDimension(dim int) Params {
	p.MinDimension = dim
	return p
}

// WithPadding returns a copy of params with the given padding.
func (p Params) WithPadding(padding int) Params {
	p.Padding = padding
	return p
}
