// Package palette derives representative colors for extracted stickers.
//
// Every sticker gets one dominant-color swatch used as list decoration and
// as the feature vector when stickers are clustered into color groups.
package palette

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/pkg/geometry"
)

// Swatch is the representative color of a single sticker.
type Swatch struct {
	Color colorful.Color
	Hex   string
}

// neutral is the fallback swatch for stickers where no color can be
// extracted (fully transparent crops, zero-size regions).
func neutral() Swatch {
	col := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	return Swatch{Color: col, Hex: col.Hex()}
}

// Dominant returns the dominant color of a sticker image as a swatch.
func Dominant(img image.Image) Swatch {
	if img == nil {
		return neutral()
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return neutral()
	}

	candidates := dominantcolor.FindWeight(img, 8)
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}

	col, ok := colorful.MakeColor(best.RGBA)
	if !ok {
		return neutral()
	}
	col = col.Clamped()
	return Swatch{Color: col, Hex: col.Hex()}
}

// Swatches crops every region out of the source image and returns the
// dominant swatch of each crop, index-aligned with the input regions.
func Swatches(img image.Image, regions []geometry.RectInt) []Swatch {
	if len(regions) == 0 {
		return nil
	}
	out := make([]Swatch, len(regions))
	for i, r := range regions {
		out[i] = Dominant(atlas.Crop(img, r))
	}
	return out
}

// SortByBrightness orders swatches from darkest to brightest using linear
// Rec. 709 luma. Equal-luma swatches keep their relative order.
func SortByBrightness(swatches []Swatch) {
	slices.SortStableFunc(swatches, func(a, b Swatch) int {
		ri, gi, bi := a.Color.LinearRgb()
		rj, gj, bj := b.Color.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// Group clusters swatches into at most k color groups and returns one group
// label per swatch, index-aligned with the input. Labels run from 0 and are
// ordered by group population, largest group first. Fewer distinct colors
// than k yields fewer groups, never an error.
func Group(swatches []Swatch, k int) []int {
	if len(swatches) == 0 {
		return nil
	}
	labels := make([]int, len(swatches))
	if k <= 1 || len(swatches) == 1 {
		return labels
	}
	if k > len(swatches) {
		k = len(swatches)
	}

	dataset := make(clusters.Observations, 0, len(swatches))
	for _, s := range swatches {
		dataset = append(dataset, clusters.Coordinates{
			s.Color.R,
			s.Color.G,
			s.Color.B,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return labels
	}

	// Sort by cluster population so the largest group gets label 0.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		na := len(a.Observations)
		nb := len(b.Observations)
		if na > nb {
			return -1
		}
		if na < nb {
			return 1
		}
		return 0
	})

	centers := make([][3]float64, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		centers = append(centers, [3]float64{c.Center[0], c.Center[1], c.Center[2]})
	}
	if len(centers) == 0 {
		return labels
	}

	for i, s := range swatches {
		best := 0
		bestD := math.MaxFloat64
		for ci, center := range centers {
			dR := s.Color.R - center[0]
			dG := s.Color.G - center[1]
			dB := s.Color.B - center[2]
			d := dR*dR + dG*dG + dB*dB
			if d < bestD {
				bestD = d
				best = ci
			}
		}
		labels[i] = best
	}
	return labels
}
