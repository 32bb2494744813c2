package atlas

import (
	"image"
)

// Raster is an immutable alpha view of a decoded image. The alpha values are
// copied once into a flat plane indexed y*width+x, so a scan never touches
// the source image. Raster coordinates are zero-based with (0, 0) at the
// top-left of the image bounds.
type Raster struct {
	width  int
	height int
	alpha  []uint8
}

// FromImage extracts the alpha plane of img. Images without an alpha channel
// come out fully opaque. A nil or zero-sized image yields an empty raster.
func FromImage(img image.Image) *Raster {
	if img == nil {
		return &Raster{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return &Raster{}
	}

	r := &Raster{width: w, height: h, alpha: make([]uint8, w*h)}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y) + 3
			row := r.alpha[y*w : (y+1)*w]
			for x := range row {
				row[x] = src.Pix[off+x*4]
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y) + 3
			row := r.alpha[y*w : (y+1)*w]
			for x := range row {
				row[x] = src.Pix[off+x*4]
			}
		}
	case *image.Alpha:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.alpha[y*w:(y+1)*w], src.Pix[off:off+w])
		}
	default:
		// Opaque formats (JPEG's YCbCr, grayscale) short-circuit to a
		// solid plane.
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			for i := range r.alpha {
				r.alpha[i] = 0xff
			}
			return r
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				r.alpha[y*w+x] = uint8(a >> 8)
			}
		}
	}

	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Empty returns true if the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.width == 0 || r.height == 0
}

// AlphaAt returns the alpha value at (x, y), or 0 outside the raster.
func (r *Raster) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0
	}
	return r.alpha[y*r.width+x]
}

// Histogram counts how many pixels carry each alpha value.
func (r *Raster) Histogram() [256]int {
	var hist [256]int
	for _, a := range r.alpha {
		hist[a]++
	}
	return hist
}
