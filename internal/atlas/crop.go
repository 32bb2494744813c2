package atlas

import (
	"image"

	"golang.org/x/image/draw"

	"sticker-slicer/pkg/geometry"
)

// Crop copies the region r out of img into a fresh RGBA image. The region is
// interpreted in raster coordinates, (0, 0) at the top-left of img's bounds.
func Crop(img image.Image, r geometry.RectInt) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	if img == nil || r.Empty() {
		return dst
	}
	sp := img.Bounds().Min.Add(image.Pt(r.X, r.Y))
	draw.Draw(dst, dst.Bounds(), img, sp, draw.Src)
	return dst
}

// Thumbnail renders the region r scaled down to fit within maxEdge pixels on
// its longer side. Regions already small enough are returned at natural size.
func Thumbnail(img image.Image, r geometry.RectInt, maxEdge int) image.Image {
	cropped := Crop(img, r)
	if maxEdge <= 0 || (r.Width <= maxEdge && r.Height <= maxEdge) {
		return cropped
	}

	w, h := r.Width, r.Height
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Src, nil)
	return dst
}
