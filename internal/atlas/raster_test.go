package atlas

import (
	"image"
	"image/color"
	"testing"
)

func makeAlphaImage(w, h int, opaque ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, p := range opaque {
		img.SetNRGBA(p.X, p.Y, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	}
	return img
}

func TestFromImageNRGBA(t *testing.T) {
	img := makeAlphaImage(4, 3, image.Pt(1, 1))
	img.SetNRGBA(2, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 128})

	r := FromImage(img)
	if r.Width() != 4 || r.Height() != 3 {
		t.Fatalf("raster size = %dx%d, want 4x3", r.Width(), r.Height())
	}
	if got := r.AlphaAt(1, 1); got != 255 {
		t.Errorf("AlphaAt(1, 1) = %d, want 255", got)
	}
	if got := r.AlphaAt(2, 0); got != 128 {
		t.Errorf("AlphaAt(2, 0) = %d, want 128", got)
	}
	if got := r.AlphaAt(0, 0); got != 0 {
		t.Errorf("AlphaAt(0, 0) = %d, want 0", got)
	}
}

func TestFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(2, 2, color.RGBA{R: 50, G: 50, B: 50, A: 200})

	r := FromImage(img)
	if got := r.AlphaAt(2, 2); got != 200 {
		t.Errorf("AlphaAt(2, 2) = %d, want 200", got)
	}
	if got := r.AlphaAt(1, 1); got != 0 {
		t.Errorf("AlphaAt(1, 1) = %d, want 0", got)
	}
}

func TestFromImageAlphaPlane(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 2, 2))
	img.SetAlpha(0, 1, color.Alpha{A: 77})

	r := FromImage(img)
	if got := r.AlphaAt(0, 1); got != 77 {
		t.Errorf("AlphaAt(0, 1) = %d, want 77", got)
	}
}

func TestFromImageOpaqueShortcut(t *testing.T) {
	// Grayscale has no alpha channel; every pixel must read as opaque.
	img := image.NewGray(image.Rect(0, 0, 5, 4))
	r := FromImage(img)
	hist := r.Histogram()
	if hist[255] != 20 {
		t.Fatalf("opaque pixel count = %d, want 20", hist[255])
	}
}

func TestFromImageGenericPath(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	img.SetNRGBA64(1, 0, color.NRGBA64{R: 0xffff, A: 0x8080})

	r := FromImage(img)
	if got := r.AlphaAt(1, 0); got != 128 {
		t.Errorf("AlphaAt(1, 0) = %d, want 128", got)
	}
	if got := r.AlphaAt(0, 0); got != 0 {
		t.Errorf("AlphaAt(0, 0) = %d, want 0", got)
	}
}

func TestFromImageSubImage(t *testing.T) {
	// Sub-images carry non-zero bounds; the raster must stay zero-based.
	base := makeAlphaImage(10, 10, image.Pt(5, 5))
	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.NRGBA)

	r := FromImage(sub)
	if r.Width() != 4 || r.Height() != 4 {
		t.Fatalf("raster size = %dx%d, want 4x4", r.Width(), r.Height())
	}
	if got := r.AlphaAt(1, 1); got != 255 {
		t.Errorf("AlphaAt(1, 1) = %d, want 255 (source pixel 5,5)", got)
	}
	if got := r.AlphaAt(0, 0); got != 0 {
		t.Errorf("AlphaAt(0, 0) = %d, want 0", got)
	}
}

func TestAlphaAtOutOfBounds(t *testing.T) {
	r := FromImage(makeAlphaImage(3, 3, image.Pt(0, 0)))
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		if got := r.AlphaAt(p.X, p.Y); got != 0 {
			t.Errorf("AlphaAt(%d, %d) = %d, want 0 outside the raster", p.X, p.Y, got)
		}
	}
}

func TestFromImageEmpty(t *testing.T) {
	if r := FromImage(nil); !r.Empty() {
		t.Error("nil image should yield an empty raster")
	}
	if r := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 5))); !r.Empty() {
		t.Error("zero-width image should yield an empty raster")
	}
}
