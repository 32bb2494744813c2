package atlas

import (
	"image"
	"image/color"
	"testing"

	"sticker-slicer/pkg/geometry"
)

func TestCrop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	src.SetNRGBA(2, 3, color.NRGBA{R: 250, G: 10, B: 10, A: 255})

	got := Crop(src, geometry.NewRectInt(1, 2, 3, 3))
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 3 {
		t.Fatalf("crop size = %dx%d, want 3x3", got.Bounds().Dx(), got.Bounds().Dy())
	}
	r, _, _, a := got.At(1, 1).RGBA()
	if a == 0 || uint8(r>>8) != 250 {
		t.Errorf("source pixel (2, 3) did not land at crop (1, 1): got r=%d a=%d", r>>8, a>>8)
	}
	if _, _, _, a := got.At(0, 0).RGBA(); a != 0 {
		t.Errorf("transparent source pixel came out with alpha %d", a>>8)
	}
}

func TestCropSubImageSource(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	base.SetNRGBA(5, 5, color.NRGBA{G: 200, A: 255})
	sub := base.SubImage(image.Rect(4, 4, 9, 9)).(*image.NRGBA)

	// Region (1, 1, 1, 1) in raster coordinates is source pixel (5, 5).
	got := Crop(sub, geometry.NewRectInt(1, 1, 1, 1))
	if _, g, _, a := got.At(0, 0).RGBA(); a == 0 || uint8(g>>8) != 200 {
		t.Errorf("crop of sub-image missed the pixel: g=%d a=%d", g>>8, a>>8)
	}
}

func TestCropEmptyRegion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	got := Crop(src, geometry.RectInt{})
	if got.Bounds().Dx() != 0 || got.Bounds().Dy() != 0 {
		t.Fatalf("empty region crop = %v, want zero size", got.Bounds())
	}
}

func TestThumbnail(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 40))

	got := Thumbnail(src, geometry.NewRectInt(0, 0, 100, 40), 50)
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 20 {
		t.Errorf("thumbnail size = %dx%d, want 50x20", got.Bounds().Dx(), got.Bounds().Dy())
	}

	small := Thumbnail(src, geometry.NewRectInt(0, 0, 8, 6), 50)
	if small.Bounds().Dx() != 8 || small.Bounds().Dy() != 6 {
		t.Errorf("small region resized to %dx%d, want natural 8x6", small.Bounds().Dx(), small.Bounds().Dy())
	}

	tall := Thumbnail(src, geometry.NewRectInt(0, 0, 20, 40), 10)
	if tall.Bounds().Dx() != 5 || tall.Bounds().Dy() != 10 {
		t.Errorf("tall thumbnail = %dx%d, want 5x10", tall.Bounds().Dx(), tall.Bounds().Dy())
	}
}
