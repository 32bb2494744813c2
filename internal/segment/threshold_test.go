package segment

import (
	"image"
	"image/color"
	"testing"

	"sticker-slicer/internal/atlas"
)

func TestSuggestThresholdSeparatesFringe(t *testing.T) {
	// Background at alpha 0, an anti-aliased fringe at alpha 40, sticker
	// body at alpha 255. Otsu should group the fringe with the background.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fringe := 0
	body := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			switch {
			case x >= 4 && x < 10 && y >= 4 && y < 10:
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
				body++
			case x >= 3 && x < 11 && y >= 3 && y < 11:
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 40})
				fringe++
			}
		}
	}
	r := atlas.FromImage(img)

	got := SuggestThreshold(r)
	if got <= 40 || got > 255 {
		t.Fatalf("threshold = %d, want a cutoff above the fringe alpha 40", got)
	}

	// Applying the suggestion must select exactly the body pixels.
	hist := r.Histogram()
	selected := 0
	for a := int(got); a < 256; a++ {
		selected += hist[a]
	}
	if selected != body {
		t.Errorf("threshold %d selects %d pixels, want the %d body pixels", got, selected, body)
	}
}

func TestSuggestThresholdBinaryAlpha(t *testing.T) {
	r := blockRaster(8, 8, image.Rect(2, 2, 6, 6))
	got := SuggestThreshold(r)
	if got < 1 || got > 255 {
		t.Fatalf("threshold = %d, out of the valid range", got)
	}
	// Everything at alpha 255 must remain selected.
	result, err := Segment(r, DefaultParams().WithThreshold(got))
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(result.Regions) != 1 {
		t.Errorf("suggested threshold %d lost the sticker: %d regions", got, len(result.Regions))
	}
}

func TestSuggestThresholdNothingToSeparate(t *testing.T) {
	def := DefaultParams().AlphaThreshold

	if got := SuggestThreshold(nil); got != def {
		t.Errorf("nil raster: threshold = %d, want default %d", got, def)
	}
	if got := SuggestThreshold(atlas.FromImage(nil)); got != def {
		t.Errorf("empty raster: threshold = %d, want default %d", got, def)
	}
	if got := SuggestThreshold(makeRaster(6, 6)); got != def {
		t.Errorf("fully transparent: threshold = %d, want default %d", got, def)
	}
	if got := SuggestThreshold(blockRaster(6, 6, image.Rect(0, 0, 6, 6))); got != def {
		t.Errorf("fully opaque: threshold = %d, want default %d", got, def)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params must validate: %v", err)
	}
	if err := (Params{AlphaThreshold: 255, MinDimension: 10, Padding: 10}).Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := (Params{AlphaThreshold: 0}).Validate(); err == nil {
		t.Error("zero threshold must be rejected")
	}
	if err := (Params{AlphaThreshold: 1, MinDimension: -1}).Validate(); err == nil {
		t.Error("negative min dimension must be rejected")
	}
	if err := (Params{AlphaThreshold: 1, Padding: -1}).Validate(); err == nil {
		t.Error("negative padding must be rejected")
	}
}

func TestParamsWithModifiers(t *testing.T) {
	base := DefaultParams()
	modified := base.WithThreshold(200).WithMinDimension(8).WithPadding(4)

	if modified.AlphaThreshold != 200 || modified.MinDimension != 8 || modified.Padding != 4 {
		t.Errorf("modifiers lost values: %+v", modified)
	}
	if base != DefaultParams() {
		t.Errorf("modifiers mutated the receiver: %+v", base)
	}
}
