package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"sticker-slicer/pkg/geometry"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDominantSolidColor(t *testing.T) {
	for _, tc := range []struct {
		name string
		fill color.NRGBA
		want string
	}{
		{"red", color.NRGBA{R: 255, A: 255}, "#ff0000"},
		{"blue", color.NRGBA{B: 255, A: 255}, "#0000ff"},
		{"orange", color.NRGBA{R: 255, G: 128, A: 255}, "#ff8000"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Dominant(solidImage(16, 16, tc.fill))
			if got.Hex != tc.want {
				t.Fatalf("Dominant(%s) = %s, want %s", tc.name, got.Hex, tc.want)
			}
		})
	}
}

func TestDominantFallbacks(t *testing.T) {
	if got := Dominant(nil); got.Hex != "#808080" {
		t.Fatalf("Dominant(nil) = %s, want #808080", got.Hex)
	}
	if got := Dominant(image.NewNRGBA(image.Rect(0, 0, 0, 0))); got.Hex != "#808080" {
		t.Fatalf("Dominant(empty) = %s, want #808080", got.Hex)
	}
}

func TestSwatchesAlignment(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 6))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			img.SetNRGBA(x+6, y, color.NRGBA{B: 255, A: 255})
		}
	}

	regions := []geometry.RectInt{
		{X: 0, Y: 0, Width: 4, Height: 4},
		{X: 6, Y: 0, Width: 4, Height: 4},
		{X: 0, Y: 0, Width: 0, Height: 0},
	}
	swatches := Swatches(img, regions)
	if len(swatches) != len(regions) {
		t.Fatalf("got %d swatches, want %d", len(swatches), len(regions))
	}
	if got, want := swatches[0].Hex, "#ff0000"; got != want {
		t.Errorf("swatch 0 = %s, want %s", got, want)
	}
	if got, want := swatches[1].Hex, "#0000ff"; got != want {
		t.Errorf("swatch 1 = %s, want %s", got, want)
	}
	if got, want := swatches[2].Hex, "#808080"; got != want {
		t.Errorf("swatch 2 (empty region) = %s, want %s", got, want)
	}

	if Swatches(img, nil) != nil {
		t.Error("Swatches with no regions should return nil")
	}
}

func TestSortByBrightness(t *testing.T) {
	mk := func(r, g, b float64) Swatch {
		col := colorful.Color{R: r, G: g, B: b}
		return Swatch{Color: col, Hex: col.Hex()}
	}
	bright := mk(0.9, 0.9, 0.9)
	dark := mk(0.1, 0.1, 0.1)
	mid := mk(0.5, 0.2, 0.2)

	swatches := []Swatch{bright, dark, mid}
	SortByBrightness(swatches)
	want := []string{dark.Hex, mid.Hex, bright.Hex}
	for i, w := range want {
		if swatches[i].Hex != w {
			t.Fatalf("position %d = %s, want %s", i, swatches[i].Hex, w)
		}
	}
}

func TestSortByBrightnessIsStable(t *testing.T) {
	col := colorful.Color{R: 0.2, G: 0.4, B: 0.6}
	swatches := []Swatch{
		{Color: colorful.Color{R: 0.9, G: 0.9, B: 0.9}, Hex: "bright"},
		{Color: col, Hex: "first"},
		{Color: col, Hex: "second"},
	}
	SortByBrightness(swatches)
	if swatches[0].Hex != "first" || swatches[1].Hex != "second" {
		t.Fatalf("equal-luma swatches reordered: got %s, %s", swatches[0].Hex, swatches[1].Hex)
	}
}

func TestGroupSeparatesColorFamilies(t *testing.T) {
	mk := func(r, g, b float64) Swatch {
		return Swatch{Color: colorful.Color{R: r, G: g, B: b}}
	}
	swatches := []Swatch{
		mk(0.95, 0.05, 0.05),
		mk(0.90, 0.10, 0.10),
		mk(0.85, 0.05, 0.10),
		mk(0.90, 0.05, 0.05),
		mk(0.05, 0.05, 0.95),
		mk(0.10, 0.10, 0.90),
	}

	labels := Group(swatches, 2)
	if len(labels) != len(swatches) {
		t.Fatalf("got %d labels, want %d", len(labels), len(swatches))
	}
	for i := 1; i < 4; i++ {
		if labels[i] != labels[0] {
			t.Fatalf("red swatch %d got label %d, want %d", i, labels[i], labels[0])
		}
	}
	if labels[5] != labels[4] {
		t.Fatalf("blue swatches split: labels %d and %d", labels[4], labels[5])
	}
	if labels[0] == labels[4] {
		t.Fatal("red and blue families share a label")
	}
	// Four reds against two blues: the larger family owns label 0.
	if labels[0] != 0 {
		t.Errorf("largest family got label %d, want 0", labels[0])
	}
	if labels[4] != 1 {
		t.Errorf("smaller family got label %d, want 1", labels[4])
	}
}

func TestGroupEdgeCases(t *testing.T) {
	if Group(nil, 3) != nil {
		t.Error("Group of no swatches should return nil")
	}

	one := []Swatch{{Color: colorful.Color{R: 0.5, G: 0.5, B: 0.5}}}
	if got := Group(one, 5); len(got) != 1 || got[0] != 0 {
		t.Errorf("Group of one swatch = %v, want [0]", got)
	}

	several := []Swatch{
		{Color: colorful.Color{R: 1}},
		{Color: colorful.Color{G: 1}},
		{Color: colorful.Color{B: 1}},
	}
	for _, label := range Group(several, 1) {
		if label != 0 {
			t.Fatal("k=1 must place everything in group 0")
		}
	}

	labels := Group(several[:2], 10)
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(labels))
	}
	for i, label := range labels {
		if label < 0 || label >= 2 {
			t.Errorf("label %d out of range: %d", i, label)
		}
	}
}
