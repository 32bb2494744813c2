package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"sticker-slicer/internal/region"
	"sticker-slicer/pkg/geometry"
)

// testAtlas holds a red 2x2 block at (1,1) and a blue 3x3 block at (5,5)
// on a transparent 8x8 background.
func testAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	for y := 5; y < 8; y++ {
		for x := 5; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	return img
}

func testBounds() []geometry.RectInt {
	return []geometry.RectInt{
		{X: 1, Y: 1, Width: 2, Height: 2},
		{X: 5, Y: 5, Width: 3, Height: 3},
	}
}

func TestStickerName(t *testing.T) {
	for _, tc := range []struct {
		n    int
		want string
	}{
		{1, "sticker_1.png"},
		{2, "sticker_2.png"},
		{12, "sticker_12.png"},
	} {
		if got := StickerName(tc.n); got != tc.want {
			t.Errorf("StickerName(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestSelectedBounds(t *testing.T) {
	regions := []region.Region{
		{ID: 1, Bounds: geometry.RectInt{X: 0, Y: 0, Width: 2, Height: 2}, Selected: true},
		{ID: 2, Bounds: geometry.RectInt{X: 4, Y: 0, Width: 2, Height: 2}, Selected: false},
		{ID: 3, Bounds: geometry.RectInt{X: 0, Y: 4, Width: 2, Height: 2}, Selected: true},
	}
	bounds := SelectedBounds(regions)
	if len(bounds) != 2 {
		t.Fatalf("got %d bounds, want 2", len(bounds))
	}
	if bounds[0] != regions[0].Bounds || bounds[1] != regions[2].Bounds {
		t.Fatalf("wrong bounds order: %v", bounds)
	}

	if SelectedBounds(nil) != nil {
		t.Error("no regions should yield nil bounds")
	}
}

func TestStickerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Sticker(&buf, testAtlas(), geometry.RectInt{X: 1, Y: 1, Width: 2, Height: 2}); err != nil {
		t.Fatalf("Sticker: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("decoded size %dx%d, want 2x2", b.Dx(), b.Dy())
	}
	r, g, bl, a := decoded.At(b.Min.X, b.Min.Y).RGBA()
	if r != 0xffff || g != 0 || bl != 0 || a != 0xffff {
		t.Fatalf("decoded pixel = (%d,%d,%d,%d), want opaque red", r, g, bl, a)
	}
}

func TestFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stickers")
	names, err := Files(dir, testAtlas(), testBounds())
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"sticker_1.png", "sticker_2.png"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("name %d = %s, want %s", i, names[i], name)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "sticker_2.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 3 || b.Dy() != 3 {
		t.Fatalf("sticker_2 size %dx%d, want 3x3", b.Dx(), b.Dy())
	}
}

func TestFilesNothingToExport(t *testing.T) {
	if _, err := Files(t.TempDir(), testAtlas(), nil); err == nil {
		t.Fatal("expected error for empty export")
	}
}

func TestArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := Archive(&buf, testAtlas(), testBounds()); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen zip: %v", err)
	}
	if got, want := len(zr.File), 3; got != want {
		t.Fatalf("archive holds %d entries, want %d", got, want)
	}

	sticker, err := zr.Open("sticker_1.png")
	if err != nil {
		t.Fatalf("open sticker_1.png: %v", err)
	}
	defer sticker.Close()
	decoded, err := png.Decode(sticker)
	if err != nil {
		t.Fatalf("decode sticker_1.png: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("sticker_1 size %dx%d, want 2x2", b.Dx(), b.Dy())
	}

	mf, err := zr.Open("manifest.json")
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer mf.Close()
	var manifest []manifestEntry
	if err := json.NewDecoder(mf).Decode(&manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(manifest) != 2 {
		t.Fatalf("manifest holds %d entries, want 2", len(manifest))
	}
	for i, wantBounds := range testBounds() {
		if manifest[i].Name != StickerName(i+1) {
			t.Errorf("manifest entry %d name = %s", i, manifest[i].Name)
		}
		if manifest[i].Bounds != wantBounds {
			t.Errorf("manifest entry %d bounds = %+v, want %+v", i, manifest[i].Bounds, wantBounds)
		}
	}
}

func TestArchiveNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Archive(&buf, testAtlas(), nil); err == nil {
		t.Fatal("expected error for empty archive")
	}
}

func TestArchiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.zip")
	if err := ArchiveFile(path, testAtlas(), testBounds()); err != nil {
		t.Fatalf("ArchiveFile: %v", err)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer zr.Close()
	if got, want := len(zr.File), 3; got != want {
		t.Fatalf("archive holds %d entries, want %d", got, want)
	}
}
