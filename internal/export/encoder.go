// Package export writes extracted stickers out as individual PNG files or
// as a single zip archive with a machine-readable manifest.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/region"
	"sticker-slicer/pkg/geometry"
)

// StickerName returns the file name for the n-th exported sticker.
// Numbering is positional and 1-based in export order, independent of
// region IDs.
func StickerName(n int) string {
	return fmt.Sprintf("sticker_%d.png", n)
}

// SelectedBounds filters a region list down to the bounds of the selected
// entries, preserving order.
func SelectedBounds(regions []region.Region) []geometry.RectInt {
	var bounds []geometry.RectInt
	for _, r := range regions {
		if r.Selected {
			bounds = append(bounds, r.Bounds)
		}
	}
	return bounds
}

// Sticker crops one region out of the source image and PNG-encodes it to w.
func Sticker(w io.Writer, src image.Image, r geometry.RectInt) error {
	return png.Encode(w, atlas.Crop(src, r))
}

// Files writes one PNG per region into dir, creating the directory if
// needed. It returns the names of the files written so far, in order.
func Files(dir string, src image.Image, bounds []geometry.RectInt) ([]string, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	names := make([]string, 0, len(bounds))
	for i, r := range bounds {
		name := StickerName(i + 1)
		if err := writeStickerFile(filepath.Join(dir, name), src, r); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func writeStickerFile(path string, src image.Image, r geometry.RectInt) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Sticker(f, src, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
