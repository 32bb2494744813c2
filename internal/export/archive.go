package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/klauspost/compress/flate"

	"sticker-slicer/pkg/geometry"
)

// manifestName is the metadata entry written alongside the stickers in
// every archive.
const manifestName = "manifest.json"

type manifestEntry struct {
	Name   string           `json:"name"`
	Bounds geometry.RectInt `json:"bounds"`
}

// Archive writes all regions as PNG entries plus a manifest into a zip
// stream. Entry names follow StickerName numbering.
func Archive(w io.Writer, src image.Image, bounds []geometry.RectInt) error {
	if len(bounds) == 0 {
		return fmt.Errorf("nothing to export")
	}

	zw := zip.NewWriter(w)
	// Sticker PNGs are already deflate-compressed.
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	manifest := make([]manifestEntry, 0, len(bounds))
	for i, r := range bounds {
		name := StickerName(i + 1)
		f, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if err := Sticker(f, src, r); err != nil {
			zw.Close()
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		manifest = append(manifest, manifestEntry{Name: name, Bounds: r})
	}

	mf, err := zw.Create(manifestName)
	if err != nil {
		zw.Close()
		return fmt.Errorf("failed to create %s: %w", manifestName, err)
	}
	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		zw.Close()
		return fmt.Errorf("failed to write %s: %w", manifestName, err)
	}
	return zw.Close()
}

// ArchiveFile is Archive writing to a new file at path.
func ArchiveFile(path string, src image.Image, bounds []geometry.RectInt) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := Archive(f, src, bounds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
