// Package atlas provides atlas image loading and alpha-plane access for
// sticker segmentation.
package atlas

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Atlas represents a loaded atlas image.
type Atlas struct {
	Path   string      // Original file path
	Format string      // Registered decoder name ("png", "webp", ...)
	Image  image.Image // Decoded image data
}

// Load loads an atlas image from the specified path.
func Load(path string) (*Atlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas: %w", err)
	}

	return &Atlas{Path: path, Format: format, Image: img}, nil
}

// Width returns the image width in pixels.
func (a *Atlas) Width() int {
	if a.Image == nil {
		return 0
	}
	return a.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (a *Atlas) Height() int {
	if a.Image == nil {
		return 0
	}
	return a.Image.Bounds().Dy()
}

// Raster extracts the alpha plane used by the segmentation engine.
func (a *Atlas) Raster() *Raster {
	return FromImage(a.Image)
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".png", ".webp", ".gif", ".bmp", ".tiff", ".tif", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter string for use in file dialogs.
func FileFilter() string {
	return "Image Files (*.png, *.webp, *.gif, *.bmp, *.tiff, *.tif, *.jpg, *.jpeg)"
}
