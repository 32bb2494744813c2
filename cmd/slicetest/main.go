// Command slicetest runs sticker extraction on an atlas image and prints
// the results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/export"
	"sticker-slicer/internal/region"
	"sticker-slicer/internal/segment"
	"sticker-slicer/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to atlas image (PNG, WebP, GIF, BMP, TIFF, or JPEG)")
	threshold := flag.Int("threshold", 1, "Alpha threshold (1-255)")
	minDim := flag.Int("min-dim", 1, "Minimum sticker width and height in pixels")
	padding := flag.Int("padding", 0, "Padding in pixels around each sticker")
	auto := flag.Bool("auto", false, "Pick the alpha threshold from the atlas histogram")
	sortBy := flag.String("sort", "discovery", "Output order: discovery, largest, or smallest")
	outDir := flag.String("out", "", "Export the stickers as PNG files into this directory")
	asJSON := flag.Bool("json", false, "Print the extraction rectangles as JSON")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("slicetest", version.String())
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: slicetest -image <path> [-threshold 1] [-min-dim 1] [-padding 0] [-auto] [-sort discovery] [-out <dir>] [-json]")
		os.Exit(1)
	}
	if *threshold < 1 || *threshold > 255 {
		fmt.Fprintf(os.Stderr, "Alpha threshold must be 1-255, got %d\n", *threshold)
		os.Exit(1)
	}

	mode, err := parseSortMode(*sortBy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Load atlas
	a, err := atlas.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load atlas: %v\n", err)
		os.Exit(1)
	}
	raster := a.Raster()

	fmt.Printf("Loaded %s atlas: %dx%d pixels\n", a.Format, a.Width(), a.Height())

	// Set up extraction parameters
	params := segment.DefaultParams().
		WithThreshold(uint8(*threshold)).
		WithMinDimension(*minDim).
		WithPadding(*padding)
	if *auto {
		params = params.WithThreshold(segment.SuggestThreshold(raster))
	}

	fmt.Printf("\nExtraction parameters:\n")
	fmt.Printf("  Alpha threshold: %d", params.AlphaThreshold)
	if *auto {
		fmt.Printf(" (suggested)")
	}
	fmt.Println()
	fmt.Printf("  Min dimension:   %d px\n", params.MinDimension)
	fmt.Printf("  Padding:         %d px\n", params.Padding)

	// Run extraction
	result, err := segment.Segment(raster, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	switch result.Status {
	case segment.StatusEmptyAtlas:
		fmt.Println("\nAtlas has no pixels")
		return
	case segment.StatusNothingFound:
		fmt.Printf("\nNo stickers found (raw components: %d)\n", result.Raw)
		return
	}

	regions := region.NewCollection()
	regions.Reset(result.Regions)
	ordered := regions.Ordered(mode)

	if *asJSON {
		data, err := json.MarshalIndent(ordered, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON encoding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("\nFound %d stickers (%d raw components):\n", regions.Len(), result.Raw)
		fmt.Printf("%-6s %8s %8s %8s %8s %10s\n", "ID", "X", "Y", "W", "H", "Area")
		fmt.Println(strings.Repeat("-", 52))
		for _, r := range ordered {
			fmt.Printf("%-6d %8d %8d %8d %8d %10d\n",
				r.ID, r.Bounds.X, r.Bounds.Y, r.Bounds.Width, r.Bounds.Height,
				r.Bounds.Width*r.Bounds.Height)
		}
	}

	if *outDir != "" {
		files, err := export.Files(*outDir, a.Image, export.SelectedBounds(ordered))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nExported %d stickers to %s\n", len(files), *outDir)
	}
}

// parseSortMode maps a flag value to a sort mode.
func parseSortMode(s string) (region.SortMode, error) {
	switch s {
	case "discovery":
		return region.SortDiscovery, nil
	case "largest":
		return region.SortLargest, nil
	case "smallest":
		return region.SortSmallest, nil
	}
	return 0, fmt.Errorf("unknown sort mode %q (want discovery, largest, or smallest)", s)
}
