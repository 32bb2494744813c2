// Command stickerpack batch-extracts stickers from one or more atlas images
// and packs each atlas into a zip archive of PNG files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/export"
	"sticker-slicer/internal/palette"
	"sticker-slicer/internal/segment"
)

func main() {
	threshold := flag.Int("threshold", 1, "Alpha threshold (1-255)")
	minDim := flag.Int("min-dim", 1, "Minimum sticker width and height in pixels")
	padding := flag.Int("padding", 0, "Padding in pixels around each sticker")
	auto := flag.Bool("auto", false, "Pick the alpha threshold per atlas from its histogram")
	outDir := flag.String("out", ".", "Directory for the generated archives")
	groups := flag.Int("groups", 0, "Cluster sticker colors into this many groups and print a summary")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: stickerpack [-threshold 1] [-min-dim 1] [-padding 0] [-auto] [-out <dir>] [-groups <k>] <atlas>...")
		os.Exit(1)
	}
	if *threshold < 1 || *threshold > 255 {
		fmt.Fprintf(os.Stderr, "Alpha threshold must be 1-255, got %d\n", *threshold)
		os.Exit(1)
	}

	params := segment.DefaultParams().
		WithThreshold(uint8(*threshold)).
		WithMinDimension(*minDim).
		WithPadding(*padding)
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Load every atlas up front so extraction can run as one batch
	atlases := make([]*atlas.Atlas, 0, len(paths))
	rasters := make([]*atlas.Raster, 0, len(paths))
	for _, path := range paths {
		a, err := atlas.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
			os.Exit(1)
		}
		atlases = append(atlases, a)
		rasters = append(rasters, a.Raster())
	}

	// A fixed threshold lets all atlases share one concurrent batch. With
	// -auto each atlas gets its own histogram-derived threshold instead.
	var results []*segment.Result
	if *auto {
		results = make([]*segment.Result, len(rasters))
		for i, r := range rasters {
			p := params.WithThreshold(segment.SuggestThreshold(r))
			result, err := segment.Segment(r, p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Extraction failed for %s: %v\n", paths[i], err)
				os.Exit(1)
			}
			results[i] = result
		}
	} else {
		results = segment.BatchSegment(rasters, params)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %9s %9s  %s\n", "Atlas", "Stickers", "Raw", "Archive")
	fmt.Println(strings.Repeat("-", 72))

	packed := 0
	for i, a := range atlases {
		res := results[i]
		name := filepath.Base(a.Path)

		if res.Status != segment.StatusOK {
			fmt.Printf("%-28s %9d %9d  (%s)\n", name, 0, res.Raw, res.Status)
			continue
		}

		zipName := strings.TrimSuffix(name, filepath.Ext(name)) + ".zip"
		zipPath := filepath.Join(*outDir, zipName)
		if err := export.ArchiveFile(zipPath, a.Image, res.Regions); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", zipPath, err)
			os.Exit(1)
		}

		fmt.Printf("%-28s %9d %9d  %s\n", name, len(res.Regions), res.Raw, zipPath)
		packed += len(res.Regions)
	}
	fmt.Printf("\nPacked %d stickers from %d atlases\n", packed, len(atlases))

	if *groups > 1 {
		printColorGroups(atlases, results, *groups)
	}
}

// printColorGroups clusters the dominant sticker colors across all atlases
// and prints one line per group, members ordered dark to light.
func printColorGroups(atlases []*atlas.Atlas, results []*segment.Result, k int) {
	var swatches []palette.Swatch
	for i, a := range atlases {
		swatches = append(swatches, palette.Swatches(a.Image, results[i].Regions)...)
	}
	if len(swatches) == 0 {
		return
	}

	labels := palette.Group(swatches, k)
	buckets := make(map[int][]palette.Swatch)
	for i, label := range labels {
		buckets[label] = append(buckets[label], swatches[i])
	}

	fmt.Printf("\nColor groups:\n")
	for g := 0; g < k; g++ {
		members := buckets[g]
		if len(members) == 0 {
			continue
		}
		palette.SortByBrightness(members)

		hexes := make([]string, 0, len(members))
		for _, sw := range members {
			hexes = append(hexes, sw.Hex)
		}
		line := strings.Join(hexes, " ")
		if len(hexes) > 8 {
			line = strings.Join(hexes[:8], " ") + fmt.Sprintf(" +%d more", len(hexes)-8)
		}
		fmt.Printf("  Group %d (%d stickers): %s\n", g+1, len(members), line)
	}
}
