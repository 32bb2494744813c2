// Package segment provides alpha-channel connected-component segmentation
// for sticker atlases.
package segment

import (
	"fmt"
	"sync"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/pkg/geometry"
)

// Status classifies the outcome of a segmentation pass.
type Status int

const (
	// StatusOK indicates at least one region survived.
	StatusOK Status = iota
	// StatusEmptyAtlas indicates the raster had no pixels to scan.
	StatusEmptyAtlas
	// StatusNothingFound indicates the scan completed but no component
	// survived filtering. Distinct from StatusEmptyAtlas so the UI can say
	// "nothing found" instead of treating the atlas as broken.
	StatusNothingFound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusEmptyAtlas:
		return "Empty Atlas"
	case StatusNothingFound:
		return "Nothing Found"
	default:
		return "Unknown"
	}
}

// Result holds the results of one segmentation pass.
type Result struct {
	Regions []geometry.RectInt // Extraction rectangles in discovery order
	Status  Status             // Outcome classification
	Raw     int                // Component count before filtering
	Params  Params             // Parameters the scan ran with
}

// Segment finds sticker regions in the raster: a connected-component scan
// over the alpha channel followed by per-component filtering, padding and
// clipping. The pass is synchronous, deterministic and side-effect free;
// identical inputs always produce identical results.
func Segment(r *atlas.Raster, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	result := &Result{Params: params}

	if r == nil || r.Empty() {
		result.Status = StatusEmptyAtlas
		return result, nil
	}

	w, h := r.Width(), r.Height()
	fmt.Printf("Segment: %dx%d raster, threshold=%d, minDim=%d, padding=%d\n",
		w, h, params.AlphaThreshold, params.MinDimension, params.Padding)

	// Step 1: connected-component scan
	raw := Scan(r, params.AlphaThreshold)
	result.Raw = len(raw)
	fmt.Printf("Found %d connected components\n", len(raw))

	// Step 2: filter, pad and clip each component in discovery order
	for i, component := range raw {
		shaped, ok := shapeRegion(component, params, w, h)
		if !ok {
			fmt.Printf("  Component %d: %dx%d at (%d,%d) REJECT: below min dimension %d\n",
				i+1, component.Dx(), component.Dy(),
				component.Min.X, component.Min.Y, params.MinDimension)
			continue
		}
		result.Regions = append(result.Regions, shaped)
	}

	fmt.Printf("Filter: %d of %d components survived\n", len(result.Regions), len(raw))

	if len(result.Regions) == 0 {
		result.Status = StatusNothingFound
	}
	return result, nil
}

// SegmentAsync runs segmentation in a goroutine and delivers the result on
// the returned channel. The channel is buffered and closed after one result.
func SegmentAsync(r *atlas.Raster, params Params) <-chan *Result {
	ch := make(chan *Result, 1)

	go func() {
		defer close(ch)
		result, err := Segment(r, params)
		if err != nil {
			// Deliver an empty result on error
			ch <- &Result{Status: StatusNothingFound, Params: params}
			return
		}
		ch <- result
	}()

	return ch
}

// BatchSegment segments multiple rasters concurrently. Results are returned
// in input order; a failed input yields an empty result. Scans share nothing:
// each works on its own raster and scratch state.
func BatchSegment(rasters []*atlas.Raster, params Params) []*Result {
	results := make([]*Result, len(rasters))
	var wg sync.WaitGroup

	for i := range rasters {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			result, _ := Segment(rasters[idx], params)
			if result == nil {
				result = &Result{Status: StatusNothingFound, Params: params}
			}
			results[idx] = result
		}(i)
	}

	wg.Wait()
	return results
}
