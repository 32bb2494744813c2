package segment

import (
	"gonum.org/v1/gonum/floats"

	"sticker-slicer/internal/atlas"
)

// SuggestThreshold picks an alpha cutoff separating transparent background
// from opaque sticker pixels using Otsu's method on the alpha histogram:
// the split maximizing between-class variance. Anti-aliased fringe pixels
// end up on whichever side their alpha is closer to.
//
// Falls back to the default threshold when there is nothing to separate
// (empty raster, fully transparent, fully opaque, or a single alpha level).
func SuggestThreshold(r *atlas.Raster) uint8 {
	if r == nil || r.Empty() {
		return DefaultParams().AlphaThreshold
	}

	hist := r.Histogram()
	counts := make([]float64, 256)
	weighted := make([]float64, 256)
	for i, n := range hist {
		counts[i] = float64(n)
		weighted[i] = float64(i) * float64(n)
	}

	total := floats.Sum(counts)
	if total == 0 {
		return DefaultParams().AlphaThreshold
	}

	// Prefix sums give per-split class weights and means in O(1).
	cumCount := make([]float64, 256)
	cumLevel := make([]float64, 256)
	floats.CumSum(cumCount, counts)
	floats.CumSum(cumLevel, weighted)
	totalLevel := cumLevel[255]

	// Candidate split t puts levels [0, t] in the background class and
	// [t+1, 255] in the foreground class.
	bestSplit := -1
	bestVariance := 0.0
	for t := 0; t < 255; t++ {
		wb := cumCount[t]
		wf := total - wb
		if wb == 0 || wf == 0 {
			continue
		}
		mb := cumLevel[t] / wb
		mf := (totalLevel - cumLevel[t]) / wf
		d := mb - mf
		v := wb * wf * d * d
		if v > bestVariance {
			bestVariance = v
			bestSplit = t
		}
	}

	if bestSplit < 0 {
		return DefaultParams().AlphaThreshold
	}

	// Pixels with alpha >= threshold are opaque, so the cutoff sits one
	// above the background class.
	threshold := bestSplit + 1
	if threshold < 1 {
		threshold = 1
	}
	if threshold > 255 {
		threshold = 255
	}
	return uint8(threshold)
}
