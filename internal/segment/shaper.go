package segment

import (
	"image"

	"sticker-slicer/pkg/geometry"
)

// shapeRegion turns a raw component box into its final extraction rectangle,
// or reports false if the component is dropped. Order matters:
//
//  1. The minimum-dimension filter applies to the RAW box, so padding can
//     never rescue an undersized component.
//  2. Padding grows all four sides.
//  3. Each side is clipped to [0, width) x [0, height) independently;
//     overhang cut at one edge is never shifted to the opposite edge.
func shapeRegion(raw image.Rectangle, params Params, width, height int) (geometry.RectInt, bool) {
	if raw.Dx() < params.MinDimension || raw.Dy() < params.MinDimension {
		return geometry.RectInt{}, false
	}

	shaped := geometry.FromImageRect(raw).Expand(params.Padding).Clip(width, height)
	return shaped, true
}
