package segment

import (
	"image"

	"sticker-slicer/internal/atlas"
)

// Scan finds connected opaque components in the raster. A pixel is opaque
// when its alpha is >= threshold. Components use 4-connectivity: pixels
// touching only diagonally belong to separate components, which keeps the
// region count stable for pixel-art atlases with checkerboard edges.
//
// Bounds are emitted in discovery order: the outer traversal is row-major
// (top to bottom, left to right), so components are ordered by their first
// scanned pixel. Every opaque pixel is assigned to exactly one component;
// an empty raster yields no components.
func Scan(r *atlas.Raster, threshold uint8) []image.Rectangle {
	if r == nil || r.Empty() {
		return nil
	}
	w, h := r.Width(), r.Height()

	visited := make([]byte, w*h)
	var regions []image.Rectangle

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] == 0 && r.AlphaAt(x, y) >= threshold {
				region := floodFill(r, visited, x, y, threshold)
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// floodFill grows a component from (startX, startY) using an explicit stack,
// marking visited pixels and tracking the tight bounding rectangle. The
// returned rectangle is the exact extrema of the component's pixels (max
// exclusive). The stack is heap-allocated and growable, so component size is
// bounded by memory rather than goroutine stack depth.
func floodFill(r *atlas.Raster, visited []byte, startX, startY int, threshold uint8) image.Rectangle {
	w, h := r.Width(), r.Height()
	minX, minY := startX, startY
	maxX, maxY := startX+1, startY+1

	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		idx := p.Y*w + p.X
		if visited[idx] != 0 || r.AlphaAt(p.X, p.Y) < threshold {
			continue
		}

		visited[idx] = 1

		if p.X < minX {
			minX = p.X
		}
		if p.X+1 > maxX {
			maxX = p.X + 1
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y+1 > maxY {
			maxY = p.Y + 1
		}

		stack = append(stack,
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y - 1},
			image.Point{X: p.X, Y: p.Y + 1},
		)
	}

	return image.Rect(minX, minY, maxX, maxY)
}
