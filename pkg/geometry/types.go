// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"image"
)

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPointInt creates a new PointInt.
func NewPointInt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p PointInt) Sub(other PointInt) PointInt {
	return PointInt{X: p.X - other.X, Y: p.Y - other.Y}
}

// RectInt represents a rectangle with integer coordinates. X and Y are the
// top-left corner; Width and Height count pixels, so the rectangle covers
// [X, X+Width) x [Y, Y+Height).
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Empty returns true if the rectangle covers no pixels.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of pixels the rectangle covers.
func (r RectInt) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() PointInt {
	return PointInt{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the pixel (x, y) is inside the rectangle.
func (r RectInt) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this rectangle shares at least one pixel with another.
func (r RectInt) Intersects(other RectInt) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Expand returns the rectangle grown by margin pixels on all four sides.
// A negative margin shrinks it instead.
func (r RectInt) Expand(margin int) RectInt {
	return RectInt{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Clip clamps the rectangle to the bounds [0, width) x [0, height).
// Each edge is clamped independently; overhang on one side is cut off,
// never shifted to the opposite side.
func (r RectInt) Clip(width, height int) RectInt {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// AsImageRect converts to an image.Rectangle.
func (r RectInt) AsImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromImageRect creates a RectInt from an image.Rectangle.
func FromImageRect(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
