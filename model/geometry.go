package model

import "math"

// Point represents a 2D point in image pixel space
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in corner form. Coordinates are in image
// pixel space with the origin at the top-left corner (Y grows downward).
// A valid box has X1 < X2 and Y1 < Y2.
type BBox struct {
	X1, Y1 float64 // Top-left corner
	X2, Y2 float64 // Bottom-right corner
}

// NewBBox creates a bounding box from two corner coordinates, normalizing
// the corner order so the result is valid regardless of argument order.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent of the box
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Center returns the centroid of the box
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// ContainsPoint checks if a point lies inside the bounding box (inclusive)
func (b BBox) ContainsPoint(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 &&
		p.Y >= b.Y1 && p.Y <= b.Y2
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.X2 < other.X1 ||
		b.X1 > other.X2 ||
		b.Y2 < other.Y1 ||
		b.Y1 > other.Y2)
}

// Intersection returns the intersection of two bounding boxes, or the zero
// box when they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	return BBox{
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
		X2: math.Min(b.X2, other.X2),
		Y2: math.Min(b.Y2, other.Y2),
	}
}

// Union returns the smallest bounding box covering both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X1: b.X1 - margin,
		Y1: b.Y1 - margin,
		X2: b.X2 + margin,
		Y2: b.Y2 + margin,
	}
}

// OverlapRatio calculates the overlap ratio with another box:
// intersection area divided by the smaller box's area.
// Returns a value between 0 and 1.
func (b BBox) OverlapRatio(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}

	intersection := b.Intersection(other)
	minArea := math.Min(b.Area(), other.Area())

	if minArea == 0 {
		return 0
	}

	return intersection.Area() / minArea
}

// Contains reports whether inner lies fully within outer, allowing inner's
// edges to spill past outer's by up to margin pixels on each side. A margin
// of zero means strict containment; use DefaultContainsMargin to absorb
// OCR jitter.
func Contains(outer, inner BBox, margin float64) bool {
	return inner.X1 >= outer.X1-margin &&
		inner.Y1 >= outer.Y1-margin &&
		inner.X2 <= outer.X2+margin &&
		inner.Y2 <= outer.Y2+margin
}

// DefaultContainsMargin returns the default containment tolerance for a
// pair of boxes: 2% of the smaller box's smaller dimension.
func DefaultContainsMargin(a, b BBox) float64 {
	smaller := a
	if b.Area() < a.Area() {
		smaller = b
	}
	return 0.02 * math.Min(smaller.Width(), smaller.Height())
}

// CentroidDistance returns the Euclidean distance between the centers of
// two bounding boxes.
func CentroidDistance(a, b BBox) float64 {
	return a.Center().Distance(b.Center())
}

// VerticalGap returns the signed vertical distance from the bottom edge of
// a to the top edge of b. A negative value means the boxes overlap
// vertically; for consecutive text lines this is the inter-line gap.
func VerticalGap(a, b BBox) float64 {
	return b.Y1 - a.Y2
}

// HorizontalOverlapRatio returns the ratio of the horizontal overlap of
// two boxes to the narrower box's width. Used to keep separate columns
// from merging into one region.
func HorizontalOverlapRatio(a, b BBox) float64 {
	overlap := math.Min(a.X2, b.X2) - math.Max(a.X1, b.X1)
	if overlap <= 0 {
		return 0
	}
	minWidth := math.Min(a.Width(), b.Width())
	if minWidth == 0 {
		return 0
	}
	return overlap / minWidth
}

// Position is a coarse directional classification of one box relative to
// another.
type Position int

const (
	PositionAbove Position = iota
	PositionBelow
	PositionLeft
	PositionRight
	PositionOverlap
)

// String returns a string representation of the position
func (p Position) String() string {
	switch p {
	case PositionAbove:
		return "above"
	case PositionBelow:
		return "below"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	case PositionOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// RelativePosition classifies where b sits relative to a. Boxes that
// intersect with an overlap ratio of at least 0.5 are PositionOverlap;
// otherwise the dominant centroid offset axis decides, with ties going to
// the vertical axis.
func RelativePosition(a, b BBox) Position {
	if a.Intersects(b) && a.OverlapRatio(b) >= 0.5 {
		return PositionOverlap
	}

	ac, bc := a.Center(), b.Center()
	dx := bc.X - ac.X
	dy := bc.Y - ac.Y

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return PositionRight
		}
		return PositionLeft
	}
	if dy > 0 {
		return PositionBelow
	}
	return PositionAbove
}
