package model

import (
	"fmt"
	"strings"
)

// DetectionKind discriminates the variants of a Detection
type DetectionKind int

const (
	KindUnknown DetectionKind = iota
	KindText
	KindShape
	KindArrow
)

// String returns the wire name of the detection kind
func (k DetectionKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindShape:
		return "shape"
	case KindArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// ParseDetectionKind parses a wire kind string ("text", "shape", "arrow").
// Matching is case-insensitive.
func ParseDetectionKind(s string) (DetectionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return KindText, nil
	case "shape":
		return KindShape, nil
	case "arrow":
		return KindArrow, nil
	default:
		return KindUnknown, fmt.Errorf("unknown detection kind %q", s)
	}
}

// ShapeType classifies a detected shape outline
type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapeRectangle
	ShapeCircle
	ShapeTriangle
	ShapeLine
)

// String returns the wire name of the shape type
func (s ShapeType) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	case ShapeLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseShapeType parses a wire shape type string. Unrecognized values map
// to ShapeUnknown without error; upstream detectors emit free-form type
// names and an unknown shape is still a usable node.
func ParseShapeType(s string) ShapeType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect", "box", "square":
		return ShapeRectangle
	case "circle", "ellipse", "oval":
		return ShapeCircle
	case "triangle":
		return ShapeTriangle
	case "line":
		return ShapeLine
	default:
		return ShapeUnknown
	}
}

// Detection is a single raw output unit from an upstream OCR or vision
// provider. It is immutable input to the pipeline: a box of text, a shape
// outline, or an arrow.
//
// For arrows, Endpoints carries the two line endpoints in detector order:
// Endpoints[0] is the tail, Endpoints[1] the head. This ordering is the
// upstream detector's contract and determines edge direction during fusion.
type Detection struct {
	// Text is the recognized text content (kind=text only)
	Text string

	// BBox is the detection's bounding box in image pixel space
	BBox BBox

	// Confidence is the provider's confidence in [0,1]
	Confidence float64

	// Kind discriminates text, shape, and arrow detections
	Kind DetectionKind

	// Shape is the shape classification (kind=shape only)
	Shape ShapeType

	// Endpoints are the arrow's tail and head points (kind=arrow only)
	Endpoints [2]Point
}

// Validate checks the structural invariants of a detection: a known kind
// and a valid bounding box (X1 < X2, Y1 < Y2). It does not judge content;
// empty text and unknown shape types are acceptable.
func (d Detection) Validate() error {
	if d.Kind == KindUnknown {
		return fmt.Errorf("detection has unknown kind")
	}
	if !d.BBox.IsValid() {
		return fmt.Errorf("detection bbox [%g,%g,%g,%g] is degenerate",
			d.BBox.X1, d.BBox.Y1, d.BBox.X2, d.BBox.Y2)
	}
	return nil
}

// Midpoint returns the midpoint of an arrow's endpoints. For non-arrow
// detections it falls back to the bbox center.
func (d Detection) Midpoint() Point {
	if d.Kind != KindArrow {
		return d.BBox.Center()
	}
	return Point{
		X: (d.Endpoints[0].X + d.Endpoints[1].X) / 2,
		Y: (d.Endpoints[0].Y + d.Endpoints[1].Y) / 2,
	}
}

// ArrowLength returns the distance between an arrow's endpoints
func (d Detection) ArrowLength() float64 {
	return d.Endpoints[0].Distance(d.Endpoints[1])
}
