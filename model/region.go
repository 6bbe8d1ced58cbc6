package model

// RegionType classifies a consolidated region
type RegionType int

const (
	RegionTextParagraph RegionType = iota
	RegionTitle
	RegionBulletList
	RegionDiagram
)

// String returns a string representation of the region type
func (rt RegionType) String() string {
	switch rt {
	case RegionTextParagraph:
		return "text_paragraph"
	case RegionTitle:
		return "title"
	case RegionBulletList:
		return "bullet_list"
	case RegionDiagram:
		return "diagram"
	default:
		return "unknown"
	}
}

// Region is a consolidated group of detections sharing one semantic role:
// a paragraph, a title, a bullet list, or a diagram.
type Region struct {
	// Type is the region's semantic classification
	Type RegionType

	// BBox is the union of all member bounding boxes
	BBox BBox

	// Members are the constituent detections in reading order
	// (top to bottom, then left to right)
	Members []Detection

	// Content is the joined text of the members, in reading order.
	// Empty for diagram regions.
	Content string
}

// IsText reports whether the region carries textual content
// (paragraph, title, or bullet list).
func (r Region) IsText() bool {
	return r.Type != RegionDiagram
}
