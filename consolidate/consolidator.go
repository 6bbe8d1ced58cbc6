package consolidate

import (
	"sort"
	"strings"

	"github.com/tsawler/inkgraph/model"
)

// Config holds configuration for region consolidation
type Config struct {
	// GapThreshold is the maximum vertical gap (pixels) between
	// consecutive lines of the same region. Zero means auto: the median
	// line height scaled by GapScale.
	GapThreshold float64

	// GapScale scales the median line height into the auto gap
	// threshold (default: 0.75)
	GapScale float64

	// MinHorizontalOverlap is the minimum horizontal overlap ratio for
	// two lines to share a region; keeps separate columns apart
	// (default: 0.1)
	MinHorizontalOverlap float64

	// LeftAlignSlack merges lines with no horizontal overlap when their
	// left edges are within this many pixels (default: 50)
	LeftAlignSlack float64

	// TitleHeightRatio is the line height ratio over the median for a
	// single line to qualify as a title (default: 1.3)
	TitleHeightRatio float64

	// TitleMaxWords is the maximum word count for a title (default: 6)
	TitleMaxWords int

	// BulletRatio is the fraction of lines that must start with a
	// bullet marker for a region to classify as a bullet list
	// (default: 0.5)
	BulletRatio float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		GapThreshold:         0, // auto
		GapScale:             0.75,
		MinHorizontalOverlap: 0.1,
		LeftAlignSlack:       50.0,
		TitleHeightRatio:     1.3,
		TitleMaxWords:        6,
		BulletRatio:          0.5,
	}
}

// Consolidator groups raw detections into semantic regions
type Consolidator struct {
	config Config
}

// NewConsolidator creates a consolidator with default configuration
func NewConsolidator() *Consolidator {
	return &Consolidator{config: DefaultConfig()}
}

// NewConsolidatorWithConfig creates a consolidator with custom configuration
func NewConsolidatorWithConfig(config Config) *Consolidator {
	return &Consolidator{config: config}
}

// Consolidate groups detections into regions: text detections become
// paragraph/title/list regions via the vertical sweep, and all shape and
// arrow detections become one diagram region. The returned regions are in
// reading order (top to bottom, then left to right). Empty input yields
// an empty (nil) region list.
//
// Detections are expected to be pre-validated; see the ingest package.
func (c *Consolidator) Consolidate(detections []model.Detection) []model.Region {
	var textDets, diagramDets []model.Detection
	for _, d := range detections {
		switch d.Kind {
		case model.KindText:
			textDets = append(textDets, d)
		case model.KindShape, model.KindArrow:
			diagramDets = append(diagramDets, d)
		}
	}

	regions := c.consolidateText(textDets)
	if diagram, ok := c.consolidateDiagram(diagramDets); ok {
		regions = append(regions, diagram)
	}

	// Reading order across all regions
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].BBox.Y1 != regions[j].BBox.Y1 {
			return regions[i].BBox.Y1 < regions[j].BBox.Y1
		}
		return regions[i].BBox.X1 < regions[j].BBox.X1
	})

	return regions
}

// consolidateText sweeps text detections in reading order and merges
// vertically adjacent, horizontally aligned lines into regions.
func (c *Consolidator) consolidateText(dets []model.Detection) []model.Region {
	if len(dets) == 0 {
		return nil
	}

	sorted := make([]model.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y1 != sorted[j].BBox.Y1 {
			return sorted[i].BBox.Y1 < sorted[j].BBox.Y1
		}
		return sorted[i].BBox.X1 < sorted[j].BBox.X1
	})

	median := medianLineHeight(sorted)
	threshold := c.config.GapThreshold
	if threshold == 0 {
		threshold = median * c.config.GapScale
	}

	var regions []model.Region
	group := []model.Detection{sorted[0]}

	for _, next := range sorted[1:] {
		prev := group[len(group)-1]
		gap := model.VerticalGap(prev.BBox, next.BBox)
		overlap := model.HorizontalOverlapRatio(prev.BBox, next.BBox)
		aligned := overlap >= c.config.MinHorizontalOverlap ||
			abs(next.BBox.X1-prev.BBox.X1) < c.config.LeftAlignSlack

		if gap <= threshold && aligned {
			group = append(group, next)
			continue
		}

		regions = append(regions, c.buildRegion(group, median))
		group = []model.Detection{next}
	}
	regions = append(regions, c.buildRegion(group, median))

	return regions
}

// buildRegion assembles a group of line detections into a classified region
func (c *Consolidator) buildRegion(group []model.Detection, medianHeight float64) model.Region {
	bbox := group[0].BBox
	for _, d := range group[1:] {
		bbox = bbox.Union(d.BBox)
	}

	parts := make([]string, 0, len(group))
	for _, d := range group {
		if t := strings.TrimSpace(d.Text); t != "" {
			parts = append(parts, t)
		}
	}

	return model.Region{
		Type:    c.classify(group, medianHeight),
		BBox:    bbox,
		Members: group,
		Content: strings.Join(parts, " "),
	}
}

// classify determines the semantic role of a closed text region
func (c *Consolidator) classify(group []model.Detection, medianHeight float64) model.RegionType {
	if len(group) == 1 {
		line := group[0]
		words := len(strings.Fields(line.Text))
		if medianHeight > 0 &&
			line.BBox.Height() >= medianHeight*c.config.TitleHeightRatio &&
			words > 0 && words <= c.config.TitleMaxWords {
			return model.RegionTitle
		}
	}

	bullets := 0
	for _, d := range group {
		if isListItem(d.Text) {
			bullets++
		}
	}
	if bullets > 0 && float64(bullets) >= c.config.BulletRatio*float64(len(group)) {
		return model.RegionBulletList
	}

	return model.RegionTextParagraph
}

// consolidateDiagram merges all shape/arrow detections into one diagram
// region. Returns false when there are no diagram detections.
func (c *Consolidator) consolidateDiagram(dets []model.Detection) (model.Region, bool) {
	if len(dets) == 0 {
		return model.Region{}, false
	}

	sorted := make([]model.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y1 != sorted[j].BBox.Y1 {
			return sorted[i].BBox.Y1 < sorted[j].BBox.Y1
		}
		return sorted[i].BBox.X1 < sorted[j].BBox.X1
	})

	bbox := sorted[0].BBox
	for _, d := range sorted[1:] {
		bbox = bbox.Union(d.BBox)
	}

	return model.Region{
		Type:    model.RegionDiagram,
		BBox:    bbox,
		Members: sorted,
	}, true
}

// medianLineHeight returns the median bbox height of the detections
func medianLineHeight(dets []model.Detection) float64 {
	if len(dets) == 0 {
		return 0
	}
	heights := make([]float64, len(dets))
	for i, d := range dets {
		heights[i] = d.BBox.Height()
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
