package fusion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/inkgraph/model"
)

// Config holds configuration for graph building
type Config struct {
	// ContainsMargin is the containment tolerance in pixels when
	// matching text to shapes. Zero means auto: 2% of the smaller
	// box's smaller dimension per pair (model.DefaultContainsMargin).
	ContainsMargin float64

	// MaxAssocRatio scales the layout diagonal into the maximum
	// distance between an arrow endpoint and its nearest node before
	// the arrow is discarded as unattached (default: 0.25)
	MaxAssocRatio float64

	// MaxAssocDistance overrides the ratio-derived maximum association
	// distance when non-zero
	MaxAssocDistance float64

	// LabelRadiusScale scales an arrow's length into the search radius
	// for its label text (default: 0.5)
	LabelRadiusScale float64

	// MinLabelRadius is the floor for the label search radius, so very
	// short arrows can still find their labels (default: 15)
	MinLabelRadius float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		ContainsMargin:   0, // auto
		MaxAssocRatio:    0.25,
		MaxAssocDistance: 0,
		LabelRadiusScale: 0.5,
		MinLabelRadius:   15.0,
	}
}

// Builder fuses detections into an initial graph
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// Build converts detections into a raw graph. Shapes become nodes, text
// contained by a shape becomes that node's label, and arrows become
// directed edges between the nodes nearest their endpoints. Arrows whose
// nearest node lies beyond the maximum association distance are discarded
// with a warning rather than forced into spurious edges.
//
// The returned graph carries possibly-duplicated nodes and unlabeled
// edges; refinement is the refine package's job.
func (b *Builder) Build(detections []model.Detection) (*model.Graph, []model.Warning) {
	var warnings []model.Warning

	var texts, shapes, arrows []model.Detection
	for i, d := range detections {
		if err := d.Validate(); err != nil {
			warnings = append(warnings, model.Warningf(model.WarnMalformedDetection,
				"detection %d skipped: %v", i, err))
			continue
		}
		switch d.Kind {
		case model.KindText:
			texts = append(texts, d)
		case model.KindShape:
			shapes = append(shapes, d)
		case model.KindArrow:
			arrows = append(arrows, d)
		}
	}

	graph := model.NewGraph()

	// Shape -> Node
	for i, s := range shapes {
		graph.Nodes = append(graph.Nodes, model.Node{
			ID:    fmt.Sprintf("node_%d", i+1),
			BBox:  s.BBox,
			Shape: s.Shape,
		})
	}

	// Text -> Node labels via tightest containment
	freeTexts := b.labelNodes(graph, texts)

	// Placeholder labels for shapes no text landed in
	unlabeled := 0
	for i := range graph.Nodes {
		if graph.Nodes[i].Label == "" {
			unlabeled++
			graph.Nodes[i].Label = fmt.Sprintf("Unlabeled Shape %d", unlabeled)
			graph.Nodes[i].Synthetic = true
		}
	}

	// Arrow -> Edge
	maxDist := b.maxAssociationDistance(detections)
	for i, a := range arrows {
		edge, ok := b.resolveArrow(graph, a, maxDist)
		if !ok {
			warnings = append(warnings, model.Warningf(model.WarnUnattachedArrow,
				"arrow %d discarded: no node within %.0fpx of its endpoints", i, maxDist))
			continue
		}
		if label, found := b.nearestLabel(a, freeTexts); found {
			edge.Label = label
		}
		graph.Edges = append(graph.Edges, edge)
	}

	return graph, warnings
}

// labelNodes assigns each text detection to the smallest-area shape node
// containing it and builds node labels from the matched text in reading
// order. Returns the texts no shape contained.
func (b *Builder) labelNodes(graph *model.Graph, texts []model.Detection) []model.Detection {
	matched := make(map[int][]model.Detection) // node index -> texts
	var free []model.Detection

	for _, t := range texts {
		best := -1
		bestArea := math.Inf(1)
		for i := range graph.Nodes {
			node := graph.Nodes[i]
			margin := b.config.ContainsMargin
			if margin == 0 {
				margin = model.DefaultContainsMargin(node.BBox, t.BBox)
			}
			if !model.Contains(node.BBox, t.BBox, margin) {
				continue
			}
			if area := node.BBox.Area(); area < bestArea {
				bestArea = area
				best = i
			}
		}
		if best >= 0 {
			matched[best] = append(matched[best], t)
		} else {
			free = append(free, t)
		}
	}

	for i, group := range matched {
		sort.SliceStable(group, func(a, b int) bool {
			if group[a].BBox.Y1 != group[b].BBox.Y1 {
				return group[a].BBox.Y1 < group[b].BBox.Y1
			}
			return group[a].BBox.X1 < group[b].BBox.X1
		})
		parts := make([]string, 0, len(group))
		for _, t := range group {
			if s := strings.TrimSpace(t.Text); s != "" {
				parts = append(parts, s)
			}
		}
		graph.Nodes[i].Label = strings.Join(parts, " ")
	}

	return free
}

// resolveArrow finds the from/to nodes for an arrow by nearest centroid to
// its tail and head endpoints. Returns false when either endpoint has no
// node within maxDist, or when the arrow cannot connect two distinct nodes.
func (b *Builder) resolveArrow(graph *model.Graph, arrow model.Detection, maxDist float64) (model.Edge, bool) {
	if len(graph.Nodes) == 0 {
		return model.Edge{}, false
	}

	tail, head := arrowEndpoints(arrow)

	fromIdx, fromDist := nearestNode(graph, tail, -1)
	toIdx, toDist := nearestNode(graph, head, fromIdx)

	if fromIdx < 0 || toIdx < 0 {
		return model.Edge{}, false
	}
	if fromDist > maxDist || toDist > maxDist {
		return model.Edge{}, false
	}

	return model.Edge{
		From: graph.Nodes[fromIdx].ID,
		To:   graph.Nodes[toIdx].ID,
	}, true
}

// nearestLabel finds the free text nearest the arrow's midpoint within the
// label search radius.
func (b *Builder) nearestLabel(arrow model.Detection, freeTexts []model.Detection) (string, bool) {
	radius := math.Max(b.config.LabelRadiusScale*arrow.ArrowLength(), b.config.MinLabelRadius)
	mid := arrow.Midpoint()

	best := ""
	bestDist := math.Inf(1)
	for _, t := range freeTexts {
		d := t.BBox.Center().Distance(mid)
		if d <= radius && d < bestDist {
			bestDist = d
			best = strings.TrimSpace(t.Text)
		}
	}
	return best, best != ""
}

// maxAssociationDistance derives the arrow association limit from the
// configuration or, by default, from the diagonal of the union of all
// detection bboxes (a stand-in for the image diagonal, which the core
// never sees).
func (b *Builder) maxAssociationDistance(detections []model.Detection) float64 {
	if b.config.MaxAssocDistance > 0 {
		return b.config.MaxAssocDistance
	}
	if len(detections) == 0 {
		return 0
	}

	union := detections[0].BBox
	for _, d := range detections[1:] {
		union = union.Union(d.BBox)
	}
	diagonal := math.Hypot(union.Width(), union.Height())
	return b.config.MaxAssocRatio * diagonal
}

// arrowEndpoints returns the tail and head points of an arrow. Detectors
// that supply no endpoint geometry get a left-to-right reading-direction
// fallback across the arrow's bbox.
func arrowEndpoints(arrow model.Detection) (model.Point, model.Point) {
	zero := model.Point{}
	if arrow.Endpoints[0] == zero && arrow.Endpoints[1] == zero {
		c := arrow.BBox.Center()
		return model.Point{X: arrow.BBox.X1, Y: c.Y}, model.Point{X: arrow.BBox.X2, Y: c.Y}
	}
	return arrow.Endpoints[0], arrow.Endpoints[1]
}

// nearestNode returns the index of the node whose centroid is nearest p,
// excluding the node at index skip (pass -1 to consider all nodes).
func nearestNode(graph *model.Graph, p model.Point, skip int) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i := range graph.Nodes {
		if i == skip {
			continue
		}
		if d := graph.Nodes[i].BBox.Center().Distance(p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}
