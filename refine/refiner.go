package refine

import (
	"github.com/tsawler/inkgraph/model"
)

// Config holds configuration for graph refinement
type Config struct {
	// MergeDistance is the maximum centroid distance (pixels) between
	// two same-labeled nodes for them to merge; keeps genuinely
	// distinct same-named nodes apart (default: 200)
	MergeDistance float64

	// Corrections maps known OCR misreads to their intended words,
	// applied during canonicalization. Keys and values are lowercase
	// single words.
	Corrections map[string]string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MergeDistance: 200.0,
		Corrections:   nil,
	}
}

// Refiner refines a fused graph into its terminal validated form
type Refiner struct {
	config Config
}

// NewRefiner creates a refiner with default configuration
func NewRefiner() *Refiner {
	return &Refiner{config: DefaultConfig()}
}

// NewRefinerWithConfig creates a refiner with custom configuration
func NewRefinerWithConfig(config Config) *Refiner {
	return &Refiner{config: config}
}

// Refine takes exclusive ownership of the graph and drives it through
// canonicalization, deduplication, semantic inference, and validation.
// The same pointer is returned in the validated state. A nil or empty
// graph yields an empty validated graph, never an error.
//
// Refine is idempotent: refining its own output changes nothing.
func (r *Refiner) Refine(g *model.Graph) *model.Graph {
	if g == nil {
		g = model.NewGraph()
	}

	r.canonicalize(g)
	g.State = model.StateCanonicalized

	r.deduplicate(g)
	g.State = model.StateDeduplicated

	r.inferRelations(g)
	g.State = model.StateInferred

	r.validate(g)
	g.State = model.StateValidated

	return g
}

// canonicalize computes canonical labels for every node
func (r *Refiner) canonicalize(g *model.Graph) {
	for i := range g.Nodes {
		g.Nodes[i].CanonicalLabel = Canonicalize(g.Nodes[i].Label, r.config.Corrections)
	}
}

// deduplicate merges nodes sharing a canonical label whose centroids sit
// within the merge distance. The earliest-created node survives, bboxes
// are unioned, and the non-synthetic label wins. Edges are rewritten onto
// survivors; duplicates and self-loops introduced by merging collapse.
//
// Merging unions bboxes, which moves centroids, which can bring two
// survivors of one pass within merge range of each other. The pass is
// repeated until it performs no merges, so the emitted graph holds no
// mergeable pair and refining it again changes nothing.
func (r *Refiner) deduplicate(g *model.Graph) {
	for r.dedupePass(g) {
	}
}

// dedupePass performs one merge sweep and reports whether it merged
// anything.
func (r *Refiner) dedupePass(g *model.Graph) bool {
	if len(g.Nodes) < 2 {
		return false
	}

	idMap := make(map[string]string, len(g.Nodes))
	var survivors []model.Node
	mergedAny := false

	for _, node := range g.Nodes {
		merged := false
		for i := range survivors {
			s := &survivors[i]
			if s.CanonicalLabel != node.CanonicalLabel {
				continue
			}
			if model.CentroidDistance(s.BBox, node.BBox) > r.config.MergeDistance {
				continue
			}

			// Merge into the earlier-created survivor.
			s.BBox = s.BBox.Union(node.BBox)
			if s.Synthetic && !node.Synthetic {
				s.Label = node.Label
				s.Synthetic = false
			}
			idMap[node.ID] = s.ID
			merged = true
			mergedAny = true
			break
		}
		if !merged {
			idMap[node.ID] = node.ID
			survivors = append(survivors, node)
		}
	}

	if !mergedAny {
		return false
	}

	g.Nodes = survivors

	seen := make(map[model.Edge]bool, len(g.Edges))
	var edges []model.Edge
	for _, e := range g.Edges {
		if from, ok := idMap[e.From]; ok {
			e.From = from
		}
		if to, ok := idMap[e.To]; ok {
			e.To = to
		}
		if e.From == e.To {
			continue
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	g.Edges = edges
	return true
}

// inferRelations assigns a relation label to every still-unlabeled edge
// from the relative layout of its endpoints. This is best-effort: flow
// usually runs downward or rightward in hand-drawn diagrams, so those
// directions read as leads_to and the reverse as depends_on.
func (r *Refiner) inferRelations(g *model.Graph) {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Label != "" {
			continue
		}

		from := g.NodeByID(e.From)
		to := g.NodeByID(e.To)
		if from == nil || to == nil {
			// Dangling edge; validation will drop it.
			continue
		}

		switch model.RelativePosition(from.BBox, to.BBox) {
		case model.PositionBelow, model.PositionRight:
			e.Label = RelationLeadsTo
		case model.PositionAbove, model.PositionLeft:
			e.Label = RelationDependsOn
		case model.PositionOverlap:
			e.Label = RelationRelatesTo
		}
		e.Inferred = true
	}
}

// validate drops edges whose endpoints no longer resolve and nodes that
// carry no information (synthetic or empty label, no incident edges).
func (r *Refiner) validate(g *model.Graph) {
	var edges []model.Edge
	for _, e := range g.Edges {
		if g.HasNode(e.From) && g.HasNode(e.To) {
			edges = append(edges, e)
		}
	}
	g.Edges = edges

	incident := make(map[string]int)
	for _, e := range g.Edges {
		incident[e.From]++
		incident[e.To]++
	}

	var nodes []model.Node
	for _, n := range g.Nodes {
		noise := (n.Synthetic || n.Label == "") && incident[n.ID] == 0
		if !noise {
			nodes = append(nodes, n)
		}
	}
	g.Nodes = nodes
}
