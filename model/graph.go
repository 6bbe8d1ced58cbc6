package model

// GraphState tracks a graph's progress through refinement. States advance
// monotonically; a validated graph is terminal and must not be mutated.
type GraphState int

const (
	StateRaw GraphState = iota
	StateCanonicalized
	StateDeduplicated
	StateInferred
	StateValidated
)

// String returns a string representation of the graph state
func (s GraphState) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateCanonicalized:
		return "canonicalized"
	case StateDeduplicated:
		return "deduplicated"
	case StateInferred:
		return "inferred"
	case StateValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// Node is a graph vertex representing one detected shape or concept.
type Node struct {
	// ID is the node's stable identifier, assigned at creation and unique
	// within one graph instance
	ID string

	// Label is the display label: matched text, or a synthetic
	// "Unlabeled Shape N" placeholder when no text was matched
	Label string

	// CanonicalLabel is the normalized form of Label used for
	// deduplication. Never used for display.
	CanonicalLabel string

	// BBox is the node's bounding box in image pixel space
	BBox BBox

	// Shape is the originating detection's shape classification
	Shape ShapeType

	// Synthetic is true when Label is a generated placeholder rather
	// than matched text
	Synthetic bool
}

// Edge is a directed relationship between two node IDs.
type Edge struct {
	// From and To reference Node IDs. After validation both are
	// guaranteed to resolve to surviving nodes.
	From string
	To   string

	// Label is the matched proximity text, or the relation name derived
	// from layout when Inferred is true
	Label string

	// Inferred is true when no textual label was found and Label was
	// derived from layout heuristics
	Inferred bool
}

// Graph owns the full node and edge sets for one processed image. It is
// created empty by the fusion builder, populated incrementally, passed by
// exclusive ownership through refinement, and becomes immutable once
// serialized.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// State is the graph's refinement state
	State GraphState
}

// NewGraph returns an empty graph in the raw state
func NewGraph() *Graph {
	return &Graph{State: StateRaw}
}

// NodeByID returns a pointer to the node with the given ID, or nil if no
// such node exists.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node with the given ID exists
func (g *Graph) HasNode(id string) bool {
	return g.NodeByID(id) != nil
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	clone := &Graph{State: g.State}
	if g.Nodes != nil {
		clone.Nodes = make([]Node, len(g.Nodes))
		copy(clone.Nodes, g.Nodes)
	}
	if g.Edges != nil {
		clone.Edges = make([]Edge, len(g.Edges))
		copy(clone.Edges, g.Edges)
	}
	return clone
}
