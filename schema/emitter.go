package schema

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/inkgraph/model"
)

// Emitter converts a refined graph and region list into the unified
// document. It holds no state between calls.
type Emitter struct{}

// NewEmitter creates an emitter
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit serializes a graph and its regions under the given metadata. The
// graph is expected to be validated; Emit performs no refinement of its
// own. A nil graph or empty region list is fine and yields empty (but
// present) chunk and graph arrays.
//
// A region whose rendered content is empty, such as a diagram region
// over an edge-less graph, produces no chunk: an empty string carries
// nothing worth embedding, and the nodes still appear in the graph
// payload.
func (e *Emitter) Emit(graph *model.Graph, regions []model.Region, meta Metadata) *Document {
	doc := &Document{
		Metadata: meta,
		Chunks:   make([]Chunk, 0, len(regions)),
		Graph: GraphPayload{
			Nodes: make([]Node, 0),
			Edges: make([]Edge, 0),
		},
	}

	if graph == nil {
		graph = model.NewGraph()
	}

	for _, region := range regions {
		content := region.Content
		sourceType := SourceText
		modality := ModalityText

		if region.Type == model.RegionDiagram {
			sourceType = SourceDiagram
			modality = ModalityVisual
			content = renderEdges(graph)
		}

		if content == "" {
			continue
		}

		doc.Chunks = append(doc.Chunks, Chunk{
			ChunkID:    NewChunkID(sourceType),
			Content:    content,
			SourceType: sourceType,
			Modality:   modality,
		})
	}

	for _, n := range graph.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, Node{
			ID:            n.ID,
			Label:         n.Label,
			CanonicalName: n.CanonicalLabel,
			BBox:          [4]float64{n.BBox.X1, n.BBox.Y1, n.BBox.X2, n.BBox.Y2},
			Type:          n.Shape.String(),
		})
	}
	for _, ed := range graph.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, Edge{
			From:     ed.From,
			To:       ed.To,
			Label:    ed.Label,
			Inferred: ed.Inferred,
		})
	}

	return doc
}

// renderEdges produces the searchable text form of a diagram: one line
// per edge, "From -> To [label]", using display labels.
func renderEdges(graph *model.Graph) string {
	lines := make([]string, 0, len(graph.Edges))
	for _, e := range graph.Edges {
		from, to := e.From, e.To
		if n := graph.NodeByID(e.From); n != nil {
			from = n.Label
		}
		if n := graph.NodeByID(e.To); n != nil {
			to = n.Label
		}
		if e.Label != "" {
			lines = append(lines, fmt.Sprintf("%s -> %s [%s]", from, to, e.Label))
		} else {
			lines = append(lines, fmt.Sprintf("%s -> %s", from, to))
		}
	}
	return strings.Join(lines, "\n")
}

// NewChunkID builds a chunk id of the form "<sourceType>_<8 hex chars>"
func NewChunkID(sourceType string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", sourceType, hex[:8])
}
