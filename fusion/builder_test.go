package fusion

import (
	"strings"
	"testing"

	"github.com/tsawler/inkgraph/model"
)

func shape(st model.ShapeType, x1, y1, x2, y2 float64) model.Detection {
	return model.Detection{
		Kind:       model.KindShape,
		Shape:      st,
		BBox:       model.NewBBox(x1, y1, x2, y2),
		Confidence: 0.9,
	}
}

func text(s string, x1, y1, x2, y2 float64) model.Detection {
	return model.Detection{
		Kind:       model.KindText,
		Text:       s,
		BBox:       model.NewBBox(x1, y1, x2, y2),
		Confidence: 0.9,
	}
}

func arrow(tailX, tailY, headX, headY float64) model.Detection {
	return model.Detection{
		Kind: model.KindArrow,
		BBox: model.NewBBox(tailX, tailY-5, headX, headY+5),
		Endpoints: [2]model.Point{
			{X: tailX, Y: tailY},
			{X: headX, Y: headY},
		},
		Confidence: 0.9,
	}
}

func TestNewBuilder(t *testing.T) {
	b := NewBuilder()
	if b == nil {
		t.Fatal("NewBuilder() returned nil")
	}
	if b.config.MaxAssocRatio != 0.25 {
		t.Errorf("default MaxAssocRatio = %v, want 0.25", b.config.MaxAssocRatio)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	b := NewBuilder()
	graph, warnings := b.Build(nil)

	if graph == nil {
		t.Fatal("Build(nil) returned nil graph")
	}
	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Errorf("Build(nil) = %d nodes, %d edges, want empty", len(graph.Nodes), len(graph.Edges))
	}
	if graph.State != model.StateRaw {
		t.Errorf("Build(nil) state = %v, want raw", graph.State)
	}
	if len(warnings) != 0 {
		t.Errorf("Build(nil) produced %d warnings, want 0", len(warnings))
	}
}

func TestBuild_TwoShapesOneArrow(t *testing.T) {
	b := NewBuilder()

	graph, warnings := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 100, 50),
		shape(model.ShapeRectangle, 150, 0, 250, 50),
		text("Input", 20, 15, 80, 35),
		text("Process", 170, 15, 230, 35),
		arrow(100, 25, 150, 25),
	})

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", model.FormatWarnings(warnings))
	}
	if len(graph.Nodes) != 2 {
		t.Fatalf("Build() = %d nodes, want 2", len(graph.Nodes))
	}
	if graph.Nodes[0].Label != "Input" {
		t.Errorf("node 1 label = %q, want Input", graph.Nodes[0].Label)
	}
	if graph.Nodes[1].Label != "Process" {
		t.Errorf("node 2 label = %q, want Process", graph.Nodes[1].Label)
	}

	if len(graph.Edges) != 1 {
		t.Fatalf("Build() = %d edges, want 1", len(graph.Edges))
	}
	e := graph.Edges[0]
	if e.From != graph.Nodes[0].ID || e.To != graph.Nodes[1].ID {
		t.Errorf("edge = %s -> %s, want %s -> %s", e.From, e.To, graph.Nodes[0].ID, graph.Nodes[1].ID)
	}
	if e.Label != "" {
		t.Errorf("edge label = %q, want unlabeled", e.Label)
	}
	if e.Inferred {
		t.Error("builder must not mark edges as inferred")
	}
}

func TestBuild_ArrowLabelFromNearbyText(t *testing.T) {
	b := NewBuilder()

	graph, _ := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 100, 50),
		shape(model.ShapeRectangle, 150, 0, 250, 50),
		arrow(100, 25, 150, 25),
		// Centered on the arrow midpoint (125,25), outside both shapes.
		text("starts", 110, 15, 140, 35),
	})

	if len(graph.Edges) != 1 {
		t.Fatalf("Build() = %d edges, want 1", len(graph.Edges))
	}
	if graph.Edges[0].Label != "starts" {
		t.Errorf("edge label = %q, want starts", graph.Edges[0].Label)
	}
	if graph.Edges[0].Inferred {
		t.Error("textual label must not be marked inferred")
	}
}

func TestBuild_TightestContainmentWins(t *testing.T) {
	b := NewBuilder()

	// Inner box nested inside outer box; text sits in both, and must
	// label the smaller one.
	graph, _ := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 400, 400),
		shape(model.ShapeRectangle, 100, 100, 200, 150),
		text("nested", 110, 110, 190, 140),
	})

	if graph.Nodes[0].Label == "nested" {
		t.Error("text labeled the outer shape, want the tightest enclosing shape")
	}
	if graph.Nodes[1].Label != "nested" {
		t.Errorf("inner node label = %q, want nested", graph.Nodes[1].Label)
	}
}

func TestBuild_MultipleTextsJoinInReadingOrder(t *testing.T) {
	b := NewBuilder()

	graph, _ := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 300, 100),
		text("machine", 10, 50, 100, 70),
		text("learning", 110, 50, 200, 70),
		text("supervised", 10, 10, 150, 30),
	})

	if graph.Nodes[0].Label != "supervised machine learning" {
		t.Errorf("label = %q, want 'supervised machine learning'", graph.Nodes[0].Label)
	}
}

func TestBuild_PlaceholderForUnlabeledShapes(t *testing.T) {
	b := NewBuilder()

	graph, _ := b.Build([]model.Detection{
		shape(model.ShapeCircle, 0, 0, 50, 50),
		shape(model.ShapeRectangle, 100, 0, 150, 50),
	})

	for i, n := range graph.Nodes {
		if !strings.HasPrefix(n.Label, "Unlabeled Shape ") {
			t.Errorf("node %d label = %q, want placeholder", i, n.Label)
		}
		if !n.Synthetic {
			t.Errorf("node %d should be marked synthetic", i)
		}
	}
	if graph.Nodes[0].Label == graph.Nodes[1].Label {
		t.Error("placeholder labels must be distinct")
	}
}

func TestBuild_UnattachedArrowDiscarded(t *testing.T) {
	config := DefaultConfig()
	config.MaxAssocDistance = 30
	b := NewBuilderWithConfig(config)

	graph, warnings := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 50, 50),
		shape(model.ShapeRectangle, 60, 0, 110, 50),
		// Arrow far away from both shapes.
		arrow(800, 800, 900, 800),
	})

	if len(graph.Edges) != 0 {
		t.Errorf("Build() = %d edges, want 0 for unattached arrow", len(graph.Edges))
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnUnattachedArrow {
		t.Errorf("warnings = %v, want one unattached_arrow", warnings)
	}
}

func TestBuild_ArrowsWithNoShapesDiscarded(t *testing.T) {
	b := NewBuilder()

	graph, warnings := b.Build([]model.Detection{
		arrow(0, 0, 100, 0),
		arrow(0, 50, 100, 50),
	})

	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Errorf("Build() = %d nodes, %d edges, want empty graph", len(graph.Nodes), len(graph.Edges))
	}
	if len(warnings) != 2 {
		t.Errorf("got %d warnings, want 2 unattached arrows", len(warnings))
	}
}

func TestBuild_MalformedDetectionSkipped(t *testing.T) {
	b := NewBuilder()

	graph, warnings := b.Build([]model.Detection{
		shape(model.ShapeRectangle, 0, 0, 100, 50),
		{Kind: model.KindShape, BBox: model.BBox{X1: 5, Y1: 5, X2: 5, Y2: 5}}, // degenerate
		text("ok", 10, 10, 90, 40),
	})

	if len(graph.Nodes) != 1 {
		t.Errorf("Build() = %d nodes, want 1 (malformed skipped)", len(graph.Nodes))
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnMalformedDetection {
		t.Errorf("warnings = %v, want one malformed_detection", warnings)
	}
}
