package inkgraph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tsawler/inkgraph/model"
	"github.com/tsawler/inkgraph/refine"
	"github.com/tsawler/inkgraph/schema"
)

func rect(x1, y1, x2, y2 float64) model.Detection {
	return model.Detection{
		Kind:       model.KindShape,
		Shape:      model.ShapeRectangle,
		BBox:       model.BBox{X1: x1, Y1: y1, X2: x2, Y2: y2},
		Confidence: 0.9,
	}
}

func textDet(s string, x1, y1, x2, y2 float64) model.Detection {
	return model.Detection{
		Kind:       model.KindText,
		Text:       s,
		BBox:       model.BBox{X1: x1, Y1: y1, X2: x2, Y2: y2},
		Confidence: 0.9,
	}
}

func arrowDet(tail, head model.Point) model.Detection {
	return model.Detection{
		Kind: model.KindArrow,
		BBox: model.BBox{
			X1: min(tail.X, head.X), Y1: min(tail.Y, head.Y) - 1,
			X2: max(tail.X, head.X), Y2: max(tail.Y, head.Y) + 1,
		},
		Endpoints:  [2]model.Point{tail, head},
		Confidence: 0.9,
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func TestPipeline_Document_TwoShapesOneArrow(t *testing.T) {
	dets := []model.Detection{
		rect(0, 0, 100, 50),
		rect(150, 0, 250, 50),
		arrowDet(model.Point{X: 100, Y: 25}, model.Point{X: 150, Y: 25}),
	}

	doc, warnings, err := FromDetections(dets).SourceFile("notes.png").Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Document() warnings = %v, want none", warnings)
	}

	if len(doc.Graph.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(doc.Graph.Nodes))
	}
	if len(doc.Graph.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(doc.Graph.Edges))
	}

	edge := doc.Graph.Edges[0]
	if edge.From != "node_1" || edge.To != "node_2" {
		t.Errorf("edge = %s -> %s, want node_1 -> node_2", edge.From, edge.To)
	}
	if edge.Label != refine.RelationLeadsTo {
		t.Errorf("edge label = %q, want %q", edge.Label, refine.RelationLeadsTo)
	}
	if !edge.Inferred {
		t.Error("layout-derived edge label should be marked inferred")
	}

	// One visual chunk rendering the diagram.
	var diagram *schema.Chunk
	for i := range doc.Chunks {
		if doc.Chunks[i].SourceType == schema.SourceDiagram {
			diagram = &doc.Chunks[i]
		}
	}
	if diagram == nil {
		t.Fatal("no diagram chunk emitted")
	}
	if !strings.Contains(diagram.Content, "->") {
		t.Errorf("diagram chunk content = %q, want rendered edge", diagram.Content)
	}
}

func TestPipeline_Document_LabeledArrow(t *testing.T) {
	dets := []model.Detection{
		rect(0, 0, 100, 50),
		textDet("Input", 10, 10, 90, 40),
		rect(150, 0, 250, 50),
		textDet("Output", 160, 10, 240, 40),
		textDet("starts", 110, 0, 140, 10),
		arrowDet(model.Point{X: 100, Y: 25}, model.Point{X: 150, Y: 25}),
	}

	doc, _, err := FromDetections(dets).Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if len(doc.Graph.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(doc.Graph.Edges))
	}
	edge := doc.Graph.Edges[0]
	if edge.Label != "starts" {
		t.Errorf("edge label = %q, want %q", edge.Label, "starts")
	}
	if edge.Inferred {
		t.Error("textual edge label should not be marked inferred")
	}

	labels := map[string]bool{}
	for _, n := range doc.Graph.Nodes {
		labels[n.Label] = true
	}
	if !labels["Input"] || !labels["Output"] {
		t.Errorf("node labels = %v, want Input and Output", labels)
	}
}

func TestPipeline_Regions(t *testing.T) {
	dets := []model.Detection{
		textDet("first line", 0, 0, 100, 10),
		textDet("second line", 0, 15, 100, 25),
		textDet("far below", 0, 200, 100, 210),
	}

	regions, warnings, err := FromDetections(dets).Regions()
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Regions() warnings = %v, want none", warnings)
	}
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].Content != "first line second line" {
		t.Errorf("region content = %q", regions[0].Content)
	}
}

func TestPipeline_FromJSON(t *testing.T) {
	payload := []byte(`[
		{"text": "hello", "bbox": [0, 0, 50, 10], "confidence": 0.9, "kind": "text"},
		{"text": "bad", "bbox": [0, 0], "confidence": 0.9, "kind": "text"},
		{"bbox": [0, 20, 80, 60], "confidence": 0.8, "kind": "shape", "shapeType": "rectangle"}
	]`)

	regions, warnings, err := FromJSON(payload).Regions()
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0].Code != model.WarnMalformedDetection {
		t.Errorf("warning code = %q, want %q", warnings[0].Code, model.WarnMalformedDetection)
	}
	textRegions := 0
	for _, r := range regions {
		if r.IsText() {
			textRegions++
		}
	}
	if textRegions != 1 {
		t.Errorf("got %d text regions, want 1", textRegions)
	}
}

func TestPipeline_FromJSON_FatalOnNonArray(t *testing.T) {
	_, _, err := FromJSON([]byte(`{"not": "an array"}`)).Document()
	if err == nil {
		t.Fatal("expected error for non-array payload")
	}
}

func TestPipeline_Corrections(t *testing.T) {
	dets := []model.Detection{
		rect(0, 0, 100, 50),
		textDet("Databse", 10, 10, 90, 40),
	}

	g, _, err := FromDetections(dets).
		Corrections(map[string]string{"databse": "database"}).
		Graph()
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
	if g.Nodes[0].CanonicalLabel != "database" {
		t.Errorf("canonical label = %q, want %q", g.Nodes[0].CanonicalLabel, "database")
	}
}

func TestPipeline_Immutability(t *testing.T) {
	base := FromDetections(nil)
	configured := base.SourceFile("a.png").ContentType(schema.ContentTypeWebDoc)

	if base.options.sourceFile != "" {
		t.Error("SourceFile() modified the original pipeline")
	}
	if base.options.contentType != schema.ContentTypeHandwritten {
		t.Error("ContentType() modified the original pipeline")
	}
	if configured.options.sourceFile != "a.png" {
		t.Errorf("sourceFile = %q, want %q", configured.options.sourceFile, "a.png")
	}
}

func TestPipeline_Document_Metadata(t *testing.T) {
	doc, _, err := FromDetections(nil).SourceFile("page.jpg").Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Metadata.SourceFile != "page.jpg" {
		t.Errorf("source file = %q, want %q", doc.Metadata.SourceFile, "page.jpg")
	}
	if doc.Metadata.ContentType != schema.ContentTypeHandwritten {
		t.Errorf("content type = %q, want %q", doc.Metadata.ContentType, schema.ContentTypeHandwritten)
	}
	if doc.Metadata.Timestamp == "" {
		t.Error("timestamp is empty")
	}

	// Empty collections serialize as [] rather than null.
	data, err := doc.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if string(raw["chunks"]) != "[]" {
		t.Errorf("chunks = %s, want []", raw["chunks"])
	}
}
