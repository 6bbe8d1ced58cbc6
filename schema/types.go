package schema

import (
	"encoding/json"
	"time"
)

// Modality values for chunks.
const (
	ModalityText   = "text"
	ModalityVisual = "visual"
)

// Source types for chunks.
const (
	SourceText       = "text"
	SourceDiagram    = "diagram"
	SourceTranscript = "transcript"
	SourceWebDoc     = "web"
)

// Content types recorded in document metadata.
const (
	ContentTypeHandwritten = "handwritten_notes"
	ContentTypeTranscript  = "audio_transcript"
	ContentTypeWebDoc      = "web_document"
)

// Metadata describes the provenance of one emitted document
type Metadata struct {
	SourceFile  string `json:"source_file"`
	Timestamp   string `json:"timestamp"`
	ContentType string `json:"content_type"`
}

// NewMetadata builds metadata for a source file, stamped with the current
// UTC time in RFC 3339 format.
func NewMetadata(sourceFile, contentType string) Metadata {
	return Metadata{
		SourceFile:  sourceFile,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ContentType: contentType,
	}
}

// Chunk is one unit of searchable content
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	Content    string `json:"content"`
	SourceType string `json:"source_type"`
	Modality   string `json:"modality"`
}

// Node mirrors a graph node on the wire
type Node struct {
	ID            string     `json:"id"`
	Label         string     `json:"label"`
	CanonicalName string     `json:"canonical_name"`
	BBox          [4]float64 `json:"bbox"`
	Type          string     `json:"type"`
}

// Edge mirrors a graph edge on the wire
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Label    string `json:"label"`
	Inferred bool   `json:"inferred"`
}

// GraphPayload carries the node and edge sets on the wire
type GraphPayload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Document is the unified output handed to the embedding/indexing layer
type Document struct {
	Metadata Metadata     `json:"metadata"`
	Chunks   []Chunk      `json:"chunks"`
	Graph    GraphPayload `json:"graph"`
}

// ToJSON serializes the document to compact JSON
func (d *Document) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// ToJSONIndent serializes the document to indented JSON
func (d *Document) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
