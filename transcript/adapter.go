package transcript

import (
	"strings"
	"unicode"

	"github.com/tsawler/inkgraph/schema"
)

// Segment is one timed span of recognized speech.
type Segment struct {
	// Text is the recognized speech for this span.
	Text string `json:"text"`

	// Start and End are offsets from the beginning of the recording,
	// in seconds.
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Config holds configuration for transcript chunking.
type Config struct {
	// MaxChunkChars is the soft upper bound on chunk length. A chunk is
	// closed at the first sentence boundary at or past this size.
	MaxChunkChars int

	// MaxGapSeconds closes the current chunk when the silence between
	// two segments exceeds this many seconds, treating the pause as a
	// topic break. 0 disables gap splitting.
	MaxGapSeconds float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxChunkChars: 1000,
		MaxGapSeconds: 3,
	}
}

// Adapter converts recognized speech segments into document chunks.
type Adapter struct {
	config Config
}

// NewAdapter creates an adapter with default configuration.
func NewAdapter() *Adapter {
	return &Adapter{config: DefaultConfig()}
}

// NewAdapterWithConfig creates an adapter with the given configuration.
func NewAdapterWithConfig(config Config) *Adapter {
	return &Adapter{config: config}
}

// Convert regroups the segments into chunks and wraps them in a
// document. Segments are assumed to be in recording order. The graph
// payload is empty; a transcript carries no spatial structure.
func (a *Adapter) Convert(segments []Segment, meta Metadata) *schema.Document {
	doc := &schema.Document{
		Metadata: schema.NewMetadata(meta.SourceFile, schema.ContentTypeTranscript),
		Chunks:   make([]schema.Chunk, 0),
		Graph: schema.GraphPayload{
			Nodes: make([]schema.Node, 0),
			Edges: make([]schema.Edge, 0),
		},
	}

	for _, content := range a.group(segments) {
		doc.Chunks = append(doc.Chunks, schema.Chunk{
			ChunkID:    schema.NewChunkID(schema.SourceTranscript),
			Content:    content,
			SourceType: schema.SourceTranscript,
			Modality:   schema.ModalityText,
		})
	}
	return doc
}

// Metadata identifies the recording a transcript came from.
type Metadata struct {
	SourceFile string
}

// group joins segment text and re-splits it into chunk-sized pieces at
// sentence boundaries, starting a new piece early when a long silence
// separates two segments.
func (a *Adapter) group(segments []Segment) []string {
	var chunks []string
	var current strings.Builder
	lastEnd := 0.0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for i, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if i > 0 && a.config.MaxGapSeconds > 0 && seg.Start-lastEnd > a.config.MaxGapSeconds {
			flush()
		}
		lastEnd = seg.End

		for _, sentence := range splitIntoSentences(text) {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
			if a.config.MaxChunkChars > 0 && current.Len() >= a.config.MaxChunkChars {
				flush()
			}
		}
	}
	flush()

	return chunks
}

// splitIntoSentences splits text at sentence-ending punctuation,
// skipping abbreviations like "e.g." and "Mr.".
func splitIntoSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Skip if the next word starts lowercase (abbreviation like
			// "e.g." or "etc." mid-sentence)
			if next, ok := nextNonSpace(runes, i+1); ok && unicode.IsLower(next) {
				continue
			}

			// Skip if preceded by single capital letter (abbreviation like "Mr.")
			if i > 0 && unicode.IsUpper(runes[i-1]) &&
				(i < 2 || unicode.IsSpace(runes[i-2])) {
				continue
			}

			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}

	remaining := strings.TrimSpace(current.String())
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}

// nextNonSpace returns the first non-space rune at or after position i.
func nextNonSpace(runes []rune, i int) (rune, bool) {
	for ; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return runes[i], true
		}
	}
	return 0, false
}
