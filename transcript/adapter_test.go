package transcript

import (
	"strings"
	"testing"

	"github.com/tsawler/inkgraph/schema"
)

func TestConvert_Empty(t *testing.T) {
	doc := NewAdapter().Convert(nil, Metadata{SourceFile: "talk.wav"})

	if len(doc.Chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(doc.Chunks))
	}
	if doc.Chunks == nil {
		t.Error("Chunks should be an empty slice, not nil")
	}
	if doc.Metadata.ContentType != schema.ContentTypeTranscript {
		t.Errorf("content type = %q, want %q", doc.Metadata.ContentType, schema.ContentTypeTranscript)
	}
	if doc.Metadata.SourceFile != "talk.wav" {
		t.Errorf("source file = %q, want talk.wav", doc.Metadata.SourceFile)
	}
}

func TestConvert_JoinsContiguousSegments(t *testing.T) {
	segments := []Segment{
		{Text: "We met on Monday.", Start: 0, End: 2},
		{Text: "The launch slipped a week.", Start: 2.2, End: 4.5},
	}

	doc := NewAdapter().Convert(segments, Metadata{})
	if len(doc.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(doc.Chunks))
	}
	want := "We met on Monday. The launch slipped a week."
	if doc.Chunks[0].Content != want {
		t.Errorf("content = %q, want %q", doc.Chunks[0].Content, want)
	}
	if doc.Chunks[0].SourceType != schema.SourceTranscript {
		t.Errorf("source type = %q, want %q", doc.Chunks[0].SourceType, schema.SourceTranscript)
	}
	if doc.Chunks[0].Modality != schema.ModalityText {
		t.Errorf("modality = %q, want %q", doc.Chunks[0].Modality, schema.ModalityText)
	}
}

func TestConvert_SplitsOnLongSilence(t *testing.T) {
	segments := []Segment{
		{Text: "First topic.", Start: 0, End: 2},
		{Text: "Second topic after a pause.", Start: 10, End: 12},
	}

	doc := NewAdapter().Convert(segments, Metadata{})
	if len(doc.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(doc.Chunks))
	}
	if doc.Chunks[0].Content != "First topic." {
		t.Errorf("first chunk = %q", doc.Chunks[0].Content)
	}
	if doc.Chunks[1].Content != "Second topic after a pause." {
		t.Errorf("second chunk = %q", doc.Chunks[1].Content)
	}
}

func TestConvert_ClosesAtSentenceBoundaryPastMax(t *testing.T) {
	adapter := NewAdapterWithConfig(Config{MaxChunkChars: 30})
	segments := []Segment{
		{Text: "This sentence runs past thirty characters. Short tail.", Start: 0, End: 5},
	}

	doc := adapter.Convert(segments, Metadata{})
	if len(doc.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(doc.Chunks))
	}
	if !strings.HasSuffix(doc.Chunks[0].Content, "characters.") {
		t.Errorf("first chunk should end at a sentence boundary, got %q", doc.Chunks[0].Content)
	}
	if doc.Chunks[1].Content != "Short tail." {
		t.Errorf("second chunk = %q, want 'Short tail.'", doc.Chunks[1].Content)
	}
}

func TestConvert_ChunkIDFormat(t *testing.T) {
	doc := NewAdapter().Convert([]Segment{{Text: "Hello there.", Start: 0, End: 1}}, Metadata{})
	if len(doc.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(doc.Chunks))
	}
	id := doc.Chunks[0].ChunkID
	if !strings.HasPrefix(id, schema.SourceTranscript+"_") {
		t.Errorf("chunk id = %q, want prefix %q", id, schema.SourceTranscript+"_")
	}
	if len(id) != len(schema.SourceTranscript)+1+8 {
		t.Errorf("chunk id = %q, want 8 hex chars after prefix", id)
	}
}

func TestSplitIntoSentences_SkipsAbbreviations(t *testing.T) {
	got := splitIntoSentences("Use shapes e.g. boxes. Then connect them.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences %v, want 2", len(got), got)
	}
	if got[0] != "Use shapes e.g. boxes." {
		t.Errorf("first sentence = %q", got[0])
	}
}
