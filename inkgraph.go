// Package inkgraph turns raw OCR and computer-vision detections from a
// handwritten page into structured output: reading-order text regions, a
// refined knowledge graph, and a unified document ready for embedding
// and indexing.
//
// The entry point is a fluent Pipeline:
//
//	doc, warnings, err := inkgraph.FromDetections(dets).
//		SourceFile("notes.png").
//		Document()
//
// Each configuration method returns a new Pipeline instance, making it
// safe for concurrent use and allowing method chaining. Malformed
// detections never abort a run; they are skipped and reported through
// the returned warnings.
package inkgraph

import (
	"github.com/tsawler/inkgraph/consolidate"
	"github.com/tsawler/inkgraph/fusion"
	"github.com/tsawler/inkgraph/ingest"
	"github.com/tsawler/inkgraph/model"
	"github.com/tsawler/inkgraph/refine"
	"github.com/tsawler/inkgraph/schema"
)

// Warning is a non-fatal problem encountered during processing.
type Warning = model.Warning

// FormatWarnings returns a human-readable representation of warnings,
// one per line.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// Pipeline provides a fluent interface for processing the detections of
// a single page.
type Pipeline struct {
	// Source
	detections []model.Detection

	// Configuration
	options ProcessOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// FromDetections creates a Pipeline over an already-decoded detection set.
// The slice is not modified.
func FromDetections(detections []model.Detection) *Pipeline {
	return &Pipeline{
		detections: detections,
		options:    defaultOptions(),
	}
}

// FromJSON creates a Pipeline from a JSON detection payload, an array of
// detection objects as produced by the OCR/CV stage. A payload that is
// not a JSON array is a fatal error surfaced by the terminal methods;
// individual malformed entries are skipped with warnings.
func FromJSON(payload []byte) *Pipeline {
	dets, warnings, err := ingest.Decode(payload)
	return &Pipeline{
		detections: dets,
		options:    defaultOptions(),
		err:        err,
		warnings:   warnings,
	}
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		detections: p.detections,
		options:    p.options.clone(),
		err:        p.err,
		warnings:   append([]Warning(nil), p.warnings...),
	}
}

// SourceFile records the originating file name in the emitted document's
// metadata.
func (p *Pipeline) SourceFile(name string) *Pipeline {
	newP := p.clone()
	newP.options.sourceFile = name
	return newP
}

// ContentType overrides the content type recorded in the emitted
// document's metadata. The default is schema.ContentTypeHandwritten.
func (p *Pipeline) ContentType(contentType string) *Pipeline {
	newP := p.clone()
	newP.options.contentType = contentType
	return newP
}

// WithConsolidateConfig replaces the region consolidation configuration.
func (p *Pipeline) WithConsolidateConfig(config consolidate.Config) *Pipeline {
	newP := p.clone()
	newP.options.consolidate = config
	return newP
}

// WithFusionConfig replaces the graph construction configuration.
func (p *Pipeline) WithFusionConfig(config fusion.Config) *Pipeline {
	newP := p.clone()
	newP.options.fusion = config
	return newP
}

// WithRefineConfig replaces the graph refinement configuration.
func (p *Pipeline) WithRefineConfig(config refine.Config) *Pipeline {
	newP := p.clone()
	newP.options.refine = config
	return newP
}

// Corrections adds domain-specific OCR corrections applied during label
// canonicalization. Keys and values are single lowercase words.
func (p *Pipeline) Corrections(corrections map[string]string) *Pipeline {
	newP := p.clone()
	if newP.options.refine.Corrections == nil {
		newP.options.refine.Corrections = make(map[string]string, len(corrections))
	}
	for k, v := range corrections {
		newP.options.refine.Corrections[k] = v
	}
	return newP
}

// valid returns the detections that pass validation, accumulating a
// warning for each one skipped.
func (p *Pipeline) valid() ([]model.Detection, []Warning) {
	warnings := append([]Warning(nil), p.warnings...)
	clean := make([]model.Detection, 0, len(p.detections))
	for i, det := range p.detections {
		if err := det.Validate(); err != nil {
			warnings = append(warnings, model.Warningf(model.WarnMalformedDetection,
				"detection %d skipped: %v", i, err))
			continue
		}
		clean = append(clean, det)
	}
	return clean, warnings
}

// Regions consolidates the text detections into reading-order regions.
func (p *Pipeline) Regions() ([]model.Region, []Warning, error) {
	if p.err != nil {
		return nil, p.warnings, p.err
	}
	clean, warnings := p.valid()
	regions := consolidate.NewConsolidatorWithConfig(p.options.consolidate).Consolidate(clean)
	return regions, warnings, nil
}

// Graph builds and refines the knowledge graph from the shape, arrow,
// and text detections. The returned graph is in the validated state.
func (p *Pipeline) Graph() (*model.Graph, []Warning, error) {
	if p.err != nil {
		return nil, p.warnings, p.err
	}
	clean, warnings := p.valid()
	raw, buildWarnings := fusion.NewBuilderWithConfig(p.options.fusion).Build(clean)
	warnings = append(warnings, buildWarnings...)
	refined := refine.NewRefinerWithConfig(p.options.refine).Refine(raw)
	return refined, warnings, nil
}

// Document runs the full pipeline and emits the unified document:
// consolidated text regions as chunks, a rendered diagram chunk, and the
// refined graph, under metadata describing the source.
func (p *Pipeline) Document() (*schema.Document, []Warning, error) {
	if p.err != nil {
		return nil, p.warnings, p.err
	}
	clean, warnings := p.valid()
	regions := consolidate.NewConsolidatorWithConfig(p.options.consolidate).Consolidate(clean)
	raw, buildWarnings := fusion.NewBuilderWithConfig(p.options.fusion).Build(clean)
	warnings = append(warnings, buildWarnings...)
	refined := refine.NewRefinerWithConfig(p.options.refine).Refine(raw)

	meta := schema.NewMetadata(p.options.sourceFile, p.options.contentType)
	doc := schema.NewEmitter().Emit(refined, regions, meta)
	return doc, warnings, nil
}

// MustDocument is like Document but panics on error. Warnings are
// discarded. Intended for tests and examples.
func (p *Pipeline) MustDocument() *schema.Document {
	doc, _, err := p.Document()
	if err != nil {
		panic(err)
	}
	return doc
}
