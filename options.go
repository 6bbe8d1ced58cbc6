package inkgraph

import (
	"github.com/tsawler/inkgraph/consolidate"
	"github.com/tsawler/inkgraph/fusion"
	"github.com/tsawler/inkgraph/refine"
	"github.com/tsawler/inkgraph/schema"
)

// ProcessOptions holds configuration for the processing pipeline.
type ProcessOptions struct {
	// Provenance recorded in the emitted document
	sourceFile  string
	contentType string

	// Stage configuration
	consolidate consolidate.Config
	fusion      fusion.Config
	refine      refine.Config
}

// defaultOptions returns the default processing options.
func defaultOptions() ProcessOptions {
	return ProcessOptions{
		sourceFile:  "",
		contentType: schema.ContentTypeHandwritten,
		consolidate: consolidate.DefaultConfig(),
		fusion:      fusion.DefaultConfig(),
		refine:      refine.DefaultConfig(),
	}
}

// clone creates a deep copy of ProcessOptions.
func (o ProcessOptions) clone() ProcessOptions {
	newOpts := ProcessOptions{
		sourceFile:  o.sourceFile,
		contentType: o.contentType,
		consolidate: o.consolidate,
		fusion:      o.fusion,
		refine:      o.refine,
	}

	// Deep copy the corrections map
	if o.refine.Corrections != nil {
		newOpts.refine.Corrections = make(map[string]string, len(o.refine.Corrections))
		for k, v := range o.refine.Corrections {
			newOpts.refine.Corrections[k] = v
		}
	}

	return newOpts
}
