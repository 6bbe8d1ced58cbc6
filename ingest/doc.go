// Package ingest decodes and validates the detection payload produced by
// upstream OCR and vision providers.
//
// Providers hand over loosely-typed JSON; this package is the boundary
// where that becomes the tagged [model.Detection] variant. The kind
// discriminator and bbox invariants are checked per entry: malformed
// entries are skipped with a recorded warning and never abort the batch.
// Only a payload that is not a JSON array at all is a fatal error.
//
//	dets, warnings, err := ingest.Decode(payload)
package ingest
