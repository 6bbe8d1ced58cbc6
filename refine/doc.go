// Package refine canonicalizes, deduplicates, and validates fused graphs.
//
// The [Refiner] is a state machine over one graph:
//
//	raw -> canonicalized -> deduplicated -> inferred -> validated
//
// Canonicalization computes each node's canonical label (Unicode NFKC,
// lowercased, whitespace collapsed, trailing punctuation stripped, OCR
// corrections applied). Deduplication merges nodes that share a canonical
// label and sit within the merge distance, rewriting edges onto the
// surviving nodes. Inference assigns best-effort relation labels to
// unlabeled edges from relative layout. Validation drops dangling edges
// and disconnected noise nodes, leaving a terminal graph safe to emit.
//
// Refinement is idempotent: refining an already-validated graph yields an
// identical graph. An empty graph refines to an empty, valid graph - an
// all-text note with no diagram is a legitimate input.
package refine
