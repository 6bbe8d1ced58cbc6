// Package consolidate reduces fragmented line-level detections into
// coherent semantic regions.
//
// Upstream OCR emits one detection per text line (or word group), so a
// handwritten paragraph arrives as many small boxes. The [Consolidator]
// sweeps text detections in reading order and merges vertically adjacent,
// horizontally aligned lines into paragraph regions, then classifies each
// region as a title, bullet list, or plain paragraph. All shape and arrow
// detections are bucketed into a single diagram region per image, since
// diagrams are not line-fragmented the way text is.
//
// Thresholds are configurable via [Config]; the gap threshold defaults to
// a multiple of the median detected line height so the sweep adapts to
// the handwriting scale of each image.
//
//	c := consolidate.NewConsolidator()
//	regions := c.Consolidate(detections)
package consolidate
