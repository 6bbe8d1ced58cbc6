// Package fusion spatially matches text detections to shape and arrow
// detections, producing the initial diagram graph.
//
// Every shape detection becomes a graph node. Text detections are matched
// to the tightest enclosing shape and become node labels; text contained
// by no shape stays with its region for text-chunk emission. Arrow
// detections become directed edges between the nodes nearest their tail
// and head endpoints, and pick up labels from nearby free text.
//
// The builder performs no deduplication or validation; the resulting
// graph is in the raw state and is expected to flow into the refine
// package.
//
//	b := fusion.NewBuilder()
//	graph, warnings := b.Build(detections)
package fusion
