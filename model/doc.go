// Package model provides the intermediate representation (IR) for fused
// note content.
//
// This package defines the data structures shared by every pipeline stage:
// raw detections from upstream OCR/vision providers, consolidated regions,
// and the diagram graph that fusion and refinement produce. All pipeline
// operations consume and return these types, making them the primary API
// for working with processed notes.
//
// # Coordinate Space
//
// All geometry lives in image pixel space with the origin at the top-left
// corner: X grows rightward, Y grows downward. A [BBox] is stored in corner
// form (X1,Y1,X2,Y2) and is valid only when X1 < X2 and Y1 < Y2.
//
// # Detections
//
// A [Detection] is one raw unit from an upstream provider: a box of OCR
// text, a detected shape outline, or an arrow. The Kind discriminator tags
// the variant; arrow detections additionally carry two ordered endpoints
// (tail first, head second).
//
// # Regions and Graphs
//
// A [Region] groups detections into one semantic unit (paragraph, title,
// bullet list, or diagram). A [Graph] holds the labeled [Node] and [Edge]
// sets built from one image's diagram content; its State field tracks
// progress through refinement, ending at [StateValidated].
//
// # Geometry
//
// Geometric primitives support the spatial reasoning the pipeline depends
// on:
//
//   - [BBox] - intersection, union, overlap ratio, containment with tolerance
//   - [Point] - 2D point with distance calculation
//   - [RelativePosition] - coarse directional classification between boxes
package model
