// Package schema serializes refined graphs and consolidated regions into
// the unified chunk+graph document consumed by the downstream embedding
// and indexing layer.
//
// Emission is pure serialization: no further decision logic. Each region
// becomes one chunk - text regions contribute their content verbatim,
// diagram regions contribute a textual rendering of each graph edge
// ("Input -> Process [starts]") so diagram structure is searchable as
// text. The graph payload mirrors the node and edge model verbatim.
//
// The pipeline's responsibility ends at this structure; embedding,
// storage, and retrieval belong to external collaborators.
package schema
