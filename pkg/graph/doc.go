// Package graph implements the attributed directed graph underlying a
// diagram.
//
// Vertices are keyed by unique string identifiers and created at most
// once: [Graph.GetOrCreateVertex] is idempotent, which is what makes the
// recursive diagram construction in pkg/uml safe against revisits.
// Vertices and edges carry an open attribute map interpreted by the
// rendering backend (see pkg/render), not by this package.
//
// The package also provides connected-component extraction for pulling
// induced subgraphs out of a diagram, and a JSON/BSON serialization form
// ([Diagram]) for storage and transport.
//
// A Graph is not safe for concurrent use without external
// synchronization.
package graph
