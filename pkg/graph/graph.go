package graph

import (
	"errors"
	"maps"
)

var (
	// ErrUnknownSourceVertex is returned by [Graph.AddEdge] when the From
	// vertex does not exist in the graph.
	ErrUnknownSourceVertex = errors.New("unknown source vertex")

	// ErrUnknownTargetVertex is returned by [Graph.AddEdge] when the To
	// vertex does not exist in the graph.
	ErrUnknownTargetVertex = errors.New("unknown target vertex")
)

// Attributes stores layout attribute key-value pairs attached to a
// vertex, an edge, or the graph itself. The values are interpreted by
// the rendering backend; this package only carries them.
type Attributes map[string]any

// Vertex is a graph vertex with a unique key and an attribute map.
// Vertices are created through [Graph.GetOrCreateVertex]; the attribute
// map is never nil.
type Vertex struct {
	Key   string
	Attrs Attributes
}

// SetAttribute sets one layout attribute on the vertex.
func (v *Vertex) SetAttribute(key string, value any) {
	v.Attrs[key] = value
}

// Edge is a directed connection between two vertices, identified by
// their keys, with its own attribute map.
type Edge struct {
	From  string
	To    string
	Attrs Attributes
}

// SetAttribute sets one layout attribute on the edge.
func (e *Edge) SetAttribute(key string, value any) {
	e.Attrs[key] = value
}

// Graph is a directed graph with attributed vertices and edges.
// Vertices are keyed by unique strings; creation is at-most-once per
// key. Iteration order of [Graph.Vertices] and [Graph.Edges] is
// insertion order, so repeated builds over the same input produce
// identical output.
//
// The zero value is not usable - use New.
type Graph struct {
	vertices map[string]*Vertex
	order    []string
	edges    []*Edge
	meta     Attributes
}

// New creates an empty graph with optional graph-level attributes.
func New(meta Attributes) *Graph {
	if meta == nil {
		meta = Attributes{}
	}
	return &Graph{
		vertices: make(map[string]*Vertex),
		meta:     meta,
	}
}

// Meta returns the graph-level attribute map. It is never nil.
func (g *Graph) Meta() Attributes { return g.meta }

// GetOrCreateVertex returns the vertex with the given key, creating it
// if it does not exist yet. The call is idempotent: repeated requests
// for the same key return the same vertex, never a duplicate.
func (g *Graph) GetOrCreateVertex(key string) *Vertex {
	if v, ok := g.vertices[key]; ok {
		return v
	}
	v := &Vertex{Key: key, Attrs: Attributes{}}
	g.vertices[key] = v
	g.order = append(g.order, key)
	return v
}

// Vertex returns the vertex with the given key, if present.
func (g *Graph) Vertex(key string) (*Vertex, bool) {
	v, ok := g.vertices[key]
	return v, ok
}

// HasVertex reports whether a vertex with the given key exists.
func (g *Graph) HasVertex(key string) bool {
	_, ok := g.vertices[key]
	return ok
}

// AddEdge adds a directed edge between two existing vertices and returns
// it. Returns ErrUnknownSourceVertex or ErrUnknownTargetVertex when an
// endpoint is missing. Multiple edges between the same pair are allowed.
func (g *Graph) AddEdge(from, to string) (*Edge, error) {
	if _, ok := g.vertices[from]; !ok {
		return nil, ErrUnknownSourceVertex
	}
	if _, ok := g.vertices[to]; !ok {
		return nil, ErrUnknownTargetVertex
	}
	e := &Edge{From: from, To: to, Attrs: Attributes{}}
	g.edges = append(g.edges, e)
	return e, nil
}

// HasEdge reports whether at least one edge from one key to another
// exists.
func (g *Graph) HasEdge(from, to string) bool {
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.order))
	for i, key := range g.order {
		out[i] = g.vertices[key]
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Clone returns a deep copy of the graph. Attribute values are copied
// shallowly; the maps themselves are fresh.
func (g *Graph) Clone() *Graph {
	out := New(maps.Clone(g.meta))
	for _, key := range g.order {
		v := out.GetOrCreateVertex(key)
		v.Attrs = maps.Clone(g.vertices[key].Attrs)
	}
	for _, e := range g.edges {
		ne, _ := out.AddEdge(e.From, e.To)
		ne.Attrs = maps.Clone(e.Attrs)
	}
	return out
}
