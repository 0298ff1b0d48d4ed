package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// Diagram is the canonical serialization format for attributed graphs.
// Used for API responses, storage, and caching.
//
// The format is designed for round-trip fidelity: build → export →
// re-import produces an equivalent graph. Vertices are sorted by key on
// the way out for deterministic output.
type Diagram struct {
	Vertices []VertexRecord `json:"vertices" bson:"vertices"`
	Edges    []EdgeRecord   `json:"edges" bson:"edges"`
}

// VertexRecord is the serialized form of one vertex.
type VertexRecord struct {
	Key   string         `json:"key" bson:"key"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// EdgeRecord is the serialized form of one edge.
type EdgeRecord struct {
	From  string         `json:"from" bson:"from"`
	To    string         `json:"to" bson:"to"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// FromGraph converts a graph to its serialization format.
// Vertices are sorted by key for deterministic output.
func FromGraph(g *Graph) Diagram {
	keys := slices.Clone(g.order)
	slices.Sort(keys)

	out := Diagram{
		Vertices: make([]VertexRecord, len(keys)),
		Edges:    make([]EdgeRecord, len(g.edges)),
	}
	for i, key := range keys {
		v := g.vertices[key]
		out.Vertices[i] = VertexRecord{Key: v.Key, Attrs: cleanAttrs(v.Attrs)}
	}
	for i, e := range g.edges {
		out.Edges[i] = EdgeRecord{From: e.From, To: e.To, Attrs: cleanAttrs(e.Attrs)}
	}
	return out
}

// ToGraph converts a serialized diagram back to a graph.
// Returns an error when an edge references a missing vertex.
func ToGraph(d Diagram) (*Graph, error) {
	g := New(nil)
	for _, vr := range d.Vertices {
		v := g.GetOrCreateVertex(vr.Key)
		maps.Copy(v.Attrs, vr.Attrs)
	}
	for _, er := range d.Edges {
		e, err := g.AddEdge(er.From, er.To)
		if err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", er.From, er.To, err)
		}
		maps.Copy(e.Attrs, er.Attrs)
	}
	return g, nil
}

// cleanAttrs copies an attribute map, returning nil when empty so the
// serialized form omits it.
func cleanAttrs(a Attributes) map[string]any {
	if len(a) == 0 {
		return nil
	}
	return maps.Clone(a)
}

// MarshalDiagram converts a graph to indented JSON bytes.
func MarshalDiagram(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDiagram(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDiagram deserializes JSON bytes to a Diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

// WriteDiagram writes a graph as JSON to an io.Writer.
func WriteDiagram(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDiagramFile writes a graph to a JSON file with 0644 permissions.
func WriteDiagramFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDiagram(g, f)
}

// ReadDiagram decodes a JSON diagram from an io.Reader into a graph.
func ReadDiagram(r io.Reader) (*Graph, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(d)
}

// ReadDiagramFile reads a JSON file and returns the decoded graph.
func ReadDiagramFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDiagram(f)
}
