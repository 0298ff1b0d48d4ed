package graph

import (
	"path/filepath"
	"testing"
)

func serializationFixture() *Graph {
	g := New(nil)
	g.GetOrCreateVertex("B").SetAttribute("shape", "record")
	g.GetOrCreateVertex("A").SetAttribute("label", `"{A\l||}"`)
	e, _ := g.AddEdge("B", "A")
	e.SetAttribute("arrowhead", "empty")
	return g
}

func TestFromGraphSortsVertices(t *testing.T) {
	d := FromGraph(serializationFixture())

	if len(d.Vertices) != 2 || len(d.Edges) != 1 {
		t.Fatalf("diagram size %d/%d", len(d.Vertices), len(d.Edges))
	}
	if d.Vertices[0].Key != "A" || d.Vertices[1].Key != "B" {
		t.Errorf("vertices not sorted: %s, %s", d.Vertices[0].Key, d.Vertices[1].Key)
	}
}

func TestRoundTrip(t *testing.T) {
	g := serializationFixture()

	data, err := MarshalDiagram(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	d, err := UnmarshalDiagram(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back, err := ToGraph(d)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if back.VertexCount() != 2 || back.EdgeCount() != 1 {
		t.Fatalf("restored size %d/%d", back.VertexCount(), back.EdgeCount())
	}
	v, _ := back.Vertex("A")
	if v.Attrs["label"] != `"{A\l||}"` {
		t.Errorf("label lost in round trip: %v", v.Attrs["label"])
	}
	if !back.HasEdge("B", "A") {
		t.Error("edge lost in round trip")
	}
}

func TestToGraphRejectsDanglingEdge(t *testing.T) {
	d := Diagram{
		Vertices: []VertexRecord{{Key: "A"}},
		Edges:    []EdgeRecord{{From: "A", To: "missing"}},
	}
	if _, err := ToGraph(d); err == nil {
		t.Error("dangling edge should fail")
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := serializationFixture()
	path := filepath.Join(t.TempDir(), "diagram.json")

	if err := WriteDiagramFile(g, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadDiagramFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.VertexCount() != 2 || back.EdgeCount() != 1 {
		t.Errorf("restored size %d/%d", back.VertexCount(), back.EdgeCount())
	}
}
