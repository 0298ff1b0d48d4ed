package render

import (
	"strings"
	"testing"

	"github.com/storeman/graph-uml/pkg/graph"
)

func TestToDOTStructure(t *testing.T) {
	g := graph.New(nil)
	v := g.GetOrCreateVertex("Account")
	v.SetAttribute("shape", "record")
	v.SetAttribute("label", `"{Account\l||}"`)
	g.GetOrCreateVertex("Base")
	e, _ := g.AddEdge("Account", "Base")
	e.SetAttribute("arrowhead", "empty")

	dot := ToDOT(g)

	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("missing digraph frame:\n%s", dot)
	}
	if !strings.Contains(dot, `bgcolor="transparent";`) {
		t.Error("missing transparent background")
	}
	// Attributes in sorted key order, pre-quoted label passed through raw.
	if !strings.Contains(dot, `"Account" [label="{Account\l||}", shape="record"];`) {
		t.Errorf("vertex line wrong:\n%s", dot)
	}
	if !strings.Contains(dot, `"Account" -> "Base" [arrowhead="empty"];`) {
		t.Errorf("edge line wrong:\n%s", dot)
	}
}

func TestToDOTBareEdge(t *testing.T) {
	g := graph.New(nil)
	g.GetOrCreateVertex("A")
	g.GetOrCreateVertex("B")
	g.AddEdge("A", "B")

	if !strings.Contains(ToDOT(g), `"A" -> "B";`) {
		t.Error("attribute-free edge should omit the bracket list")
	}
}

func TestToDOTIsDeterministic(t *testing.T) {
	g := graph.New(nil)
	for _, k := range []string{"C", "A", "B"} {
		g.GetOrCreateVertex(k).SetAttribute("shape", "record")
	}
	g.AddEdge("C", "A")
	g.AddEdge("B", "A")

	first := ToDOT(g)
	for i := 0; i < 10; i++ {
		if ToDOT(g) != first {
			t.Fatal("output changed between runs")
		}
	}

	// Insertion order, not lexical order.
	if strings.Index(first, `"C"`) > strings.Index(first, `"A" [`) {
		t.Error("vertices should appear in insertion order")
	}
}

func TestFmtAttrValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string quoted", "record", `"record"`},
		{"pre-quoted passes through", `"{X\l||}"`, `"{X\l||}"`},
		{"lone quote still quoted", `"`, `"\""`},
		{"bool bare", true, "true"},
		{"int bare", 12, "12"},
		{"float bare", 1.5, "1.5"},
		{"fallback quoted", []int{1}, `"[1]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtAttrValue(tt.in); got != tt.want {
				t.Errorf("fmtAttrValue(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
