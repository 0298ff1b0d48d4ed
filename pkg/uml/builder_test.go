package uml

import (
	"strings"
	"testing"

	"github.com/storeman/graph-uml/pkg/errors"
)

// fakeProvider serves descriptors from in-memory maps.
type fakeProvider struct {
	types      map[string]*TypeDescriptor
	extensions map[string]*ExtensionDescriptor
}

func (p *fakeProvider) TypeByName(name string) (*TypeDescriptor, error) {
	if t, ok := p.types[name]; ok {
		return t, nil
	}
	return nil, errors.New(errors.ErrCodeTypeNotFound, "type %q not found", name)
}

func (p *fakeProvider) ExtensionByName(name string) (*ExtensionDescriptor, error) {
	if e, ok := p.extensions[name]; ok {
		return e, nil
	}
	return nil, errors.New(errors.ErrCodeExtensionNotFound, "extension %q not found", name)
}

func classTypes(types ...*TypeDescriptor) *fakeProvider {
	p := &fakeProvider{types: make(map[string]*TypeDescriptor)}
	for _, t := range types {
		p.types[t.Name] = t
	}
	return p
}

func TestAddTypeIsIdempotent(t *testing.T) {
	p := classTypes(&TypeDescriptor{Name: "Foo", Kind: KindClass})
	b := NewDiagramBuilder(p, Options{AddParents: true})

	v1, err := b.AddTypeByName("Foo")
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	v2, err := b.AddTypeByName("Foo")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if v1 != v2 {
		t.Error("repeated add should return the same vertex")
	}
	if got := b.Graph().VertexCount(); got != 1 {
		t.Errorf("VertexCount = %d, want 1", got)
	}
	if got := b.Graph().EdgeCount(); got != 0 {
		t.Errorf("EdgeCount = %d, want 0", got)
	}
}

func TestAddTypeUnknownName(t *testing.T) {
	b := NewDiagramBuilder(classTypes(), Options{AddParents: true})

	if _, err := b.AddTypeByName("Nope"); !errors.Is(err, errors.ErrCodeTypeNotFound) {
		t.Errorf("err = %v, want TYPE_NOT_FOUND", err)
	}
	if got := b.Graph().VertexCount(); got != 0 {
		t.Errorf("failed add should not create vertices, got %d", got)
	}
}

func TestParentChainMaterialized(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "Child", Kind: KindClass, Parent: "Base"},
		&TypeDescriptor{Name: "Base", Kind: KindAbstractClass, Parent: "Root"},
		&TypeDescriptor{Name: "Root", Kind: KindClass},
	)
	b := NewDiagramBuilder(p, Options{AddParents: true})

	if _, err := b.AddTypeByName("Child"); err != nil {
		t.Fatalf("add: %v", err)
	}

	g := b.Graph()
	for _, name := range []string{"Child", "Base", "Root"} {
		if !g.HasVertex(name) {
			t.Errorf("missing vertex %q", name)
		}
	}
	if !g.HasEdge("Child", "Base") || !g.HasEdge("Base", "Root") {
		t.Error("missing inheritance edges")
	}

	for _, e := range g.Edges() {
		if e.Attrs["arrowhead"] != "empty" {
			t.Errorf("edge %s->%s arrowhead = %v, want empty", e.From, e.To, e.Attrs["arrowhead"])
		}
		if _, dashed := e.Attrs["style"]; dashed {
			t.Errorf("inheritance edge %s->%s should be solid", e.From, e.To)
		}
	}
}

func TestParentsSkippedWhenDisabled(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "Child", Kind: KindClass, Parent: "Base"},
		&TypeDescriptor{Name: "Base", Kind: KindClass},
	)
	b := NewDiagramBuilder(p, Options{})

	if _, err := b.AddTypeByName("Child"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.HasType("Base") {
		t.Error("parent should not be materialized with parents disabled")
	}
	if got := b.Graph().EdgeCount(); got != 0 {
		t.Errorf("EdgeCount = %d, want 0", got)
	}
}

func TestRealizationEdgesDeduplicated(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "T", Kind: KindClass, Interfaces: []string{"I", "J"}},
		&TypeDescriptor{Name: "I", Kind: KindInterface},
		&TypeDescriptor{Name: "J", Kind: KindInterface, Interfaces: []string{"I"}},
	)
	b := NewDiagramBuilder(p, Options{AddParents: true})

	if _, err := b.AddTypeByName("T"); err != nil {
		t.Fatalf("add: %v", err)
	}

	g := b.Graph()
	if g.HasEdge("T", "I") {
		t.Error("edge T->I should be pruned; J already implies I")
	}
	if !g.HasEdge("T", "J") || !g.HasEdge("J", "I") {
		t.Error("expected edges T->J and J->I")
	}

	for _, e := range g.Edges() {
		if e.Attrs["style"] != "dashed" || e.Attrs["arrowhead"] != "empty" {
			t.Errorf("realization edge %s->%s attrs = %v", e.From, e.To, e.Attrs)
		}
	}
}

func TestParentInterfaceSetPruned(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "T", Kind: KindClass, Parent: "P", Interfaces: []string{"I"}},
		&TypeDescriptor{Name: "P", Kind: KindClass, Interfaces: []string{"I"}},
		&TypeDescriptor{Name: "I", Kind: KindInterface},
	)
	b := NewDiagramBuilder(p, Options{AddParents: true})

	if _, err := b.AddTypeByName("T"); err != nil {
		t.Fatalf("add: %v", err)
	}

	g := b.Graph()
	if g.HasEdge("T", "I") {
		t.Error("edge T->I should be pruned; inheritance edge to P implies it")
	}
	if !g.HasEdge("T", "P") || !g.HasEdge("P", "I") {
		t.Error("expected edges T->P and P->I")
	}
}

func TestDiamondHierarchyTerminates(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "D", Kind: KindClass, Interfaces: []string{"B", "C"}},
		&TypeDescriptor{Name: "B", Kind: KindInterface, Interfaces: []string{"A"}},
		&TypeDescriptor{Name: "C", Kind: KindInterface, Interfaces: []string{"A"}},
		&TypeDescriptor{Name: "A", Kind: KindInterface},
	)
	b := NewDiagramBuilder(p, Options{AddParents: true})

	if _, err := b.AddTypeByName("D"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := b.Graph().VertexCount(); got != 4 {
		t.Errorf("VertexCount = %d, want 4", got)
	}
}

func TestVertexLabelAttributes(t *testing.T) {
	p := classTypes(&TypeDescriptor{Name: "Foo", Kind: KindInterface})
	b := NewDiagramBuilder(p, Options{})

	v, err := b.AddTypeByName("Foo")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if v.Attrs["shape"] != "record" {
		t.Errorf("shape = %v, want record", v.Attrs["shape"])
	}
	label, _ := v.Attrs["label"].(string)
	if !strings.Contains(label, "«interface»") {
		t.Errorf("label missing stereotype: %s", label)
	}
}

func TestInvalidClassHintInLabel(t *testing.T) {
	p := classTypes(&TypeDescriptor{
		Name: "T",
		Kind: KindClass,
		Methods: []MethodDescriptor{
			{
				Name:       "f",
				Visibility: VisibilityPublic,
				Parameters: []ParameterDescriptor{{Name: "x", Position: 0, TypeHint: "Missing"}},
			},
		},
	})
	b := NewDiagramBuilder(p, Options{})

	v, err := b.AddTypeByName("T")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	label, _ := v.Attrs["label"].(string)
	if !strings.Contains(label, SentinelInvalidClass) {
		t.Errorf("unresolvable hint should render %s: %s", SentinelInvalidClass, label)
	}
}

func TestAddExtension(t *testing.T) {
	p := &fakeProvider{extensions: map[string]*ExtensionDescriptor{
		"strutil": {Name: "strutil"},
	}}
	b := NewDiagramBuilder(p, Options{})

	v, err := b.AddExtensionByName("strutil")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	label, _ := v.Attrs["label"].(string)
	if !strings.Contains(label, "«extension»") {
		t.Errorf("label missing extension stereotype: %s", label)
	}

	if _, err := b.AddExtensionByName("nope"); !errors.Is(err, errors.ErrCodeExtensionNotFound) {
		t.Errorf("err = %v, want EXTENSION_NOT_FOUND", err)
	}
}

func TestNotes(t *testing.T) {
	p := classTypes(&TypeDescriptor{Name: "Foo", Kind: KindClass})
	b := NewDiagramBuilder(p, Options{})

	if _, err := b.AddTypeByName("Foo"); err != nil {
		t.Fatalf("add: %v", err)
	}

	n := b.AddNote("hello")
	if !strings.HasPrefix(n.Key, "note-") {
		t.Errorf("note key = %q, want note- prefix", n.Key)
	}
	if n.Attrs["shape"] != "note" || n.Attrs["fillcolor"] != "#FEFECE" {
		t.Errorf("note attrs = %v", n.Attrs)
	}

	n2, err := b.AddNoteTo("attached", "Foo")
	if err != nil {
		t.Fatalf("AddNoteTo: %v", err)
	}
	if !b.Graph().HasEdge(n2.Key, "Foo") {
		t.Error("missing note edge")
	}
	for _, e := range b.Graph().Edges() {
		if e.From == n2.Key {
			if e.Attrs["arrowhead"] != "none" || e.Attrs["style"] != "dashed" {
				t.Errorf("note edge attrs = %v", e.Attrs)
			}
		}
	}

	if _, err := b.AddNoteTo("dangling", "Bar"); !errors.Is(err, errors.ErrCodeTypeNotFound) {
		t.Errorf("err = %v, want TYPE_NOT_FOUND", err)
	}
}

func TestComponentExtraction(t *testing.T) {
	p := classTypes(
		&TypeDescriptor{Name: "A", Kind: KindClass, Parent: "B"},
		&TypeDescriptor{Name: "B", Kind: KindClass},
		&TypeDescriptor{Name: "C", Kind: KindClass},
	)
	b := NewDiagramBuilder(p, Options{AddParents: true})

	for _, name := range []string{"A", "C"} {
		if _, err := b.AddTypeByName(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	if got := b.ComponentCount(); got != 2 {
		t.Errorf("ComponentCount = %d, want 2", got)
	}

	c, err := b.ExtractComponentContaining("B")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if c.VertexCount() != 2 || !c.HasVertex("A") || !c.HasVertex("B") {
		t.Errorf("component vertices wrong: %d", c.VertexCount())
	}

	before := b.Graph().VertexCount()
	if _, err := b.ExtractComponentContaining("Zzz"); !errors.Is(err, errors.ErrCodeTypeNotFound) {
		t.Errorf("err = %v, want TYPE_NOT_FOUND", err)
	}
	if b.Graph().VertexCount() != before {
		t.Error("failed extraction should not create vertices")
	}
}

func TestOptionsFromMap(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o, err := OptionsFromMap(nil)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if o != DefaultOptions() {
			t.Errorf("got %+v, want defaults", o)
		}
	})

	t.Run("values coerced", func(t *testing.T) {
		o, err := OptionsFromMap(map[string]any{
			OptionShowPrivate:   "yes",
			OptionShowConstants: "off",
			OptionAddParents:    0,
			OptionOnlySelf:      false,
		})
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if !o.ShowPrivate || o.ShowConstants || o.AddParents || o.OnlySelf {
			t.Errorf("coercion wrong: %+v", o)
		}
	})

	t.Run("unknown name is fatal", func(t *testing.T) {
		_, err := OptionsFromMap(map[string]any{"showEverything": true})
		if !errors.Is(err, errors.ErrCodeInvalidOption) {
			t.Errorf("err = %v, want INVALID_OPTION", err)
		}
	})
}
