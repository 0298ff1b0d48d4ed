package uml

import (
	"github.com/google/uuid"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/graph"
)

// noteFillColor is the fixed fill for annotation vertices.
const noteFillColor = "#FEFECE"

// DiagramBuilder is the top-level orchestrator. It materializes type
// hierarchies into an attributed graph: one vertex per type (created at
// most once, tracked by an explicit name→vertex map), inheritance edges
// to parents, realization edges to the deduplicated interface set, and
// record labels rendered by [LabelRenderer].
//
// A builder assumes exclusive access to its graph for the duration of a
// build; it is not safe for concurrent use.
type DiagramBuilder struct {
	g        *graph.Graph
	provider MetadataProvider
	opts     Options
	renderer *LabelRenderer

	// vertices doubles as the in-progress marker set: a type is
	// registered here before its ancestors are materialized, which keeps
	// diamond-shaped interface graphs from recursing forever.
	vertices map[string]*graph.Vertex
}

// NewDiagramBuilder creates a builder over a fresh graph.
func NewDiagramBuilder(provider MetadataProvider, opts Options) *DiagramBuilder {
	return &DiagramBuilder{
		g:        graph.New(nil),
		provider: provider,
		opts:     opts,
		renderer: NewLabelRenderer(NewTypeResolver(provider), opts),
		vertices: make(map[string]*graph.Vertex),
	}
}

// Graph returns the diagram graph built so far.
func (b *DiagramBuilder) Graph() *graph.Graph { return b.g }

// HasType reports whether a vertex for the given type name exists.
func (b *DiagramBuilder) HasType(name string) bool {
	return b.g.HasVertex(name)
}

// AddTypeByName resolves a bare type name through the metadata provider
// and adds it. Returns the existing vertex when the type was already
// added; the provider is not consulted in that case.
func (b *DiagramBuilder) AddTypeByName(name string) (*graph.Vertex, error) {
	if v, ok := b.vertices[name]; ok {
		return v, nil
	}
	t, err := b.provider.TypeByName(name)
	if err != nil {
		return nil, err
	}
	return b.AddType(t)
}

// AddType adds a vertex for the given type descriptor. With the
// AddParents option enabled it recursively materializes the parent chain
// and the deduplicated interface set, drawing an inheritance edge
// (hollow arrowhead, solid line) to the parent and a realization edge
// (hollow arrowhead, dashed line) per remaining interface. Ancestor
// vertices not explicitly requested by the caller may be created as a
// side effect.
func (b *DiagramBuilder) AddType(t *TypeDescriptor) (*graph.Vertex, error) {
	if v, ok := b.vertices[t.Name]; ok {
		return v, nil
	}
	v := b.g.GetOrCreateVertex(t.Name)
	b.vertices[t.Name] = v

	// The parent descriptor also feeds the constant ownership rule of
	// the label, so it is resolved even when AddParents is off. Only the
	// AddParents path treats a failed lookup as an error.
	var parent *TypeDescriptor
	if t.Parent != "" {
		p, err := b.provider.TypeByName(t.Parent)
		if err == nil {
			parent = p
		} else if b.opts.AddParents {
			return nil, err
		}
	}

	if b.opts.AddParents {
		if parent != nil {
			pv, err := b.AddType(parent)
			if err != nil {
				return nil, err
			}
			b.addInheritanceEdge(v, pv)
		}

		ifaces := make([]*TypeDescriptor, 0, len(t.Interfaces))
		for _, name := range t.Interfaces {
			in, err := b.provider.TypeByName(name)
			if err != nil {
				return nil, err
			}
			ifaces = append(ifaces, in)
		}
		for _, in := range DedupInterfaces(ifaces, parent) {
			iv, err := b.AddType(in)
			if err != nil {
				return nil, err
			}
			e := b.addInheritanceEdge(v, iv)
			e.SetAttribute("style", "dashed")
		}
	}

	v.SetAttribute("shape", "record")
	v.SetAttribute("label", b.renderer.TypeLabel(t, parent))
	return v, nil
}

// AddExtensionByName resolves an extension module name through the
// provider and adds it.
func (b *DiagramBuilder) AddExtensionByName(name string) (*graph.Vertex, error) {
	if v, ok := b.vertices[name]; ok {
		return v, nil
	}
	e, err := b.provider.ExtensionByName(name)
	if err != nil {
		return nil, err
	}
	return b.AddExtension(e)
}

// AddExtension adds a vertex for an extension module. Extension modules
// have no parent or interface logic; only the label differs from a
// plain type vertex.
func (b *DiagramBuilder) AddExtension(e *ExtensionDescriptor) (*graph.Vertex, error) {
	if v, ok := b.vertices[e.Name]; ok {
		return v, nil
	}
	v := b.g.GetOrCreateVertex(e.Name)
	b.vertices[e.Name] = v
	v.SetAttribute("shape", "record")
	v.SetAttribute("label", b.renderer.ExtensionLabel(e))
	return v, nil
}

// AddNote creates an annotation vertex with a fixed visual style and
// returns it.
func (b *DiagramBuilder) AddNote(text string) *graph.Vertex {
	v := b.g.GetOrCreateVertex("note-" + uuid.NewString())
	v.SetAttribute("shape", "note")
	v.SetAttribute("style", "filled")
	v.SetAttribute("fillcolor", noteFillColor)
	v.SetAttribute("label", `"`+Escape(text)+`"`)
	return v
}

// AddNoteTo creates an annotation vertex and draws a dashed, arrowless
// edge from the note to the named target vertex. Fails when the target
// is not in the diagram.
func (b *DiagramBuilder) AddNoteTo(text, target string) (*graph.Vertex, error) {
	if !b.g.HasVertex(target) {
		return nil, errors.New(errors.ErrCodeTypeNotFound, "type %q is not in the diagram", target)
	}
	v := b.AddNote(text)
	e, _ := b.g.AddEdge(v.Key, target)
	e.SetAttribute("style", "dashed")
	e.SetAttribute("arrowhead", "none")
	return v, nil
}

// ExtractComponentContaining returns the connected component that
// contains the named type. Asking for a type that is not in the diagram
// is a lookup error; no vertices are created.
func (b *DiagramBuilder) ExtractComponentContaining(name string) (*graph.Graph, error) {
	c, ok := graph.ComponentContaining(b.g, name)
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeNotFound, "type %q is not in the diagram", name)
	}
	return c, nil
}

// ExtractAllComponents returns every connected component of the diagram.
func (b *DiagramBuilder) ExtractAllComponents() []*graph.Graph {
	return graph.Components(b.g)
}

// ComponentCount returns the number of connected components.
func (b *DiagramBuilder) ComponentCount() int {
	return graph.ComponentCount(b.g)
}

// addInheritanceEdge draws a hollow-arrowhead edge from child to parent.
// Endpoints are known to exist, so AddEdge cannot fail here.
func (b *DiagramBuilder) addInheritanceEdge(child, parent *graph.Vertex) *graph.Edge {
	e, _ := b.g.AddEdge(child.Key, parent.Key)
	e.SetAttribute("arrowhead", "empty")
	return e
}
