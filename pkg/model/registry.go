package model

import (
	"fmt"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/uml"
)

// Registry serves a validated model as diagram metadata. It implements
// [uml.MetadataProvider]: descriptors are built on first request, cached,
// and reused for the rest of the session, so repeated lookups of the
// same name return the same descriptor.
type Registry struct {
	types      map[string]*TypeSpec
	typeOrder  []string
	extensions map[string]*ExtensionSpec
	extOrder   []string

	descriptors map[string]*uml.TypeDescriptor
	extDescs    map[string]*uml.ExtensionDescriptor
}

var _ uml.MetadataProvider = (*Registry)(nil)

// NewRegistry validates the model and indexes it for lookup.
func NewRegistry(m *Model) (*Registry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		types:       make(map[string]*TypeSpec, len(m.Types)),
		extensions:  make(map[string]*ExtensionSpec, len(m.Extensions)),
		descriptors: make(map[string]*uml.TypeDescriptor),
		extDescs:    make(map[string]*uml.ExtensionDescriptor),
	}
	for i := range m.Types {
		t := &m.Types[i]
		r.types[t.Name] = t
		r.typeOrder = append(r.typeOrder, t.Name)
	}
	for i := range m.Extensions {
		e := &m.Extensions[i]
		r.extensions[e.Name] = e
		r.extOrder = append(r.extOrder, e.Name)
	}
	return r, nil
}

// TypeNames returns all class and interface names in model order.
func (r *Registry) TypeNames() []string { return r.typeOrder }

// ExtensionNames returns all extension module names in model order.
func (r *Registry) ExtensionNames() []string { return r.extOrder }

// TypeByName implements uml.MetadataProvider.
func (r *Registry) TypeByName(name string) (*uml.TypeDescriptor, error) {
	if d, ok := r.descriptors[name]; ok {
		return d, nil
	}
	spec, ok := r.types[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeNotFound, "type %q not found", name)
	}
	d := r.buildType(spec)
	r.descriptors[name] = d
	return d, nil
}

// ExtensionByName implements uml.MetadataProvider.
func (r *Registry) ExtensionByName(name string) (*uml.ExtensionDescriptor, error) {
	if d, ok := r.extDescs[name]; ok {
		return d, nil
	}
	spec, ok := r.extensions[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeExtensionNotFound, "extension module %q not found", name)
	}
	d := &uml.ExtensionDescriptor{
		Name:      spec.Name,
		Constants: spec.Constants,
		Functions: make([]uml.MethodDescriptor, len(spec.Functions)),
	}
	for i, f := range spec.Functions {
		// Bare callables keep the zero visibility.
		d.Functions[i] = uml.MethodDescriptor{
			Name:       f.Name,
			Parameters: buildParams(f.Params),
			DocComment: f.Doc,
		}
	}
	r.extDescs[name] = d
	return d, nil
}

// buildType assembles the full descriptor for one type: the transitive
// interface closure, inherited constants, and ancestor members with
// their declaring type recorded.
func (r *Registry) buildType(spec *TypeSpec) *uml.TypeDescriptor {
	d := &uml.TypeDescriptor{
		Name:       spec.Name,
		Kind:       kindOf(spec.Kind),
		Parent:     spec.Extends,
		Interfaces: r.interfaceClosure(spec),
		Constants:  map[string]any{},
		DocComment: spec.Doc,
	}

	// Members and constants along the ancestor chain, nearest first.
	// A name declared closer to the leaf shadows the ancestor's; private
	// ancestor members are not inherited at all.
	haveProp := make(map[string]bool)
	haveMethod := make(map[string]bool)
	walked := make(map[string]bool)
	for s, depth := spec, 0; s != nil && !walked[s.Name]; s, depth = r.types[s.Extends], depth+1 {
		walked[s.Name] = true
		for _, p := range s.Properties {
			if haveProp[p.Name] || (depth > 0 && p.Visibility == "private") {
				continue
			}
			haveProp[p.Name] = true
			d.Properties = append(d.Properties, uml.PropertyDescriptor{
				Name:       p.Name,
				Visibility: visibilityOf(p.Visibility),
				Static:     p.Static,
				DeclaredBy: s.Name,
				HasDefault: p.Default != nil || p.NullDefault,
				Default:    p.Default,
				DocComment: p.Doc,
			})
		}
		for _, m := range s.Methods {
			if haveMethod[m.Name] || (depth > 0 && m.Visibility == "private") {
				continue
			}
			haveMethod[m.Name] = true
			d.Methods = append(d.Methods, uml.MethodDescriptor{
				Name:       m.Name,
				Visibility: visibilityOf(m.Visibility),
				Static:     m.Static,
				Abstract:   m.Abstract,
				DeclaredBy: s.Name,
				Parameters: buildParams(m.Params),
				ReturnType: m.Returns,
				DocComment: m.Doc,
			})
		}
		for name, value := range s.Constants {
			if _, ok := d.Constants[name]; !ok {
				d.Constants[name] = value
			}
		}
		if s.Extends == "" {
			break
		}
	}
	return d
}

// interfaceClosure computes the full transitive interface set of a type
// in a stable order: directly implemented interfaces first, each
// followed by its own ancestors, then the parent class's closure.
func (r *Registry) interfaceClosure(spec *TypeSpec) []string {
	var out []string
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	var walk func(s *TypeSpec)
	walk = func(s *TypeSpec) {
		if visited[s.Name] {
			return
		}
		visited[s.Name] = true
		for _, name := range s.Implements {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
			if ispec, ok := r.types[name]; ok {
				walk(ispec)
			}
		}
		if pspec, ok := r.types[s.Extends]; ok {
			walk(pspec)
		}
	}
	walk(spec)
	return out
}

func buildParams(specs []ParamSpec) []uml.ParameterDescriptor {
	if len(specs) == 0 {
		return nil
	}
	out := make([]uml.ParameterDescriptor, len(specs))
	for i, ps := range specs {
		p := uml.ParameterDescriptor{
			Name:     ps.Name,
			Position: i,
			TypeHint: ps.Hint,
			ByRef:    ps.ByRef,
			Optional: ps.Optional,
		}
		switch {
		case ps.UnknownDefault:
			name := ps.Name
			p.HasDefault = true
			p.Default = func() (any, error) {
				return nil, fmt.Errorf("default value of parameter %q cannot be evaluated", name)
			}
		case ps.NullDefault:
			p.HasDefault = true
		case ps.Default != nil:
			value := ps.Default
			p.HasDefault = true
			p.Default = func() (any, error) { return value, nil }
		}
		out[i] = p
	}
	return out
}

func kindOf(kind string) uml.Kind {
	switch kind {
	case "interface":
		return uml.KindInterface
	case "abstractClass":
		return uml.KindAbstractClass
	default:
		return uml.KindClass
	}
}

func visibilityOf(v string) uml.Visibility {
	switch v {
	case "protected":
		return uml.VisibilityProtected
	case "private":
		return uml.VisibilityPrivate
	default:
		return uml.VisibilityPublic
	}
}
