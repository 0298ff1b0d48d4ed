package uml

import "slices"

// Kind classifies a type descriptor.
type Kind string

// Type kinds.
const (
	KindClass         Kind = "class"
	KindAbstractClass Kind = "abstractClass"
	KindInterface     Kind = "interface"
	KindExtension     Kind = "extension"
)

// Visibility of a class member.
type Visibility string

// Member visibilities. The zero value marks a bare callable (an extension
// module function), which has no visibility concept and is treated as
// public, non-static, non-abstract.
const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Symbol returns the diagram marker for the visibility: "+", "#", or "-".
// Bare callables render as public.
func (v Visibility) Symbol() string {
	switch v {
	case VisibilityProtected:
		return "#"
	case VisibilityPrivate:
		return "-"
	default:
		return "+"
	}
}

// TypeDescriptor is an immutable view of one class, interface, or abstract
// class as supplied by a [MetadataProvider]. Name is the unique key within
// a diagram session. Interfaces must already contain the full transitive
// closure (direct + inherited, duplicates removed) in a stable order
// before the descriptor reaches [DedupInterfaces].
type TypeDescriptor struct {
	Name       string
	Kind       Kind
	Parent     string // parent type name, empty if none
	Interfaces []string
	Constants  map[string]any
	Properties []PropertyDescriptor
	Methods    []MethodDescriptor
	DocComment string
}

// Implements reports whether name appears in the descriptor's interface set.
func (t *TypeDescriptor) Implements(name string) bool {
	return slices.Contains(t.Interfaces, name)
}

// Abstract reports whether the type is an abstract class.
func (t *TypeDescriptor) Abstract() bool { return t.Kind == KindAbstractClass }

// Interface reports whether the type is an interface.
func (t *TypeDescriptor) Interface() bool { return t.Kind == KindInterface }

// PropertyDescriptor describes one property of a type.
// HasDefault distinguishes an absent default from a present-and-null one.
type PropertyDescriptor struct {
	Name       string
	Visibility Visibility
	Static     bool
	DeclaredBy string // name of the type in the hierarchy that declares it
	HasDefault bool
	Default    any
	DocComment string
}

// MethodDescriptor describes one method of a type, or a bare extension
// module function when Visibility is the zero value.
type MethodDescriptor struct {
	Name       string
	Visibility Visibility
	Static     bool
	Abstract   bool
	DeclaredBy string
	Parameters []ParameterDescriptor
	ReturnType string // declared return type name, empty if none
	DocComment string
}

// ParameterDescriptor describes one positional parameter of a method.
//
// Default is evaluated lazily because evaluating a default expression can
// itself fail (e.g. it references an undefined constant). A nil Default
// with HasDefault set represents a present-and-null default.
type ParameterDescriptor struct {
	Name     string
	Position int    // 0-based
	TypeHint string // declared class-type hint, empty if none
	ByRef    bool
	Optional bool

	HasDefault bool
	Default    func() (any, error)
}

// ExtensionDescriptor describes an extension module: a flat bag of
// functions and constants with no inheritance.
type ExtensionDescriptor struct {
	Name      string
	Constants map[string]any
	Functions []MethodDescriptor
}

// MetadataProvider supplies type metadata by name. Implementations answer
// synchronously; descriptors are read-only for the duration of one
// diagram build.
//
// Lookups for unknown names fail with an error carrying
// [errors.ErrCodeTypeNotFound] semantics; providers never return a
// partial descriptor.
type MetadataProvider interface {
	// TypeByName returns the descriptor for a class or interface.
	TypeByName(name string) (*TypeDescriptor, error)

	// ExtensionByName returns the descriptor for an extension module.
	ExtensionByName(name string) (*ExtensionDescriptor, error)
}
