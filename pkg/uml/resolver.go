package uml

import (
	"regexp"
	"strings"
)

// SentinelInvalidClass is rendered for a parameter whose class-type hint
// names a type the metadata provider does not know. Resolution stops
// there; the failure is never surfaced as an error.
const SentinelInvalidClass = "«invalidClass»"

var (
	arrayRe = regexp.MustCompile(`^array\[(.*)\]$`)
	identRe = regexp.MustCompile(`^[\pL_][\pL\pN_]*$`)
)

// typeAliases maps imprecise primitive spellings to their canonical form.
var typeAliases = map[string]string{
	"integer": "int",
	"double":  "float",
	"boolean": "bool",
}

// primitives is the set of canonical primitive type names, which are
// case-normalized to lower case on the way through.
var primitives = map[string]bool{
	"int":      true,
	"float":    true,
	"bool":     true,
	"string":   true,
	"null":     true,
	"resource": true,
	"array":    true,
	"void":     true,
	"mixed":    true,
}

// TypeResolver normalizes free-text type names to a canonical display
// form and implements the fallback chains for parameter, property, and
// return types. The provider is only consulted to check whether a
// parameter's class-type hint resolves; it may be nil, in which case
// every hint is taken at face value.
type TypeResolver struct {
	provider MetadataProvider
}

// NewTypeResolver creates a resolver backed by the given provider.
func NewTypeResolver(p MetadataProvider) *TypeResolver {
	return &TypeResolver{provider: p}
}

// Canonicalize normalizes a raw type name for display. An empty input
// yields an empty output (no type to show). The array-of-T shorthand
// "array[T]" recurses on T and appends "[]". Anything that is not a
// plain identifier degrades to "mixed". Primitive aliases and canonical
// primitives are lower-cased; class and interface names pass through
// with their original casing, unresolved.
func (r *TypeResolver) Canonicalize(raw string) string {
	if raw == "" {
		return ""
	}
	if m := arrayRe.FindStringSubmatch(raw); m != nil {
		return r.Canonicalize(m[1]) + "[]"
	}
	if !identRe.MatchString(raw) {
		return "mixed"
	}
	lower := strings.ToLower(raw)
	if canonical, ok := typeAliases[lower]; ok {
		return canonical
	}
	if primitives[lower] {
		return lower
	}
	return raw
}

// ParameterType resolves the display type for one parameter of m.
//
// The chain: a class-type hint wins if present, degrading to
// [SentinelInvalidClass] when the hinted type does not resolve; otherwise
// the @param tags of the method's doc comment are used, but only when
// their count matches the parameter count exactly (a mismatch disables
// doc-based typing for every parameter of the method); otherwise no type
// is shown.
func (r *TypeResolver) ParameterType(m *MethodDescriptor, p *ParameterDescriptor) string {
	if p.TypeHint != "" {
		if r.provider != nil {
			if _, err := r.provider.TypeByName(p.TypeHint); err != nil {
				return SentinelInvalidClass
			}
		}
		return r.Canonicalize(p.TypeHint)
	}

	tags := docTags(m.DocComment, "param")
	if len(tags) > 0 && len(tags) == len(m.Parameters) && p.Position < len(tags) {
		return r.Canonicalize(tags[p.Position])
	}
	return ""
}

// PropertyType resolves the display type of a property from its doc
// comment. The @var tag is used if and only if exactly one is present.
func (r *TypeResolver) PropertyType(p *PropertyDescriptor) string {
	if tags := docTags(p.DocComment, "var"); len(tags) == 1 {
		return r.Canonicalize(tags[0])
	}
	return ""
}

// ReturnType resolves the display return type of a method: the declared
// return type name if present, else the single @return tag of the doc
// comment, else nothing.
func (r *TypeResolver) ReturnType(m *MethodDescriptor) string {
	if m.ReturnType != "" {
		return r.Canonicalize(m.ReturnType)
	}
	if tags := docTags(m.DocComment, "return"); len(tags) == 1 {
		return r.Canonicalize(tags[0])
	}
	return ""
}

// docTags extracts the first word after every @tag line of a doc comment.
func docTags(doc, tag string) []string {
	if doc == "" {
		return nil
	}
	re := regexp.MustCompile(`(?m)^[ \t]*\*?[ \t]*@` + regexp.QuoteMeta(tag) + `[ \t]+(\S+)`)
	var out []string
	for _, m := range re.FindAllStringSubmatch(doc, -1) {
		out = append(out, m[1])
	}
	return out
}
