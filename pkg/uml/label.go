package uml

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

// lineBreak terminates a record-label line left-aligned.
const lineBreak = `\l`

// LabelRenderer composes the resolver, value formatter, escaper, and
// member filter into the full structured label text for a type or
// extension module. The produced string is a quoted record token whose
// grammar the rendering backend interprets directly, so it is attached
// to a vertex as-is.
type LabelRenderer struct {
	resolver *TypeResolver
	filter   *MemberFilter
	opts     Options
}

// NewLabelRenderer creates a renderer using the given resolver and options.
func NewLabelRenderer(resolver *TypeResolver, opts Options) *LabelRenderer {
	return &LabelRenderer{
		resolver: resolver,
		filter:   NewMemberFilter(opts),
		opts:     opts,
	}
}

// TypeLabel renders the three-section record label for t. parent is the
// resolved descriptor of t's parent, or nil; it is only consulted for
// the constant ownership approximation.
func (r *LabelRenderer) TypeLabel(t *TypeDescriptor, parent *TypeDescriptor) string {
	var header strings.Builder
	switch t.Kind {
	case KindInterface:
		header.WriteString("«interface»" + lineBreak)
	case KindAbstractClass:
		header.WriteString("«abstract»" + lineBreak)
	}
	header.WriteString(Escape(t.Name) + lineBreak)

	var body strings.Builder
	if r.opts.ShowConstants {
		r.writeConstants(&body, t.Constants, parent)
	}
	for i := range t.Properties {
		p := &t.Properties[i]
		if !r.filter.Displayable(p.Visibility) || !r.filter.OwnMember(p.DeclaredBy, t.Name) {
			continue
		}
		body.WriteString(r.propertyLine(p) + lineBreak)
	}

	var footer strings.Builder
	for i := range t.Methods {
		m := &t.Methods[i]
		if !r.filter.Displayable(m.Visibility) || !r.filter.OwnMember(m.DeclaredBy, t.Name) {
			continue
		}
		footer.WriteString(r.methodLine(m) + lineBreak)
	}

	return record(header.String(), body.String(), footer.String())
}

// ExtensionLabel renders the label for an extension module: the same
// three-part shape with a fixed «extension» stereotype, constants, and
// bare functions. There is no property section.
func (r *LabelRenderer) ExtensionLabel(e *ExtensionDescriptor) string {
	header := "«extension»" + lineBreak + Escape(e.Name) + lineBreak

	var body strings.Builder
	if r.opts.ShowConstants {
		r.writeConstants(&body, e.Constants, nil)
	}

	var footer strings.Builder
	for i := range e.Functions {
		footer.WriteString(r.methodLine(&e.Functions[i]) + lineBreak)
	}

	return record(header, body.String(), footer.String())
}

// record wraps the three sections into one quoted record token.
func record(header, body, footer string) string {
	return `"{` + header + "|" + body + "|" + footer + `}"`
}

func (r *LabelRenderer) writeConstants(b *strings.Builder, constants map[string]any, parent *TypeDescriptor) {
	for _, name := range slices.Sorted(maps.Keys(constants)) {
		value := constants[name]
		if !r.filter.OwnConstant(name, value, parent) {
			continue
		}
		b.WriteString("+ «static» " + Escape(name) + " : " + constantType(value) +
			" = " + FormatValue(value) + " {readOnly}" + lineBreak)
	}
}

func (r *LabelRenderer) propertyLine(p *PropertyDescriptor) string {
	line := p.Visibility.Symbol() + " "
	if p.Static {
		line += "«static» "
	}
	line += Escape(p.Name)
	if typ := r.resolver.PropertyType(p); typ != "" {
		line += " : " + typ
	}
	if p.HasDefault {
		line += " = " + FormatValue(p.Default)
	}
	return line
}

func (r *LabelRenderer) methodLine(m *MethodDescriptor) string {
	line := m.Visibility.Symbol() + " "
	if m.Abstract {
		line += "«abstract» "
	}
	if m.Static {
		line += "«static» "
	}

	params := make([]string, len(m.Parameters))
	for i := range m.Parameters {
		params[i] = r.parameterText(m, &m.Parameters[i])
	}
	line += Escape(m.Name) + "(" + strings.Join(params, ", ") + ")"

	if ret := r.resolver.ReturnType(m); ret != "" {
		line += " : " + ret
	}
	return line
}

func (r *LabelRenderer) parameterText(m *MethodDescriptor, p *ParameterDescriptor) string {
	var text string
	if p.ByRef {
		text = "inout "
	}
	text += Escape(p.Name)
	if typ := r.resolver.ParameterType(m, p); typ != "" {
		text += " : " + typ
	}
	if p.HasDefault {
		text += " = " + r.defaultText(p)
	}
	return text
}

// defaultText evaluates a parameter default lazily. A failed evaluation
// renders as «unknown»; the formatter is not reached in that case.
func (r *LabelRenderer) defaultText(p *ParameterDescriptor) string {
	if p.Default == nil {
		return FormatValue(nil)
	}
	v, err := p.Default()
	if err != nil {
		return SentinelUnknown
	}
	return FormatValue(v)
}

// constantType derives a display type for a constant from its runtime
// value. Constants carry no declared type in the metadata, so the value
// is all there is to go on.
func constantType(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice, reflect.Array, reflect.Map:
		return "array"
	case reflect.Struct:
		return typeName(rv.Type())
	case reflect.Pointer:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			return typeName(rv.Elem().Type())
		}
	}
	return "mixed"
}
