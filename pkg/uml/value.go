package uml

import (
	"reflect"
	"strconv"
	"strings"
)

// SentinelUnknown is rendered for a parameter default whose evaluation
// failed. The formatter is never reached in that case; the label
// renderer substitutes this literal instead.
const SentinelUnknown = "«unknown»"

// FormatValue renders a runtime value (default value, constant value) to
// a displayable literal.
//
// Strings are escaped via [Escape] and wrapped in escaped double quotes,
// with embedded double quotes backslash-escaped first. Collections are
// never enumerated: an empty one renders as "[]", a non-empty one as the
// placeholder "[…]". A composite value renders as its type name followed
// by "{…}". Anything unrecognized degrades to "…".
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		quoted := strings.ReplaceAll(val, `"`, `\"`)
		return `\"` + Escape(quoted) + `\"`
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Len() == 0 {
			return "[]"
		}
		return "[…]"
	case reflect.Struct:
		return typeName(rv.Type()) + "{…}"
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL"
		}
		if rv.Elem().Kind() == reflect.Struct {
			return typeName(rv.Elem().Type()) + "{…}"
		}
		return FormatValue(rv.Elem().Interface())
	}
	return "…"
}

func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
