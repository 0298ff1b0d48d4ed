package uml

import (
	"reflect"
	"strings"

	"github.com/storeman/graph-uml/pkg/errors"
)

// Options configures diagram construction and label rendering. The
// struct is passed at construction and never mutated afterwards, so one
// Options value can safely serve concurrent builders.
type Options struct {
	OnlySelf      bool // hide members declared by an ancestor
	ShowPrivate   bool
	ShowProtected bool
	ShowConstants bool
	AddParents    bool // recursively add ancestor and interface vertices
}

// DefaultOptions returns the default configuration: own members only,
// constants shown, ancestors and interfaces followed, private and
// protected members hidden.
func DefaultOptions() Options {
	return Options{
		OnlySelf:      true,
		ShowConstants: true,
		AddParents:    true,
	}
}

// Option names accepted by [OptionsFromMap].
const (
	OptionOnlySelf      = "onlySelf"
	OptionShowPrivate   = "showPrivate"
	OptionShowProtected = "showProtected"
	OptionShowConstants = "showConstants"
	OptionAddParents    = "addParents"
)

// OptionsFromMap builds Options from a string-keyed map, such as a config
// file section, layered over [DefaultOptions]. Any truthy/falsy value is
// coerced to a canonical boolean. An unrecognized option name is a fatal
// configuration error.
func OptionsFromMap(m map[string]any) (Options, error) {
	o := DefaultOptions()
	for name, raw := range m {
		v := truthy(raw)
		switch name {
		case OptionOnlySelf:
			o.OnlySelf = v
		case OptionShowPrivate:
			o.ShowPrivate = v
		case OptionShowProtected:
			o.ShowProtected = v
		case OptionShowConstants:
			o.ShowConstants = v
		case OptionAddParents:
			o.AddParents = v
		default:
			return Options{}, errors.New(errors.ErrCodeInvalidOption, "unknown diagram option %q", name)
		}
	}
	return o, nil
}

// truthy coerces arbitrary config input to a boolean. Empty strings,
// zero numbers, "false", "no", "off", and "0" are false; everything else
// present is true.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
