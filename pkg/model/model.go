package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/storeman/graph-uml/pkg/errors"
)

// Model is the declarative form of a type hierarchy as written in a
// model file.
type Model struct {
	Types      []TypeSpec      `toml:"types" json:"types"`
	Extensions []ExtensionSpec `toml:"extensions" json:"extensions,omitempty"`
	Notes      []NoteSpec      `toml:"notes" json:"notes,omitempty"`

	// Options are diagram options in string-keyed form, coerced and
	// validated by uml.OptionsFromMap.
	Options map[string]any `toml:"options" json:"options,omitempty"`
}

// TypeSpec describes one class or interface.
type TypeSpec struct {
	Name       string         `toml:"name" json:"name"`
	Kind       string         `toml:"kind" json:"kind"` // class | abstractClass | interface
	Extends    string         `toml:"extends" json:"extends,omitempty"`
	Implements []string       `toml:"implements" json:"implements,omitempty"`
	Doc        string         `toml:"doc" json:"doc,omitempty"`
	Constants  map[string]any `toml:"constants" json:"constants,omitempty"`
	Properties []PropertySpec `toml:"properties" json:"properties,omitempty"`
	Methods    []MethodSpec   `toml:"methods" json:"methods,omitempty"`
}

// ExtensionSpec describes one extension module.
type ExtensionSpec struct {
	Name      string         `toml:"name" json:"name"`
	Constants map[string]any `toml:"constants" json:"constants,omitempty"`
	Functions []FunctionSpec `toml:"functions" json:"functions,omitempty"`
}

// PropertySpec describes one property.
type PropertySpec struct {
	Name       string `toml:"name" json:"name"`
	Visibility string `toml:"visibility" json:"visibility,omitempty"` // defaults to public
	Static     bool   `toml:"static" json:"static,omitempty"`
	Doc        string `toml:"doc" json:"doc,omitempty"`

	Default     any  `toml:"default" json:"default,omitempty"`
	NullDefault bool `toml:"null_default" json:"null_default,omitempty"` // present-and-null default
}

// MethodSpec describes one method.
type MethodSpec struct {
	Name       string      `toml:"name" json:"name"`
	Visibility string      `toml:"visibility" json:"visibility,omitempty"`
	Static     bool        `toml:"static" json:"static,omitempty"`
	Abstract   bool        `toml:"abstract" json:"abstract,omitempty"`
	Returns    string      `toml:"returns" json:"returns,omitempty"`
	Doc        string      `toml:"doc" json:"doc,omitempty"`
	Params     []ParamSpec `toml:"params" json:"params,omitempty"`
}

// FunctionSpec describes a bare extension module function.
type FunctionSpec struct {
	Name   string      `toml:"name" json:"name"`
	Doc    string      `toml:"doc" json:"doc,omitempty"`
	Params []ParamSpec `toml:"params" json:"params,omitempty"`
}

// ParamSpec describes one method parameter.
//
// UnknownDefault marks a default expression that cannot be evaluated
// (e.g. it references an undefined constant); the diagram renders it as
// the «unknown» sentinel.
type ParamSpec struct {
	Name     string `toml:"name" json:"name"`
	Hint     string `toml:"hint" json:"hint,omitempty"` // class-type hint
	ByRef    bool   `toml:"by_ref" json:"by_ref,omitempty"`
	Optional bool   `toml:"optional" json:"optional,omitempty"`

	Default        any  `toml:"default" json:"default,omitempty"`
	NullDefault    bool `toml:"null_default" json:"null_default,omitempty"`
	UnknownDefault bool `toml:"unknown_default" json:"unknown_default,omitempty"`
}

// NoteSpec describes a diagram annotation, optionally attached to a type.
type NoteSpec struct {
	Text string `toml:"text" json:"text"`
	On   string `toml:"on" json:"on,omitempty"`
}

// Load reads a model file. The format is chosen by extension: .toml
// (the default for unknown extensions) or .json.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model file %s", path)
		}
		return nil, err
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "parse %s", path)
	}
	return m, nil
}

// Parse decodes model data in the given format ("toml" or "json").
func Parse(data []byte, format string) (*Model, error) {
	var m Model
	switch format {
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Validate checks structural soundness: non-empty unique names, known
// kinds and visibilities, and resolvable extends/implements references.
func (m *Model) Validate() error {
	seen := make(map[string]bool)
	for i := range m.Types {
		t := &m.Types[i]
		if err := errors.ValidateTypeName(t.Name); err != nil {
			return err
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidModel, "duplicate type %q", t.Name)
		}
		seen[t.Name] = true

		switch t.Kind {
		case "", "class", "abstractClass", "interface":
		default:
			return errors.New(errors.ErrCodeInvalidModel, "type %q: unknown kind %q", t.Name, t.Kind)
		}
		for _, p := range t.Properties {
			if err := validateVisibility(t.Name, p.Visibility); err != nil {
				return err
			}
		}
		for _, mm := range t.Methods {
			if err := validateVisibility(t.Name, mm.Visibility); err != nil {
				return err
			}
		}
	}
	for i := range m.Extensions {
		e := &m.Extensions[i]
		if err := errors.ValidateTypeName(e.Name); err != nil {
			return err
		}
		if seen[e.Name] {
			return errors.New(errors.ErrCodeInvalidModel, "duplicate type %q", e.Name)
		}
		seen[e.Name] = true
	}

	for i := range m.Types {
		t := &m.Types[i]
		if t.Extends != "" && !seen[t.Extends] {
			return errors.New(errors.ErrCodeInvalidModel, "type %q extends unknown type %q", t.Name, t.Extends)
		}
		for _, in := range t.Implements {
			if !seen[in] {
				return errors.New(errors.ErrCodeInvalidModel, "type %q implements unknown type %q", t.Name, in)
			}
		}
	}
	return nil
}

func validateVisibility(typeName, v string) error {
	switch v {
	case "", "public", "protected", "private":
		return nil
	}
	return errors.New(errors.ErrCodeInvalidModel, "type %q: unknown visibility %q", typeName, v)
}

// Hash returns a stable fingerprint of the model for cache keying.
func (m *Model) Hash() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal model: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
