package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/storeman/graph-uml/pkg/errors"
)

const tomlModel = `
[options]
showProtected = true

[[types]]
name = "Shape"
kind = "interface"

[[types]]
name = "Circle"
implements = ["Shape"]

  [[types.properties]]
  name = "radius"
  visibility = "protected"
  default = 1.0

  [[types.methods]]
  name = "area"
  returns = "float"

[[notes]]
text = "geometry core"
on = "Shape"
`

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.toml")
	if err := os.WriteFile(path, []byte(tomlModel), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if len(m.Types) != 2 {
		t.Fatalf("len(Types) = %d, want 2", len(m.Types))
	}
	circle := m.Types[1]
	if circle.Name != "Circle" || len(circle.Implements) != 1 || circle.Implements[0] != "Shape" {
		t.Errorf("circle parsed wrong: %+v", circle)
	}
	if len(circle.Properties) != 1 || circle.Properties[0].Visibility != "protected" {
		t.Errorf("properties parsed wrong: %+v", circle.Properties)
	}
	if len(m.Notes) != 1 || m.Notes[0].On != "Shape" {
		t.Errorf("notes parsed wrong: %+v", m.Notes)
	}
	if m.Options["showProtected"] != true {
		t.Errorf("options parsed wrong: %+v", m.Options)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	data := `{"types": [{"name": "Foo", "kind": "class"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Types) != 1 || m.Types[0].Name != "Foo" {
		t.Errorf("json model parsed wrong: %+v", m.Types)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		ok    bool
	}{
		{
			name:  "valid",
			model: Model{Types: []TypeSpec{{Name: "A"}, {Name: "B", Extends: "A"}}},
			ok:    true,
		},
		{
			name:  "duplicate type name",
			model: Model{Types: []TypeSpec{{Name: "A"}, {Name: "A"}}},
		},
		{
			name:  "unknown kind",
			model: Model{Types: []TypeSpec{{Name: "A", Kind: "enum"}}},
		},
		{
			name:  "unknown extends target",
			model: Model{Types: []TypeSpec{{Name: "A", Extends: "Ghost"}}},
		},
		{
			name:  "unknown implements target",
			model: Model{Types: []TypeSpec{{Name: "A", Implements: []string{"Ghost"}}}},
		},
		{
			name: "bad visibility",
			model: Model{Types: []TypeSpec{{
				Name:       "A",
				Properties: []PropertySpec{{Name: "x", Visibility: "internal"}},
			}}},
		},
		{
			name:  "empty name",
			model: Model{Types: []TypeSpec{{Name: ""}}},
		},
		{
			name:  "record metacharacters in name",
			model: Model{Types: []TypeSpec{{Name: "A|B"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate = nil, want error")
			}
		})
	}
}

func TestHashIsStable(t *testing.T) {
	m := &Model{Types: []TypeSpec{{Name: "A"}}}

	h1, err := m.Hash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := m.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("hash should be stable for the same model")
	}

	m.Types = append(m.Types, TypeSpec{Name: "B"})
	h3, err := m.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Error("hash should change when the model changes")
	}
}
