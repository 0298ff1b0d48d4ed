package uml

import "testing"

func TestDisplayable(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		vis  Visibility
		want bool
	}{
		{"public always", Options{}, VisibilityPublic, true},
		{"bare callable treated as public", Options{}, Visibility(""), true},
		{"protected hidden by default", Options{}, VisibilityProtected, false},
		{"protected shown when enabled", Options{ShowProtected: true}, VisibilityProtected, true},
		{"private hidden by default", Options{ShowProtected: true}, VisibilityPrivate, false},
		{"private shown when enabled", Options{ShowPrivate: true}, VisibilityPrivate, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMemberFilter(tt.opts)
			if got := f.Displayable(tt.vis); got != tt.want {
				t.Errorf("Displayable(%q) = %v, want %v", tt.vis, got, tt.want)
			}
		})
	}
}

func TestOwnMember(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		declaredBy string
		current    string
		want       bool
	}{
		{"onlySelf off shows everything", Options{}, "Base", "Child", true},
		{"own member passes", Options{OnlySelf: true}, "Child", "Child", true},
		{"inherited member suppressed", Options{OnlySelf: true}, "Base", "Child", false},
		{"no declaring type always passes", Options{OnlySelf: true}, "", "Child", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMemberFilter(tt.opts)
			if got := f.OwnMember(tt.declaredBy, tt.current); got != tt.want {
				t.Errorf("OwnMember(%q, %q) = %v, want %v", tt.declaredBy, tt.current, got, tt.want)
			}
		})
	}
}

func TestOwnConstant(t *testing.T) {
	parent := &TypeDescriptor{
		Name:      "Base",
		Constants: map[string]any{"MAX": 10, "MODE": "strict"},
	}

	tests := []struct {
		name   string
		opts   Options
		cName  string
		value  any
		parent *TypeDescriptor
		want   bool
	}{
		{"onlySelf off shows everything", Options{}, "MAX", 10, parent, true},
		{"root type shows everything", Options{OnlySelf: true}, "MAX", 10, nil, true},
		{"same value treated as inherited", Options{OnlySelf: true}, "MAX", 10, parent, false},
		{"different value is an override", Options{OnlySelf: true}, "MAX", 99, parent, true},
		{"name absent from parent", Options{OnlySelf: true}, "MIN", 0, parent, true},
		{"deep equality applies", Options{OnlySelf: true}, "MODE", "strict", parent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMemberFilter(tt.opts)
			if got := f.OwnConstant(tt.cName, tt.value, tt.parent); got != tt.want {
				t.Errorf("OwnConstant(%q, %v) = %v, want %v", tt.cName, tt.value, got, tt.want)
			}
		})
	}
}
