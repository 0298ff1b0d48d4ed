package cli

import (
	"slices"
	"testing"

	"github.com/storeman/graph-uml/pkg/pipeline"
	"github.com/storeman/graph-uml/pkg/uml"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "Account", []string{"Account"}},
		{"multiple", "Account,User", []string{"Account", "User"}},
		{"spaces trimmed", " Account , User ", []string{"Account", "User"}},
		{"empty entries dropped", "Account,,User,", []string{"Account", "User"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlagOverrides(t *testing.T) {
	// Unchanged flags produce no overrides, so the model file's own
	// options section applies.
	opts := &renderOpts{}
	if got := opts.flagOverrides(); len(got) != 0 {
		t.Errorf("flagOverrides() = %v, want empty", got)
	}

	opts = &renderOpts{inherited: true, hideConstants: true, showProtected: true}
	got := opts.flagOverrides()
	if got[uml.OptionOnlySelf] != false {
		t.Error("--inherited should disable onlySelf")
	}
	if got[uml.OptionShowConstants] != false {
		t.Error("--hide-constants should disable showConstants")
	}
	if got[uml.OptionShowProtected] != true {
		t.Error("--show-protected should enable showProtected")
	}
	if _, ok := got[uml.OptionShowPrivate]; ok {
		t.Error("untouched flag should not appear in overrides")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"explicit single output", "out.svg", "model.toml", "svg", false, "out.svg"},
		{"derived from input", "", "model.toml", "svg", false, "model.svg"},
		{"derived nested input", "", "dir/model.toml", "png", false, "dir/model.png"},
		{"multi uses base", "diagram", "model.toml", "png", true, "diagram.png"},
		{"multi strips format ext", "diagram.svg", "model.toml", "png", true, "diagram.png"},
		{"multi no output", "", "model.toml", "dot", true, "model.dot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multi); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
					tt.output, tt.input, tt.format, tt.multi, got, tt.want)
			}
		})
	}
}

func TestCachedAll(t *testing.T) {
	result := &pipeline.Result{CacheInfo: pipeline.CacheInfo{Hits: map[string]bool{
		"svg": true,
		"png": false,
	}}}

	if cachedAll(result, []string{"svg", "png"}) {
		t.Error("one miss should report not-cached")
	}
	if !cachedAll(result, []string{"svg"}) {
		t.Error("all hits should report cached")
	}
	if cachedAll(result, nil) {
		t.Error("no formats should report not-cached")
	}
}
