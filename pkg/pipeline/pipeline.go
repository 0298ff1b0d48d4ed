// Package pipeline provides the load → build → render pipeline for
// graph-uml.
//
// The pipeline turns a declarative type model into rendered diagram
// artifacts in three stages:
//
//  1. Build: materialize the diagram graph from the model's metadata
//  2. Emit: serialize the graph to DOT
//  3. Render: lay out and rasterize the DOT (SVG, PNG)
//
// Both the CLI and the HTTP server run pipelines through a [Runner], so
// caching and logging behave identically in every entry point. Rendered
// artifacts are cached by content hash: the key binds the model
// fingerprint, the effective diagram options, and the format.
package pipeline

import (
	"maps"
	"time"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/graph"
	"github.com/storeman/graph-uml/pkg/model"
	"github.com/storeman/graph-uml/pkg/uml"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Options configures one pipeline execution.
type Options struct {
	// Model is the type model to diagram. Required.
	Model *model.Model

	// Types are the type names to add. Empty means every type in the
	// model, in model order.
	Types []string

	// Extensions are the extension module names to add. Empty means
	// every extension in the model.
	Extensions []string

	// Component optionally restricts the output to the connected
	// component containing the named type.
	Component string

	// Overrides are diagram options layered over the model's own
	// options section, in string-keyed form.
	Overrides map[string]any

	// Formats are the artifact formats to produce. Empty means SVG.
	Formats []string

	// TTL overrides DefaultTTL for cached artifacts when positive.
	TTL time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Model == nil {
		return errors.New(errors.ErrCodeInvalidModel, "no model given")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be svg, png, dot, or json)", f)
		}
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

// DiagramOptions resolves the effective diagram options: the model's
// options section with the per-call overrides layered on top. Unknown
// option names fail here, before any graph work happens.
func (o *Options) DiagramOptions() (uml.Options, error) {
	merged := make(map[string]any)
	maps.Copy(merged, o.Model.Options)
	maps.Copy(merged, o.Overrides)
	return uml.OptionsFromMap(merged)
}

// Result holds the outcome of one pipeline execution.
type Result struct {
	Graph     *graph.Graph
	DOT       string
	Artifacts map[string][]byte // format → bytes
	ModelHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records per-stage timings and graph size.
type Stats struct {
	BuildTime   time.Duration
	RenderTime  time.Duration
	VertexCount int
	EdgeCount   int
}

// CacheInfo records which artifacts were served from cache.
type CacheInfo struct {
	Hits map[string]bool // format → served from cache
}
