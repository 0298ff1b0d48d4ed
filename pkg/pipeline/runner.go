package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/storeman/graph-uml/pkg/cache"
	"github.com/storeman/graph-uml/pkg/graph"
	"github.com/storeman/graph-uml/pkg/model"
	"github.com/storeman/graph-uml/pkg/observability"
	"github.com/storeman/graph-uml/pkg/render"
	"github.com/storeman/graph-uml/pkg/uml"
)

// Runner executes pipelines with caching. It is stateless except for
// the cache and logger, so one Runner can serve many executions with
// different options. Graph mutation happens inside each execution on a
// fresh builder; nothing is shared between calls.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete build → emit → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx)
	g, err := r.Build(ctx, opts)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	observability.Pipeline().OnBuildComplete(ctx, g.VertexCount(), g.EdgeCount(), time.Since(buildStart), nil)

	result := &Result{
		Graph:     g,
		DOT:       render.ToDOT(g),
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			BuildTime:   time.Since(buildStart),
			VertexCount: g.VertexCount(),
			EdgeCount:   g.EdgeCount(),
		},
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
	}
	if result.ModelHash, err = opts.Model.Hash(); err != nil {
		return nil, err
	}

	r.Logger.Info("built diagram",
		"vertices", result.Stats.VertexCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		data, hit, err := r.renderArtifact(ctx, result, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build materializes the diagram graph for the given options without
// rendering anything.
func (r *Runner) Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	if opts.Model == nil {
		return nil, fmt.Errorf("no model given")
	}
	registry, err := model.NewRegistry(opts.Model)
	if err != nil {
		return nil, err
	}
	diagOpts, err := opts.DiagramOptions()
	if err != nil {
		return nil, err
	}

	builder := uml.NewDiagramBuilder(registry, diagOpts)

	types := opts.Types
	if len(types) == 0 {
		types = registry.TypeNames()
	}
	for _, name := range types {
		if _, err := builder.AddTypeByName(name); err != nil {
			return nil, err
		}
	}

	extensions := opts.Extensions
	if len(extensions) == 0 && len(opts.Types) == 0 {
		extensions = registry.ExtensionNames()
	}
	for _, name := range extensions {
		if _, err := builder.AddExtensionByName(name); err != nil {
			return nil, err
		}
	}

	for _, note := range opts.Model.Notes {
		if note.On == "" {
			builder.AddNote(note.Text)
			continue
		}
		if _, err := builder.AddNoteTo(note.Text, note.On); err != nil {
			// Note targets can fall outside a partial type selection.
			r.Logger.Warn("skipping note", "target", note.On, "err", err)
		}
	}

	if opts.Component != "" {
		return builder.ExtractComponentContaining(opts.Component)
	}
	return builder.Graph(), nil
}

// renderArtifact produces one output format, consulting the artifact
// cache for the expensive layout formats.
func (r *Runner) renderArtifact(ctx context.Context, result *Result, format string, opts Options) ([]byte, bool, error) {
	switch format {
	case FormatDOT:
		return []byte(result.DOT), false, nil
	case FormatJSON:
		data, err := graph.MarshalDiagram(result.Graph)
		return data, false, err
	}

	key := cache.ArtifactKey(result.ModelHash, format, artifactKeyOpts(opts))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, format)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = render.RenderSVG(ctx, result.DOT)
	case FormatPNG:
		data, err = render.RenderPNG(ctx, result.DOT)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// artifactKeyOpts is the option slice that participates in artifact
// cache keys. Everything that changes the rendered output must be here.
func artifactKeyOpts(opts Options) map[string]any {
	return map[string]any{
		"types":      opts.Types,
		"extensions": opts.Extensions,
		"component":  opts.Component,
		"overrides":  opts.Overrides,
	}
}
