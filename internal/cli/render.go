package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storeman/graph-uml/pkg/cache"
	"github.com/storeman/graph-uml/pkg/model"
	"github.com/storeman/graph-uml/pkg/pipeline"
	"github.com/storeman/graph-uml/pkg/uml"
)

// renderOpts holds the command-line flags for the render command.
// These options control type selection, member visibility, and output
// formats.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	types      []string // type names to diagram; empty means all
	extensions []string // extension module names to diagram
	component  string   // restrict output to the component containing this type
	formats    []string // output formats: svg, png, dot, json

	inherited     bool // include members declared by ancestors
	showPrivate   bool // include private members
	showProtected bool // include protected members
	hideConstants bool // omit the constants section
	noParents     bool // do not recurse into ancestors and interfaces

	pick    bool // interactively pick the types to diagram
	noCache bool // bypass the artifact cache
}

// newRenderCmd creates the render command for generating diagrams.
// It reads a model file (TOML or JSON), builds the class graph, and
// writes one file per requested format.
//
// Default settings:
//   - format: svg
//   - all types and extensions in the model
//   - own members only, constants shown, parents followed,
//     private/protected hidden
func newRenderCmd() *cobra.Command {
	var typesStr, extensionsStr, formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a class diagram from a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.types = splitList(typesStr)
			opts.extensions = splitList(extensionsStr)
			opts.formats = splitList(formatsStr)
			if len(opts.formats) == 0 {
				opts.formats = []string{pipeline.FormatSVG}
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&typesStr, "type", "t", "", "type name(s) to diagram (comma-separated; default all)")
	cmd.Flags().StringVarP(&extensionsStr, "extension", "e", "", "extension module(s) to diagram (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.component, "component", "", "restrict output to the component containing this type")
	cmd.Flags().BoolVar(&opts.inherited, "inherited", false, "include members declared by ancestors")
	cmd.Flags().BoolVar(&opts.showPrivate, "show-private", false, "include private members")
	cmd.Flags().BoolVar(&opts.showProtected, "show-protected", false, "include protected members")
	cmd.Flags().BoolVar(&opts.hideConstants, "hide-constants", false, "omit the constants section")
	cmd.Flags().BoolVar(&opts.noParents, "no-parents", false, "do not recurse into ancestors and interfaces")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "interactively pick the types to diagram")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// splitList parses a comma-separated flag value into a slice,
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// flagOverrides translates the visibility flags into diagram option
// overrides. Only flags the user changed from their default appear, so
// the model file's own options section still applies underneath.
func (o *renderOpts) flagOverrides() map[string]any {
	overrides := make(map[string]any)
	if o.inherited {
		overrides[uml.OptionOnlySelf] = false
	}
	if o.showPrivate {
		overrides[uml.OptionShowPrivate] = true
	}
	if o.showProtected {
		overrides[uml.OptionShowProtected] = true
	}
	if o.hideConstants {
		overrides[uml.OptionShowConstants] = false
	}
	if o.noParents {
		overrides[uml.OptionAddParents] = false
	}
	return overrides
}

// runRender loads the model, builds the diagram through the pipeline,
// and writes each requested format next to the input file (or under
// --output).
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	m, err := model.Load(input)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	logger.Debugf("Loaded model: %d types, %d extensions", len(m.Types), len(m.Extensions))

	if opts.pick {
		types, extensions, err := pickTypes(m, opts.types)
		if err != nil {
			return err
		}
		if len(types) == 0 && len(extensions) == 0 {
			printInfo("No types selected")
			return nil
		}
		opts.types, opts.extensions = types, extensions
	}

	runner := pipeline.NewRunner(artifactCache(ctx, opts.noCache), logger)

	spin := newSpinnerWithContext(ctx, "Rendering diagram")
	spin.Start()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Model:      m,
		Types:      opts.types,
		Extensions: opts.extensions,
		Component:  opts.component,
		Overrides:  opts.flagOverrides(),
		Formats:    opts.formats,
	})
	if err != nil {
		spin.StopWithError("Rendering failed")
		return err
	}
	spin.Stop()
	p.done(fmt.Sprintf("Built diagram: %d classes, %d relations",
		result.Stats.VertexCount, result.Stats.EdgeCount))

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, cachedAll(result, opts.formats))
	return nil
}

// artifactCache returns the cache backend for CLI renders: the file
// cache under the user cache directory, or a null cache with --no-cache
// or when the directory is unavailable.
func artifactCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		loggerFromContext(ctx).Debugf("No cache directory: %v", err)
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warnf("Cache disabled: %v", err)
		return cache.NewNullCache()
	}
	return c
}

// outputPath derives the file path for one format. With multiple
// formats the format becomes the extension of a shared base path.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// cachedAll reports whether every requested artifact came from cache.
func cachedAll(result *pipeline.Result, formats []string) bool {
	for _, f := range formats {
		if !result.CacheInfo.Hits[f] {
			return false
		}
	}
	return len(formats) > 0
}
