// Package pkg provides the core libraries for graph-uml class diagram
// generation.
//
// # Overview
//
// graph-uml turns declarative type models into UML class diagrams. The
// pkg directory is organized around the data flow:
//
//	Model file (TOML/JSON)
//	         ↓
//	    [model] package (parse, validate, descriptor registry)
//	         ↓
//	    [uml] package (diagram construction: vertices, edges, record labels)
//	         ↓
//	    [graph] package (graph structure + serialization)
//	         ↓
//	    [render] package (DOT emission + Graphviz layout)
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Main Packages
//
// [uml] - Diagram construction. Resolves type names and doc-comment
// annotations, filters members by visibility options, de-duplicates
// transitive interface edges, and renders Graphviz record labels.
//
// [model] - The declarative model format and the metadata provider
// backing uml's descriptor lookups.
//
// [graph] - Directed graph with attributed vertices and edges,
// connected-component extraction, and a JSON/BSON serialization form.
//
// [render] - DOT emission and Graphviz-based SVG/PNG layout.
//
// [pipeline] - The build → emit → render pipeline shared by the CLI and
// the HTTP server, with artifact caching.
//
// # Infrastructure
//
// [cache] - Artifact cache backends: file (CLI), redis (server), null.
//
// [store] - Named diagram persistence: memory and MongoDB.
//
// [errors] - Structured error codes shared by the CLI and HTTP surfaces.
//
// [observability] - Optional instrumentation hooks for pipeline and
// cache events.
//
// # Quick Start
//
// Build and render a diagram from a model:
//
//	m, _ := model.Load("shapes.toml")
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Model:   m,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("shapes.svg", result.Artifacts[pipeline.FormatSVG], 0644)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/uml/...    # Specific package
//
// [uml]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/uml
// [model]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/model
// [graph]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/graph
// [render]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/cache
// [store]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/store
// [errors]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/errors
// [observability]: https://pkg.go.dev/github.com/storeman/graph-uml/pkg/observability
package pkg
