// Package uml builds class diagrams from type metadata.
//
// The package turns descriptors of classes, interfaces, and extension
// modules into an attributed directed graph whose vertices carry
// Graphviz record labels. The heavy lifting is done by [DiagramBuilder],
// which recursively materializes a de-duplicated inheritance/realization
// graph, and [LabelRenderer], which renders each type's members into a
// multi-section record label under configurable visibility rules.
//
// # Architecture
//
// The components compose leaf-first:
//
//   - TypeResolver: normalizes free-text type names to display form
//   - ValueFormatter: renders runtime values as displayable literals
//   - escape: the record-label text grammar
//   - MemberFilter: visibility and declared-here-only policy
//   - DedupInterfaces: minimal interface edge set for a type
//   - LabelRenderer: full structured label text
//   - DiagramBuilder: orchestrates everything against a [graph.Graph]
//
// # Error handling
//
// Resolution failures (unresolvable parameter hints, ambiguous doc tags,
// unevaluable defaults) never surface as errors. They degrade to the
// documented sentinels «invalidClass», «unknown», or an omitted type, so
// a diagram is always produced. Only configuration mistakes (unknown
// option names) and explicit lookups of missing diagram entities fail.
//
// # Usage
//
//	b := uml.NewDiagramBuilder(provider, uml.Options{AddParents: true, ShowConstants: true})
//	if _, err := b.AddTypeByName("ArrayObject"); err != nil {
//	    return err
//	}
//	dot := render.ToDOT(b.Graph())
package uml
