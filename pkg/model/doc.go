// Package model loads declarative type-hierarchy models and serves them
// as diagram metadata.
//
// A model file (TOML or JSON) describes classes, interfaces, and
// extension modules: their members, doc comments, and relationships.
// [Load] decodes the file, [NewRegistry] validates it and turns it into
// a [Registry] implementing [uml.MetadataProvider].
//
// The registry does the metadata-shaping work the diagram core relies
// on: interface sets are expanded to their full transitive closure in a
// stable order, ancestor members are merged into each descriptor with
// their declaring type recorded, and constants are inherited down the
// parent chain. Descriptors are built once per name and cached; they are
// read-only from the core's point of view.
package model
