// Package bundler combines a multi-file OpenAPI 3.x description into one
// self-contained document.
//
// # Overview
//
// Bundling runs in two passes over an immutable [node.Node] tree:
//
//  1. Collection. The entry document is walked depth-first. Every external
//     $ref is resolved against the directory of the file containing it and
//     its target is loaded through a [DocumentCache]. References to
//     components (schemas, parameters, responses, ...) are stored in a
//     [ComponentTable] after their own references have been rewritten.
//  2. Resolution. The table is merged into the entry document's components
//     section, where names the entry document already defines win. A final
//     pass points every component reference at its canonical local form
//     ("#/components/schemas/Pet") and inlines every other external
//     reference, such as path items.
//
// Cycles are detected per resolution path with a [VisitedSet], so a
// component reached through two branches (a diamond) is emitted once and
// references that loop back are rewritten rather than followed.
//
// # Quick Start
//
//	result, err := bundler.BundleWithOptions(
//	    bundler.WithEntryFile("api/openapi.yaml"),
//	    bundler.WithOutputFile("dist/openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Fprintln(os.Stderr, d.Message)
//	}
//
// Or, for repeated runs with one configuration:
//
//	b := bundler.New()
//	b.Mode = bundler.ModeStrict
//	result, err := b.Bundle("api/openapi.yaml", "")
//
// # Reference Forms
//
//   - "./x.yaml#/..." and "../x.yaml#/..." resolve against the current file.
//   - References starting with a project-root prefix (default
//     "proto/openapi/") resolve against the project root.
//   - "#/..." is local. In the entry document, shorthand such as "#/Pet" is
//     pointed at the merged component named Pet.
//   - URL references ("https://...") are left as written and reported with
//     kind unsupported-scheme.
//
// If a pointer does not exist in its target file, "components/schemas/"
// followed by its last segment is tried before reporting it missing.
//
// # Strict and Lenient Modes
//
// In [ModeLenient] (the default) missing files, missing pointers and cycles
// become [Diagnostic] values and the offending $ref is kept. In [ModeStrict]
// the first of them aborts the run with a *oaserrors.ReferenceError and no
// output is written. Parse errors and resource limits are always fatal.
//
// # Resource Limits
//
//   - MaxRefDepth: maximum reference chain length (default: 100)
//   - MaxCachedDocuments: maximum documents loaded per run (default: 100)
//   - MaxFileSize: maximum document size (default: 10MB)
package bundler
