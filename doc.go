// Package oasbundle bundles multi-file OpenAPI 3.x descriptions into a single
// self-contained document.
//
// Large API descriptions are usually split across files: path items in one
// directory, shared schemas in another, common error responses in a
// project-wide location. Code generators and gateways want one document with
// only local references. oasbundle walks the $ref graph from an entry
// document, collects every referenced component into the entry document's
// components section and inlines everything else.
//
// # Overview
//
// The module consists of these packages:
//
//   - bundler: the two-pass bundling engine (collect, then resolve)
//   - node: a format-independent document tree with YAML and JSON codecs
//   - oaserrors: typed errors shared by every package
//
// and the oasbundle command (cmd/oasbundle) with bundle, refs and mcp
// subcommands.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasbundle
//
// Install the CLI:
//
//	go install github.com/erraggy/oasbundle/cmd/oasbundle@latest
//
// # Quick Start
//
// Bundle a document and write the result:
//
//	import "github.com/erraggy/oasbundle/bundler"
//
//	result, err := bundler.BundleWithOptions(
//		bundler.WithEntryFile("proto/openapi/api.yaml"),
//		bundler.WithOutputFile("dist/api.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// Abort on the first broken reference instead of reporting it:
//
//	b := bundler.New()
//	b.Mode = bundler.ModeStrict
//	if _, err := b.Bundle("proto/openapi/api.yaml", "dist/api.json"); err != nil {
//		var refErr *oaserrors.ReferenceError
//		if errors.As(err, &refErr) {
//			fmt.Println("broken reference:", refErr.Ref)
//		}
//	}
//
// # Configuration
//
// The CLI and the MCP server read defaults from OASBUNDLE_* environment
// variables (PROJECT_ROOT, ROOT_PREFIXES, STRICT, MAX_REF_DEPTH,
// MAX_CACHED_DOCUMENTS, MAX_FILE_SIZE, LOG_LEVEL). Command-line flags take
// precedence. The library itself is configured only through the Bundler
// fields or the With* options.
//
// # Build Information
//
// [Version], [Commit] and [BuildTime] are set through -ldflags at release
// time and report "dev" and "unknown" in source builds.
package oasbundle
