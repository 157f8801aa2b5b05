// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides path and reference helpers shared by the
// bundler, the CLI and the MCP server.
//
// # Location Tracking
//
// [PointerBuilder] uses push/pop semantics to track where a traversal is
// inside a document without allocating intermediate strings. The JSON
// Pointer is only materialized when a diagnostic needs it:
//
//	loc := pathutil.Get()
//	defer pathutil.Put(loc)
//
//	loc.Push("paths")
//	loc.Push("/pets")
//	// ... recurse ...
//	loc.Pop()
//
//	fmt.Println(loc.String()) // "/paths/~1pets"
//
// # Component References
//
// [ComponentRef] builds the canonical local reference for a component,
// escaping the name as a pointer segment:
//
//	ref := pathutil.ComponentRef(pathutil.CategorySchemas, "Pet") // "#/components/schemas/Pet"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] cleans an output path, rejects symlinks and refuses
// to overwrite any of the protected input files.
package pathutil
