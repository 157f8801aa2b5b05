// Package node provides a format-independent, immutable tree for parsed
// YAML and JSON documents.
//
// A [Node] is exactly one of three variants: a scalar, a sequence, or an
// insertion-ordered mapping. Documents are decoded with [Decode], which
// bridges from go.yaml.in/yaml/v4 and expands anchors, aliases and merge
// keys. [MarshalYAML] and [MarshalJSON] write the tree back out without
// re-sorting mapping keys, so generated files stay reviewable.
//
// Traversals implement [Visitor], which has one method per variant:
//
//	count, err := node.Accept[int](doc, myCounter{})
//
// JSON Pointer helpers ([ParsePointer], [Lookup], [FormatPointer]) follow
// RFC 6901 escaping.
package node
