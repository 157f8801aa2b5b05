package node

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// maxAliasDepth bounds alias expansion while converting yaml.Node trees.
const maxAliasDepth = 256

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("node: empty document")

// Format is a serialization format for documents.
type Format int

const (
	// FormatUnknown means the format could not be detected.
	FormatUnknown Format = iota
	// FormatYAML is YAML 1.2.
	FormatYAML
	// FormatJSON is JSON.
	FormatJSON
)

// String returns "yaml", "json" or "unknown".
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatUnknown, fmt.Errorf("node: unknown format %q (expected yaml or json)", s)
	}
}

// FormatFromPath detects the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// FormatFromContent detects JSON by a leading '{' or '['; anything else
// non-empty is YAML.
func FormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// DetectFormat prefers the path extension and falls back to content sniffing.
func DetectFormat(path string, data []byte) Format {
	if f := FormatFromPath(path); f != FormatUnknown {
		return f
	}
	return FormatFromContent(data)
}

// Decode parses YAML or JSON (JSON is valid YAML) into a Node.
func Decode(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromYAML(&doc)
}

// FromYAML converts a yaml.Node tree. Aliases are expanded and merge keys
// ("<<") are applied, so the result contains only the three node kinds.
func FromYAML(y *yaml.Node) (*Node, error) {
	return convert(y, 0)
}

func convert(y *yaml.Node, aliasDepth int) (*Node, error) {
	if y == nil {
		return nil, ErrEmptyDocument
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return convert(y.Content[0], aliasDepth)
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, fmt.Errorf("node: alias nesting exceeds %d at line %d", maxAliasDepth, y.Line)
		}
		return convert(y.Alias, aliasDepth+1)
	case yaml.ScalarNode:
		return convertScalar(y), nil
	case yaml.SequenceNode:
		items := make([]*Node, 0, len(y.Content))
		for _, c := range y.Content {
			item, err := convert(c, aliasDepth)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &Node{kind: KindSequence, items: items}, nil
	case yaml.MappingNode:
		return convertMapping(y, aliasDepth)
	}
	return nil, fmt.Errorf("node: unsupported yaml node kind %d at line %d", y.Kind, y.Line)
}

func convertScalar(y *yaml.Node) *Node {
	switch y.ShortTag() {
	case "!!int":
		return NewScalar(TypeInt, y.Value)
	case "!!float":
		return NewScalar(TypeFloat, y.Value)
	case "!!bool":
		return NewScalar(TypeBool, y.Value)
	case "!!null":
		return Null()
	default:
		return String(y.Value)
	}
}

func convertMapping(y *yaml.Node, aliasDepth int) (*Node, error) {
	b := NewMappingBuilder(len(y.Content) / 2)
	var merges []*Node
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if k.Kind == yaml.AliasNode && k.Alias != nil {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("node: non-scalar mapping key at line %d", k.Line)
		}
		value, err := convert(v, aliasDepth)
		if err != nil {
			return nil, err
		}
		if k.ShortTag() == "!!merge" {
			merges = append(merges, value)
			continue
		}
		b.Set(k.Value, value)
	}
	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, m := range merges {
		sources := []*Node{m}
		if m.IsSequence() {
			sources = m.items
		}
		for _, src := range sources {
			if !src.IsMapping() {
				return nil, fmt.Errorf("node: merge key value must be a mapping at line %d", y.Line)
			}
			for _, p := range src.pairs {
				if !b.Has(p.Key) {
					b.Set(p.Key, p.Value)
				}
			}
		}
	}
	return b.Build(), nil
}
