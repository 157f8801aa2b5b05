package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ToYAML converts n into a yaml.Node tree that preserves mapping order.
func ToYAML(n *Node) *yaml.Node {
	switch n.Kind() {
	case KindSequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.items))}
		for _, item := range n.items {
			out.Content = append(out.Content, ToYAML(item))
		}
		return out
	case KindMapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.pairs))}
		for _, p := range n.pairs {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				ToYAML(p.Value),
			)
		}
		return out
	case KindScalar:
		return scalarToYAML(n)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func scalarToYAML(n *Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.ScalarNode, Value: n.text}
	switch n.stype {
	case TypeInt:
		out.Tag = "!!int"
	case TypeFloat:
		out.Tag = "!!float"
	case TypeBool:
		out.Tag = "!!bool"
	case TypeNull:
		out.Tag = "!!null"
		out.Value = "null"
	default:
		out.Tag = "!!str"
		if strings.Contains(n.text, "\n") {
			out.Style = yaml.LiteralStyle
		}
	}
	return out
}

// MarshalYAML serializes n as YAML in insertion order.
func MarshalYAML(n *Node) ([]byte, error) {
	if n == nil {
		return nil, ErrEmptyDocument
	}
	return yaml.Marshal(ToYAML(n))
}

// MarshalJSON serializes n as JSON in insertion order. A non-empty indent
// produces indented output with a trailing newline.
func MarshalJSON(n *Node, indent string) ([]byte, error) {
	if n == nil {
		return nil, ErrEmptyDocument
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	if indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("node: indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Marshal serializes n in the given format; FormatUnknown means YAML.
func Marshal(n *Node, f Format) ([]byte, error) {
	if f == FormatJSON {
		return MarshalJSON(n, "  ")
	}
	return MarshalYAML(n)
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Kind() {
	case KindMapping:
		buf.WriteByte('{')
		for i, p := range n.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, p.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindScalar:
		return writeJSONScalar(buf, n)
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, n *Node) error {
	switch n.stype {
	case TypeNull:
		buf.WriteString("null")
	case TypeBool:
		b, err := strconv.ParseBool(strings.ToLower(n.text))
		if err != nil {
			return writeJSONString(buf, n.text)
		}
		buf.WriteString(strconv.FormatBool(b))
	case TypeInt:
		clean := strings.ReplaceAll(n.text, "_", "")
		if v, err := strconv.ParseInt(clean, 0, 64); err == nil {
			buf.WriteString(strconv.FormatInt(v, 10))
			return nil
		}
		if json.Valid([]byte(clean)) {
			buf.WriteString(clean)
			return nil
		}
		return writeJSONString(buf, n.text)
	case TypeFloat:
		clean := strings.ReplaceAll(n.text, "_", "")
		if json.Valid([]byte(clean)) {
			buf.WriteString(clean)
			return nil
		}
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			// .inf and .nan have no JSON number form
			return writeJSONString(buf, n.text)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		return writeJSONString(buf, n.text)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("node: encoding string: %w", err)
	}
	// Encode terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
