package node

import (
	"net/url"
	"strconv"
	"strings"
)

// ParsePointer splits a JSON Pointer fragment ("/a/b", "a/b") into
// unescaped segments. An empty fragment or "/" yields an empty, non-nil
// slice that addresses the whole document.
//
// The fragment is percent-decoded once as a whole before it is split
// (RFC 6901 section 6), so "%2F" separates segments and a key spelled
// "%20" in the document is written "%2520" in the reference. A fragment
// that is not valid percent-encoding is used as written.
func ParsePointer(fragment string) []string {
	if decoded, err := url.PathUnescape(fragment); err == nil {
		fragment = decoded
	}
	fragment = strings.TrimPrefix(fragment, "/")
	if fragment == "" {
		return []string{}
	}
	parts := strings.Split(fragment, "/")
	for i, part := range parts {
		parts[i] = UnescapeSegment(part)
	}
	return parts
}

// UnescapeSegment reverses JSON Pointer escaping: "~1" is "/", "~0" is "~".
func UnescapeSegment(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// EscapeSegment applies JSON Pointer escaping to a single segment.
func EscapeSegment(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// FormatPointer joins segments into an escaped pointer without a leading "/".
func FormatPointer(segments []string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = EscapeSegment(s)
	}
	return strings.Join(escaped, "/")
}

// Lookup walks segments from root. Mapping segments are keys; sequence
// segments are non-negative decimal indexes.
func Lookup(root *Node, segments []string) (*Node, bool) {
	current := root
	for _, seg := range segments {
		switch current.Kind() {
		case KindMapping:
			next, ok := current.Get(seg)
			if !ok {
				return nil, false
			}
			current = next
		case KindSequence:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false
			}
			next, ok := current.Index(i)
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, current != nil
}
