package pathutil

import (
	"strconv"
	"strings"
)

// PointerBuilder provides incremental JSON Pointer construction.
// Segments are escaped on Push; the full string is only materialized when
// String() is called.
type PointerBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a segment to the pointer.
func (p *PointerBuilder) Push(segment string) {
	if strings.ContainsAny(segment, "~/") {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
	}
	p.segments = append(p.segments, segment)
	p.length += 1 + len(segment)
}

// PushIndex adds a sequence index segment.
func (p *PointerBuilder) PushIndex(i int) {
	p.Push(strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= 1 + len(last)
}

// Depth returns the number of segments.
func (p *PointerBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the pointer, e.g. "/paths/~1pets/get". The empty
// string addresses the whole document.
func (p *PointerBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
