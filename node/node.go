package node

import "strconv"

// Kind identifies which of the three variants a Node holds.
type Kind uint8

const (
	// KindScalar is a leaf value (string, number, bool or null).
	KindScalar Kind = iota + 1
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindMapping is an insertion-ordered string-keyed map of nodes.
	KindMapping
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ScalarType is the format-neutral type of a scalar value.
type ScalarType uint8

const (
	TypeString ScalarType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeNull
)

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *Node
}

// Node is an immutable parsed document fragment.
//
// Nodes are never modified after construction. Operations that "change" a
// node, such as [Node.With], return a new Node that shares unchanged
// children with the original.
type Node struct {
	kind  Kind
	stype ScalarType
	text  string
	items []*Node
	pairs []Pair
	index map[string]int
}

// NewScalar returns a scalar of the given type with its literal text.
func NewScalar(t ScalarType, text string) *Node {
	return &Node{kind: KindScalar, stype: t, text: text}
}

// String returns a string scalar.
func String(s string) *Node {
	return NewScalar(TypeString, s)
}

// Null returns a null scalar.
func Null() *Node {
	return NewScalar(TypeNull, "null")
}

// NewSequence returns a sequence holding items. The slice is copied.
func NewSequence(items ...*Node) *Node {
	cp := make([]*Node, len(items))
	copy(cp, items)
	return &Node{kind: KindSequence, items: cp}
}

// NewMapping returns a mapping holding pairs in order. A repeated key
// replaces the earlier value in its original position.
func NewMapping(pairs ...Pair) *Node {
	b := NewMappingBuilder(len(pairs))
	for _, p := range pairs {
		b.Set(p.Key, p.Value)
	}
	return b.Build()
}

// Kind returns the node's variant. A nil node has kind 0.
func (n *Node) Kind() Kind {
	if n == nil {
		return 0
	}
	return n.kind
}

// IsScalar reports whether n is a scalar.
func (n *Node) IsScalar() bool { return n.Kind() == KindScalar }

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool { return n.Kind() == KindSequence }

// IsMapping reports whether n is a mapping.
func (n *Node) IsMapping() bool { return n.Kind() == KindMapping }

// ScalarType returns the scalar type. It is TypeString for non-scalars.
func (n *Node) ScalarType() ScalarType {
	if !n.IsScalar() {
		return TypeString
	}
	return n.stype
}

// Text returns the literal text of a scalar, or "" for other kinds.
func (n *Node) Text() string {
	if !n.IsScalar() {
		return ""
	}
	return n.text
}

// StringValue returns the value of a string scalar.
func (n *Node) StringValue() (string, bool) {
	if !n.IsScalar() || n.stype != TypeString {
		return "", false
	}
	return n.text, true
}

// Len returns the number of items or pairs; 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.pairs)
	}
	return 0
}

// Items returns a copy of a sequence's items.
func (n *Node) Items() []*Node {
	if !n.IsSequence() {
		return nil
	}
	cp := make([]*Node, len(n.items))
	copy(cp, n.items)
	return cp
}

// Index returns the i-th item of a sequence.
func (n *Node) Index(i int) (*Node, bool) {
	if !n.IsSequence() || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Pairs returns a copy of a mapping's pairs in insertion order.
func (n *Node) Pairs() []Pair {
	if !n.IsMapping() {
		return nil
	}
	cp := make([]Pair, len(n.pairs))
	copy(cp, n.pairs)
	return cp
}

// Keys returns a mapping's keys in insertion order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	keys := make([]string, len(n.pairs))
	for i, p := range n.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Get returns the value stored under key in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsMapping() {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.pairs[i].Value, true
}

// Has reports whether a mapping contains key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// With returns a copy of the mapping with key set to v. An existing key
// keeps its position; a new key is appended.
func (n *Node) With(key string, v *Node) *Node {
	b := NewMappingBuilder(n.Len() + 1)
	for _, p := range n.pairs {
		b.Set(p.Key, p.Value)
	}
	b.Set(key, v)
	return b.Build()
}

// Without returns a copy of the mapping without the given keys.
func (n *Node) Without(keys ...string) *Node {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	b := NewMappingBuilder(n.Len())
	for _, p := range n.pairs {
		if !drop[p.Key] {
			b.Set(p.Key, p.Value)
		}
	}
	return b.Build()
}

// Ref returns the value of a mapping's "$ref" key when it is a string.
func (n *Node) Ref() (string, bool) {
	v, ok := n.Get("$ref")
	if !ok {
		return "", false
	}
	return v.StringValue()
}

// MappingBuilder accumulates pairs for a new mapping.
// The zero value is not usable; call NewMappingBuilder.
type MappingBuilder struct {
	pairs []Pair
	index map[string]int
}

// NewMappingBuilder returns a builder with room for capacity pairs.
func NewMappingBuilder(capacity int) *MappingBuilder {
	return &MappingBuilder{
		pairs: make([]Pair, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// Set adds key or replaces its value in place.
func (b *MappingBuilder) Set(key string, v *Node) {
	if i, ok := b.index[key]; ok {
		b.pairs[i].Value = v
		return
	}
	b.index[key] = len(b.pairs)
	b.pairs = append(b.pairs, Pair{Key: key, Value: v})
}

// Has reports whether key has been set.
func (b *MappingBuilder) Has(key string) bool {
	_, ok := b.index[key]
	return ok
}

// Len returns the number of pairs set so far.
func (b *MappingBuilder) Len() int {
	return len(b.pairs)
}

// Build returns the mapping. The builder must not be used afterwards.
func (b *MappingBuilder) Build() *Node {
	n := &Node{kind: KindMapping, pairs: b.pairs, index: b.index}
	b.pairs, b.index = nil, nil
	return n
}

// Equal reports whether a and b are structurally identical, including
// mapping key order.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.kind {
	case KindScalar:
		return a.stype == b.stype && a.text == b.text
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if a.pairs[i].Key != b.pairs[i].Key || !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// EquivalentUnordered reports whether a and b hold the same content when
// mapping key order is ignored.
func EquivalentUnordered(a, b *Node) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.kind {
	case KindMapping:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for _, p := range a.pairs {
			other, ok := b.Get(p.Key)
			if !ok || !EquivalentUnordered(p.Value, other) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !EquivalentUnordered(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}
