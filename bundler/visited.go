package bundler

import "slices"

// VisitedSet is the ordered set of reference identifiers on the current
// resolution path. It is immutable: [VisitedSet.With] returns an extended
// copy, so sibling branches never see each other's entries. A reference
// reached twice through different branches (a diamond) is therefore not a
// cycle; only re-entry along one path is.
type VisitedSet struct {
	ids []string
}

// NewVisitedSet returns a set holding ids in order.
func NewVisitedSet(ids ...string) VisitedSet {
	return VisitedSet{ids: slices.Clone(ids)}
}

// With returns a copy of the set with id appended.
func (v VisitedSet) With(id string) VisitedSet {
	ids := make([]string, len(v.ids), len(v.ids)+1)
	copy(ids, v.ids)
	return VisitedSet{ids: append(ids, id)}
}

// Contains reports whether id is on the path.
func (v VisitedSet) Contains(id string) bool {
	return slices.Contains(v.ids, id)
}

// Len returns the path length.
func (v VisitedSet) Len() int {
	return len(v.ids)
}

// Path returns a copy of the identifiers in visiting order.
func (v VisitedSet) Path() []string {
	return slices.Clone(v.ids)
}
