package bundler

import (
	"slices"
	"sort"

	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
)

// ComponentKey identifies a component by category and name.
type ComponentKey struct {
	Category string
	Name     string
}

// Ref returns the canonical local reference, e.g. "#/components/schemas/Pet".
func (k ComponentKey) Ref() string {
	return pathutil.ComponentRef(k.Category, k.Name)
}

type categoryEntries struct {
	names []string
	nodes map[string]*node.Node
}

// ComponentTable holds components collected from external files, keyed by
// category and name in discovery order. The first writer of a name wins.
//
// A name is reserved before its fragment is resolved so that references
// cycling back to it can already be rewritten; [ComponentTable.Get] only
// reports filled entries.
type ComponentTable struct {
	categories map[string]*categoryEntries
}

// NewComponentTable returns an empty table.
func NewComponentTable() *ComponentTable {
	return &ComponentTable{categories: make(map[string]*categoryEntries)}
}

// Reserve claims key. It returns false if the name is already taken.
func (t *ComponentTable) Reserve(key ComponentKey) bool {
	entries, ok := t.categories[key.Category]
	if !ok {
		entries = &categoryEntries{nodes: make(map[string]*node.Node)}
		t.categories[key.Category] = entries
	}
	if _, taken := entries.nodes[key.Name]; taken {
		return false
	}
	entries.names = append(entries.names, key.Name)
	entries.nodes[key.Name] = nil
	return true
}

// Fill stores the resolved node for a reserved key.
func (t *ComponentTable) Fill(key ComponentKey, n *node.Node) {
	if entries, ok := t.categories[key.Category]; ok {
		if _, reserved := entries.nodes[key.Name]; reserved {
			entries.nodes[key.Name] = n
		}
	}
}

// Insert reserves and fills key in one step. It returns false, leaving the
// table unchanged, when the name is already taken.
func (t *ComponentTable) Insert(key ComponentKey, n *node.Node) bool {
	if !t.Reserve(key) {
		return false
	}
	t.Fill(key, n)
	return true
}

// Has reports whether the name is reserved or filled.
func (t *ComponentTable) Has(key ComponentKey) bool {
	entries, ok := t.categories[key.Category]
	if !ok {
		return false
	}
	_, ok = entries.nodes[key.Name]
	return ok
}

// Get returns the filled node for a component.
func (t *ComponentTable) Get(category, name string) (*node.Node, bool) {
	entries, ok := t.categories[category]
	if !ok {
		return nil, false
	}
	n := entries.nodes[name]
	return n, n != nil
}

// Names returns the names of a category in discovery order.
func (t *ComponentTable) Names(category string) []string {
	entries, ok := t.categories[category]
	if !ok {
		return nil
	}
	return slices.Clone(entries.names)
}

// Categories returns the non-empty categories, known ones in canonical
// order followed by any others alphabetically.
func (t *ComponentTable) Categories() []string {
	cats := make([]string, 0, len(t.categories))
	for c, entries := range t.categories {
		if len(entries.names) > 0 {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		ci, cj := pathutil.CategoryIndex(cats[i]), pathutil.CategoryIndex(cats[j])
		if ci != cj {
			return ci < cj
		}
		return cats[i] < cats[j]
	})
	return cats
}

// Len returns the number of filled components.
func (t *ComponentTable) Len() int {
	count := 0
	for _, entries := range t.categories {
		for _, n := range entries.nodes {
			if n != nil {
				count++
			}
		}
	}
	return count
}

// nodes returns the set of filled component nodes, used to recognize
// merged-in entries by identity.
func (t *ComponentTable) nodes() map[*node.Node]bool {
	set := make(map[*node.Node]bool)
	for _, entries := range t.categories {
		for _, n := range entries.nodes {
			if n != nil {
				set[n] = true
			}
		}
	}
	return set
}
