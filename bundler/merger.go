package bundler

import (
	"github.com/erraggy/oasbundle/node"
)

// Merge returns a copy of root whose components section contains every
// entry of table whose name root does not already define. Root-authored
// components always win. root itself is not modified.
func Merge(root *node.Node, table *ComponentTable) *node.Node {
	out, _ := mergeComponents(root, table, nil, NopLogger{})
	return out
}

// mergeComponents implements Merge. isAlias, when set, reports root
// entries that are nothing but a reference to the collected component of
// the same key; those are replaced by the collected content.
func mergeComponents(root *node.Node, table *ComponentTable, isAlias func(ComponentKey, *node.Node) bool, log Logger) (*node.Node, int) {
	comps, ok := root.Get("components")
	if !ok || !comps.IsMapping() {
		comps = node.NewMapping()
	}

	merged := 0
	cb := node.NewMappingBuilder(comps.Len() + len(table.Categories()))
	for _, p := range comps.Pairs() {
		cb.Set(p.Key, p.Value)
	}
	for _, category := range table.Categories() {
		existing, _ := comps.Get(category)
		var pairs []node.Pair
		if existing.IsMapping() {
			pairs = existing.Pairs()
		}
		eb := node.NewMappingBuilder(len(pairs))
		for _, p := range pairs {
			eb.Set(p.Key, p.Value)
		}
		for _, name := range table.Names(category) {
			v, ok := table.Get(category, name)
			if !ok {
				continue
			}
			if current, exists := existing.Get(name); exists {
				key := ComponentKey{Category: category, Name: name}
				if isAlias == nil || !isAlias(key, current) {
					log.Debug("root component kept", "category", category, "name", name)
					continue
				}
			}
			eb.Set(name, v)
			merged++
		}
		cb.Set(category, eb.Build())
	}
	return root.With("components", cb.Build()), merged
}

// merge folds the collected table into root.
func (s *session) merge(root *node.Node) *node.Node {
	st := s.rootState()
	defer st.release()
	isAlias := func(key ComponentKey, current *node.Node) bool {
		raw, ok := current.Ref()
		if !ok || current.Len() != 1 {
			return false
		}
		ref := s.resolveRef(raw, st)
		if ref.IsLocal() || ref.Unsupported {
			return false
		}
		return s.index[ref.ID()] == key
	}
	out, merged := mergeComponents(root, s.table, isAlias, s.log)
	s.stats.ComponentsMerged = merged
	s.merged = s.table.nodes()
	s.mergedRoot = out
	return out
}
