package bundler

import (
	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
)

// resolver rewrites references so a document is valid inside the bundle.
// It runs on every collected component fragment and, as the final pass, on
// the merged entry document.
//
// Component references become canonical local references. Every other
// external reference is replaced by its target, resolved against the
// target's own file. Unchanged subtrees are shared, not copied.
type resolver struct {
	s *session
}

// resolve runs the final pass over the merged entry document.
func (r *resolver) resolve(doc *node.Node) (*node.Node, error) {
	st := r.s.rootState()
	defer st.release()
	return r.rewrite(doc, st, rootSlot)
}

func (r *resolver) rewrite(n *node.Node, st walkState, sl slot) (*node.Node, error) {
	return node.Accept[*node.Node](n, rewriteVisitor{r: r, st: st, sl: sl})
}

type rewriteVisitor struct {
	r  *resolver
	st walkState
	sl slot
}

func (v rewriteVisitor) VisitScalar(n *node.Node) (*node.Node, error) {
	return n, nil
}

func (v rewriteVisitor) VisitSequence(n *node.Node) (*node.Node, error) {
	items := n.Items()
	child := childSlot(v.sl, "")
	changed := false
	for i, item := range items {
		v.st.loc.PushIndex(i)
		out, err := v.r.rewrite(item, v.st, child)
		v.st.loc.Pop()
		if err != nil {
			return nil, err
		}
		if out != item {
			items[i] = out
			changed = true
		}
	}
	if !changed {
		return n, nil
	}
	return node.NewSequence(items...), nil
}

func (v rewriteVisitor) VisitMapping(n *node.Node) (*node.Node, error) {
	// Merged-in components were resolved against their own files already.
	if v.r.s.merged[n] {
		return n, nil
	}
	if raw, ok := n.Ref(); ok {
		return v.r.rewriteRef(n, raw, v.st, v.sl)
	}
	return v.r.rewriteChildren(n, v.st, v.sl)
}

func (r *resolver) rewriteChildren(n *node.Node, st walkState, sl slot) (*node.Node, error) {
	pairs := n.Pairs()
	b := node.NewMappingBuilder(len(pairs))
	changed := false
	for _, p := range pairs {
		st.loc.Push(p.Key)
		out, err := r.rewrite(p.Value, st, childSlot(sl, p.Key))
		st.loc.Pop()
		if err != nil {
			return nil, err
		}
		if out != p.Value {
			changed = true
		}
		b.Set(p.Key, out)
	}
	if !changed {
		return n, nil
	}
	return b.Build(), nil
}

func (r *resolver) rewriteRef(n *node.Node, raw string, st walkState, sl slot) (*node.Node, error) {
	ref := r.s.resolveRef(raw, st)
	if ref.Unsupported {
		if err := r.s.report(unsupportedSchemeDiagnostic(ref, st)); err != nil {
			return nil, err
		}
		return r.rewriteChildren(n, st, sl)
	}
	if ref.IsLocal() {
		return r.normalizeLocal(n, ref, st, sl)
	}
	if key, ok := r.s.promoted[ref.ID()]; ok {
		return r.pointTo(n, key, st, sl)
	}
	if _, ok := classify(ref, sl); ok {
		key, found := r.s.index[ref.ID()]
		if !found {
			// reported while collecting; leave the reference as written
			return r.rewriteChildren(n, st, sl)
		}
		return r.pointTo(n, key, st, sl)
	}
	return r.splice(n, ref, st, sl)
}

// pointTo replaces the $ref of n with the canonical reference of key.
func (r *resolver) pointTo(n *node.Node, key ComponentKey, st walkState, sl slot) (*node.Node, error) {
	out, err := r.rewriteChildren(n, st, sl)
	if err != nil {
		return nil, err
	}
	r.s.stats.RefsRewritten++
	return out.With("$ref", node.String(key.Ref())), nil
}

// splice replaces n with the resolved target of ref. Keys of the target come
// first; sibling keys of the original $ref mapping override them.
func (r *resolver) splice(n *node.Node, ref Reference, st walkState, sl slot) (*node.Node, error) {
	cyclic, err := r.s.cyclic(ref, st)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return r.rewriteChildren(n, st, sl)
	}
	if err := r.s.checkDepth(ref, st); err != nil {
		return nil, err
	}
	frag, err := r.s.load(ref, st)
	if err != nil {
		return nil, err
	}
	if frag == nil {
		return r.rewriteChildren(n, st, sl)
	}

	child := st.follow(ref)
	defer child.release()
	if ref.Pointer == nil && frag.IsMapping() {
		// its components were collected and merged separately
		frag = frag.Without("components")
	}
	resolved, err := r.rewrite(frag, child, sl)
	if err != nil {
		return nil, err
	}
	siblings, err := r.rewriteChildren(n.Without("$ref"), st, sl)
	if err != nil {
		return nil, err
	}
	if !resolved.IsMapping() && siblings.Len() > 0 {
		r.s.log.Warn("sibling keys of $ref dropped, target is not a mapping",
			"ref", ref.Raw, "target", ref.ID(), "location", st.location(), "keys", siblings.Keys())
	}
	r.s.stats.RefsSpliced++
	r.s.log.Debug("spliced reference", "ref", ref.Raw, "target", ref.ID(), "location", st.location())
	return overlay(resolved, siblings), nil
}

// overlay returns base with every pair of top set on it. A non-mapping base
// cannot carry siblings and is returned as is.
func overlay(base, top *node.Node) *node.Node {
	if !base.IsMapping() || top.Len() == 0 {
		return base
	}
	b := node.NewMappingBuilder(base.Len() + top.Len())
	for _, p := range base.Pairs() {
		b.Set(p.Key, p.Value)
	}
	for _, p := range top.Pairs() {
		b.Set(p.Key, p.Value)
	}
	return b.Build()
}

// normalizeLocal handles a local reference in the entry document. Shorthand
// references such as "#/Pet" are pointed at the merged component of the
// same name; the slot's category is tried first.
func (r *resolver) normalizeLocal(n *node.Node, ref Reference, st walkState, sl slot) (*node.Node, error) {
	if len(ref.Pointer) == 0 || ref.Pointer[0] == "components" {
		return r.rewriteChildren(n, st, sl)
	}
	if key, ok := r.findComponent(ref.Name(), sl.category); ok {
		return r.pointTo(n, key, st, sl)
	}
	if _, ok := node.Lookup(r.s.mergedRoot, ref.Pointer); !ok {
		if err := r.s.report(pointerNotFoundDiagnostic(ref, st)); err != nil {
			return nil, err
		}
	}
	return r.rewriteChildren(n, st, sl)
}

func (r *resolver) findComponent(name, preferred string) (ComponentKey, bool) {
	comps, ok := r.s.mergedRoot.Get("components")
	if !ok {
		return ComponentKey{}, false
	}
	has := func(category string) bool {
		entries, ok := comps.Get(category)
		return ok && entries.Has(name)
	}
	if preferred != "" && has(preferred) {
		return ComponentKey{Category: preferred, Name: name}, true
	}
	for _, category := range pathutil.Categories {
		if has(category) {
			return ComponentKey{Category: category, Name: name}, true
		}
	}
	return ComponentKey{}, false
}
