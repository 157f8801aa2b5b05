package bundler

import (
	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
)

// collector is the first pass. It walks the entry document depth-first,
// follows every external reference and stores component fragments, already
// rewritten for the bundled document, in the session's ComponentTable.
type collector struct {
	s *session
}

// collect fills and returns the component table for root.
func (c *collector) collect(root *node.Node) (*ComponentTable, error) {
	st := c.s.rootState()
	defer st.release()
	if err := c.walk(root, st, rootSlot); err != nil {
		return nil, err
	}
	c.s.stats.ComponentsCollected = c.s.table.Len()
	return c.s.table, nil
}

func (c *collector) walk(n *node.Node, st walkState, sl slot) error {
	_, err := node.Accept[struct{}](n, discoverVisitor{c: c, st: st, sl: sl})
	return err
}

type discoverVisitor struct {
	c  *collector
	st walkState
	sl slot
}

func (v discoverVisitor) VisitScalar(*node.Node) (struct{}, error) {
	return struct{}{}, nil
}

func (v discoverVisitor) VisitSequence(n *node.Node) (struct{}, error) {
	child := childSlot(v.sl, "")
	for i, item := range n.Items() {
		v.st.loc.PushIndex(i)
		err := v.c.walk(item, v.st, child)
		v.st.loc.Pop()
		if err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (v discoverVisitor) VisitMapping(n *node.Node) (struct{}, error) {
	if raw, ok := n.Ref(); ok {
		if err := v.c.follow(raw, v.st, v.sl); err != nil {
			return struct{}{}, err
		}
	}
	// Siblings of $ref are walked too; they may carry references of their own.
	for _, p := range n.Pairs() {
		if p.Key == "$ref" {
			continue
		}
		v.st.loc.Push(p.Key)
		err := v.c.walk(p.Value, v.st, childSlot(v.sl, p.Key))
		v.st.loc.Pop()
		if err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (c *collector) follow(raw string, st walkState, sl slot) error {
	ref := c.s.resolveRef(raw, st)
	if ref.Unsupported {
		c.s.deps.add(st.file, ref, string(KindUnsupportedScheme))
		return c.s.report(unsupportedSchemeDiagnostic(ref, st))
	}
	if ref.IsLocal() {
		// entry-document local refs are normalized by the final pass
		return nil
	}
	c.s.stats.ExternalRefs++
	if key, ok := classify(ref, sl); ok {
		return c.discoverComponent(ref, key, st)
	}
	return c.discoverSplice(ref, sl, st)
}

// discoverComponent collects the component ref points at under key.
func (c *collector) discoverComponent(ref Reference, key ComponentKey, st walkState) error {
	if cyclic, err := c.s.cyclic(ref, st); cyclic {
		return err
	}
	id := ref.ID()
	if _, done := c.s.index[id]; done {
		c.s.deps.add(st.file, ref, StatusResolved)
		return nil
	}
	if err := c.s.checkDepth(ref, st); err != nil {
		return err
	}
	frag, err := c.s.load(ref, st)
	if err != nil || frag == nil {
		return err
	}

	c.s.index[id] = key
	if !c.s.table.Reserve(key) {
		c.s.log.Debug("component name already collected, keeping first",
			"category", key.Category, "name", key.Name, "ref", id)
		return nil
	}

	child := st.follow(ref)
	defer child.release()
	sl := componentSlot(key.Category)
	res := &resolver{s: c.s}
	var resolved *node.Node
	if target, ok := c.s.aliasTarget(frag, key, child, sl); ok {
		// Rewriting the alias would make the component point at itself;
		// inline the target instead.
		if err := c.discoverSplice(target, sl, child); err != nil {
			return err
		}
		resolved, err = res.splice(frag, target, child, sl)
	} else {
		if err := c.walk(frag, child, sl); err != nil {
			return err
		}
		resolved, err = res.rewrite(frag, child, sl)
	}
	if err != nil {
		return err
	}
	c.s.table.Fill(key, resolved)
	c.s.log.Debug("collected component", "category", key.Category, "name", key.Name, "from", ref.File)
	return nil
}

// discoverSplice collects the dependencies of a reference that the final
// pass will inline. A whole-document target contributes every entry of its
// own components section. A whole-document schema that refers back to
// itself becomes a component instead.
func (c *collector) discoverSplice(ref Reference, sl slot, st walkState) error {
	id := ref.ID()
	if _, ok := c.s.promoted[id]; ok {
		c.s.deps.add(st.file, ref, StatusResolved)
		return nil
	}
	if c.s.recursiveSchema(ref, sl, st) {
		c.s.promote(ref)
		c.s.deps.add(st.file, ref, StatusResolved)
		return nil
	}
	if cyclic, err := c.s.cyclic(ref, st); cyclic {
		return err
	}
	if _, done := c.s.spliced[id]; done {
		c.s.deps.add(st.file, ref, StatusResolved)
		return nil
	}
	if err := c.s.checkDepth(ref, st); err != nil {
		return err
	}
	frag, err := c.s.load(ref, st)
	if err != nil || frag == nil {
		return err
	}
	c.s.spliced[id] = sl

	child := st.follow(ref)
	defer child.release()

	if ref.Pointer == nil && frag.IsMapping() {
		if err := c.discoverAllComponents(ref.File, frag, child); err != nil {
			return err
		}
		frag = frag.Without("components")
	}
	if err := c.walk(frag, child, sl); err != nil {
		return err
	}

	key, ok := c.s.promoted[id]
	if !ok {
		return nil
	}
	resolved, err := (&resolver{s: c.s}).rewrite(frag, child, sl)
	if err != nil {
		return err
	}
	c.s.table.Fill(key, resolved)
	c.s.log.Debug("collected component", "category", key.Category, "name", key.Name, "from", ref.File)
	return nil
}

func (c *collector) discoverAllComponents(file string, doc *node.Node, st walkState) error {
	comps, ok := doc.Get("components")
	if !ok {
		return nil
	}
	for _, p := range comps.Pairs() {
		if !pathutil.IsCategory(p.Key) {
			continue
		}
		for _, name := range p.Value.Keys() {
			ref := Reference{
				Raw:     pathutil.ComponentRef(p.Key, name),
				File:    file,
				Pointer: []string{"components", p.Key, name},
			}
			key := ComponentKey{Category: p.Key, Name: name}
			if err := c.discoverComponent(ref, key, st); err != nil {
				return err
			}
		}
	}
	return nil
}
