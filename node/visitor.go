package node

import "fmt"

// Visitor handles each of the three node variants. Implementations must
// provide all three methods, so a traversal cannot silently skip a kind.
type Visitor[T any] interface {
	VisitScalar(n *Node) (T, error)
	VisitSequence(n *Node) (T, error)
	VisitMapping(n *Node) (T, error)
}

// Accept dispatches n to the matching Visitor method.
func Accept[T any](n *Node, v Visitor[T]) (T, error) {
	switch n.Kind() {
	case KindScalar:
		return v.VisitScalar(n)
	case KindSequence:
		return v.VisitSequence(n)
	case KindMapping:
		return v.VisitMapping(n)
	default:
		var zero T
		return zero, fmt.Errorf("node: cannot visit %s", n.Kind())
	}
}

// CountRefs returns how many "$ref" mappings appear anywhere under n.
func CountRefs(n *Node) int {
	count, _ := Accept[int](n, refCounter{})
	return count
}

type refCounter struct{}

func (refCounter) VisitScalar(*Node) (int, error) { return 0, nil }

func (c refCounter) VisitSequence(n *Node) (int, error) {
	total := 0
	for _, item := range n.items {
		sub, err := Accept[int](item, c)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}

func (c refCounter) VisitMapping(n *Node) (int, error) {
	total := 0
	if _, ok := n.Ref(); ok {
		total++
	}
	for _, p := range n.pairs {
		sub, err := Accept[int](p.Value, c)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}

// CollectRefs returns every "$ref" string under n in document order.
func CollectRefs(n *Node) []string {
	refs, _ := Accept[[]string](n, refCollector{})
	return refs
}

type refCollector struct{}

func (refCollector) VisitScalar(*Node) ([]string, error) { return nil, nil }

func (c refCollector) VisitSequence(n *Node) ([]string, error) {
	var out []string
	for _, item := range n.items {
		sub, _ := Accept[[]string](item, c)
		out = append(out, sub...)
	}
	return out, nil
}

func (c refCollector) VisitMapping(n *Node) ([]string, error) {
	var out []string
	if ref, ok := n.Ref(); ok {
		out = append(out, ref)
	}
	for _, p := range n.pairs {
		sub, _ := Accept[[]string](p.Value, c)
		out = append(out, sub...)
	}
	return out, nil
}
