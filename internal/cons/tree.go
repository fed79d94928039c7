package cons

import "github.com/joshuapare/shadowgc/gc"

// Tree builds a full binary tree of pairs with leaves holding 1 at depth 0.
// Depth 0 is a single leaf. The root is left rooted in the caller's frame.
func (s *Store) Tree(depth int) (gc.Ref, error) {
	if depth <= 0 {
		return s.Leaf(1)
	}
	return s.h.Scope(func() (gc.Ref, error) {
		left, err := s.Tree(depth - 1)
		if err != nil {
			return gc.Nil, err
		}
		right, err := s.Tree(depth - 1)
		if err != nil {
			return gc.Nil, err
		}
		return s.Pair(left, right)
	})
}

// CountNodes returns the number of cells reachable from ref through pair
// fields, counting shared cells once per path.
func (s *Store) CountNodes(ref gc.Ref) int {
	n := 0
	stack := []gc.Ref{ref}
	for len(stack) > 0 {
		ref = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if ref == gc.Nil {
			continue
		}
		n++
		if s.IsPair(ref) {
			p := gc.Deref[Pair](s.h, ref)
			stack = append(stack, p.Car, p.Cdr)
		}
	}
	return n
}

// Sum adds the values of every leaf reachable from ref.
func (s *Store) Sum(ref gc.Ref) int64 {
	var sum int64
	stack := []gc.Ref{ref}
	for len(stack) > 0 {
		ref = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case ref == gc.Nil:
		case s.IsPair(ref):
			p := gc.Deref[Pair](s.h, ref)
			stack = append(stack, p.Car, p.Cdr)
		default:
			sum += s.Value(ref)
		}
	}
	return sum
}
