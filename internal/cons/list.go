package cons

import "github.com/joshuapare/shadowgc/gc"

// List builds pair(leaf(v0), pair(leaf(v1), ... Nil)). Only the head is left
// rooted, in the caller's frame.
func (s *Store) List(values ...int64) (gc.Ref, error) {
	return s.h.Scope(func() (gc.Ref, error) {
		head := gc.Nil
		for i := len(values) - 1; i >= 0; i-- {
			v, err := s.Leaf(values[i])
			if err != nil {
				return gc.Nil, err
			}
			if head, err = s.Pair(v, head); err != nil {
				return gc.Nil, err
			}
		}
		return head, nil
	})
}

// Chain builds an n-element list holding n-1 down to 0 by prepending one cell
// at a time. Only the current head stays rooted between steps, so the root
// stack does not grow with n.
func (s *Store) Chain(n int) (gc.Ref, error) {
	return s.h.Scope(func() (gc.Ref, error) {
		head := gc.Nil
		for i := 0; i < n; i++ {
			v, err := s.Leaf(int64(i))
			if err != nil {
				return gc.Nil, err
			}
			if head, err = s.Pair(v, head); err != nil {
				return gc.Nil, err
			}
			s.h.Reset(head)
		}
		return head, nil
	})
}

// IncAll replaces the car of every cell of list with a fresh leaf holding the
// old value plus one. The old leaves become garbage.
//
// The caller keeps list rooted. Only the unvisited suffix is rooted here.
func (s *Store) IncAll(list gc.Ref) error {
	_, err := s.h.Scope(func() (gc.Ref, error) {
		for list != gc.Nil {
			v, err := s.Leaf(s.Value(s.Car(list)) + 1)
			if err != nil {
				return gc.Nil, err
			}
			cell := gc.Deref[Pair](s.h, list)
			cell.Car = v
			list = cell.Cdr
			s.h.Reset(list)
		}
		return gc.Nil, nil
	}, list)
	return err
}

// Values returns the leaf values of list in order.
func (s *Store) Values(list gc.Ref) []int64 {
	var out []int64
	for ; list != gc.Nil; list = s.Cdr(list) {
		out = append(out, s.Value(s.Car(list)))
	}
	return out
}

// Len returns the number of cells in list.
func (s *Store) Len(list gc.Ref) int {
	n := 0
	for ; list != gc.Nil; list = s.Cdr(list) {
		n++
	}
	return n
}
