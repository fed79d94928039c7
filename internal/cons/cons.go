// Package cons builds lists and binary trees of pairs on a gc.Heap. The CLI
// uses it as its workload, and its tests drive the collector end to end.
package cons

import (
	"github.com/joshuapare/shadowgc/gc"
)

// Leaf is an integer cell. It holds no references.
type Leaf struct {
	Value int64
}

// Pair links two cells.
type Pair struct {
	Car, Cdr gc.Ref
}

// Store allocates Leaf and Pair cells from one heap.
type Store struct {
	h      *gc.Heap
	leaves *gc.Pool
	pairs  *gc.Pool
}

// New declares the leaf and pair pools on h.
func New(h *gc.Heap) *Store {
	return &Store{
		h:      h,
		leaves: gc.NewPoolOf[Leaf](h, "leaf", nil),
		pairs: gc.NewPoolOf(h, "pair", func(p *Pair, m *gc.Marker) {
			m.Trace(p.Car)
			m.Trace(p.Cdr)
		}),
	}
}

// Heap returns the heap the store allocates from.
func (s *Store) Heap() *gc.Heap { return s.h }

// Leaves returns the pool of Leaf cells.
func (s *Store) Leaves() *gc.Pool { return s.leaves }

// Pairs returns the pool of Pair cells.
func (s *Store) Pairs() *gc.Pool { return s.pairs }

// Leaf allocates a leaf holding v. The new ref is rooted in the current frame.
func (s *Store) Leaf(v int64) (gc.Ref, error) {
	ref, obj, err := gc.New[Leaf](s.leaves)
	if err != nil {
		return gc.Nil, err
	}
	obj.Value = v
	return ref, nil
}

// Pair allocates pair(car, cdr). The new ref is rooted in the current frame.
func (s *Store) Pair(car, cdr gc.Ref) (gc.Ref, error) {
	ref, obj, err := gc.New[Pair](s.pairs)
	if err != nil {
		return gc.Nil, err
	}
	obj.Car, obj.Cdr = car, cdr
	return ref, nil
}

// IsPair reports whether ref names a pair cell.
func (s *Store) IsPair(ref gc.Ref) bool {
	return ref != gc.Nil && s.h.PoolOf(ref) == s.pairs
}

// Value returns the integer held by a leaf.
func (s *Store) Value(ref gc.Ref) int64 {
	return gc.Deref[Leaf](s.h, ref).Value
}

// Car returns the first field of a pair.
func (s *Store) Car(ref gc.Ref) gc.Ref { return gc.Deref[Pair](s.h, ref).Car }

// Cdr returns the second field of a pair.
func (s *Store) Cdr(ref gc.Ref) gc.Ref { return gc.Deref[Pair](s.h, ref).Cdr }
