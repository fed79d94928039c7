package gc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test shapes: a pointer-free leaf and a pair with two references. The pair
// carries a length field so the two pools use different slot sizes.
type leaf struct {
	value int64
}

type pair struct {
	car, cdr Ref
	n        int64
}

type fixture struct {
	t      testing.TB
	h      *Heap
	leaves *Pool
	pairs  *Pool
}

func newFixture(t testing.TB, opts *Options) *fixture {
	t.Helper()
	h, err := NewHeap(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		h.phase = PhaseIdle // a test may have panicked mid-cycle
		require.NoError(t, h.Close())
	})
	return &fixture{
		t:      t,
		h:      h,
		leaves: NewPoolOf[leaf](h, "leaf", nil),
		pairs: NewPoolOf(h, "pair", func(p *pair, m *Marker) {
			m.Trace(p.car)
			m.Trace(p.cdr)
		}),
	}
}

func (f *fixture) leaf(v int64) Ref {
	f.t.Helper()
	ref, obj, err := New[leaf](f.leaves)
	require.NoError(f.t, err)
	obj.value = v
	return ref
}

func (f *fixture) pair(car, cdr Ref) Ref {
	f.t.Helper()
	ref, obj, err := New[pair](f.pairs)
	require.NoError(f.t, err)
	obj.car, obj.cdr = car, cdr
	if next := Deref[pair](f.h, cdr); next != nil {
		obj.n = next.n + 1
	} else {
		obj.n = 1
	}
	return ref
}

// list builds pair(leaf(v0), pair(leaf(v1), ... Nil)) and returns it rooted in
// the caller's frame with nothing else left registered.
func (f *fixture) list(values ...int64) Ref {
	f.t.Helper()
	ref, err := f.h.Scope(func() (Ref, error) {
		head := Nil
		for i := len(values) - 1; i >= 0; i-- {
			head = f.pair(f.leaf(values[i]), head)
		}
		return head, nil
	})
	require.NoError(f.t, err)
	return ref
}

// chain builds an n-element list one cell at a time, keeping only the head
// rooted between iterations.
func (f *fixture) chain(n int) Ref {
	f.t.Helper()
	ref, err := f.h.Scope(func() (Ref, error) {
		head := Nil
		for i := 0; i < n; i++ {
			head = f.pair(f.leaf(int64(i)), head)
			f.h.Reset(head)
		}
		return head, nil
	})
	require.NoError(f.t, err)
	return ref
}

func (f *fixture) values(list Ref) []int64 {
	var out []int64
	for list != Nil {
		p := Deref[pair](f.h, list)
		out = append(out, Deref[leaf](f.h, p.car).value)
		list = p.cdr
	}
	return out
}

// requirePanicsIs runs fn and requires it to panic with an error matching target.
func requirePanicsIs(t testing.TB, target error, fn func()) {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected panic with %v", target)
	err, ok := got.(error)
	require.True(t, ok, "panic value %v (%T) is not an error", got, got)
	require.True(t, errors.Is(err, target), "panic %v is not %v", err, target)
}

var strategies = []MarkStrategy{MarkWorklist, MarkRecursive}

func forEachStrategy(t *testing.T, fn func(t *testing.T, s MarkStrategy)) {
	for _, s := range strategies {
		t.Run(fmt.Sprint(s), func(t *testing.T) { fn(t, s) })
	}
}
