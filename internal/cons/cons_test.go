package cons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/shadowgc/gc"
)

const cell = 16 // slot size of both Leaf and Pair

func newStore(t *testing.T, opts *gc.Options) *Store {
	t.Helper()
	h, err := gc.NewHeap(opts)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })
	return New(h)
}

func eachStrategy(t *testing.T, fn func(t *testing.T, opts *gc.Options)) {
	for _, s := range []gc.MarkStrategy{gc.MarkWorklist, gc.MarkRecursive} {
		t.Run(s.String(), func(t *testing.T) { fn(t, &gc.Options{Strategy: s}) })
	}
}

func Test_Store_SlotSizes(t *testing.T) {
	s := newStore(t, nil)
	assert.Equal(t, cell, s.Leaves().SlotSize())
	assert.Equal(t, cell, s.Pairs().SlotSize())
}

// Test_Store_Demo follows the demo command: build, collect, increment,
// collect, release, collect.
func Test_Store_Demo(t *testing.T) {
	eachStrategy(t, func(t *testing.T, opts *gc.Options) {
		s := newStore(t, opts)
		h := s.Heap()

		h.Enter()
		list, err := s.List(1, 2, 3, 4, 5)
		require.NoError(t, err)
		h.Reset(list)

		require.Zero(t, h.Collect())
		require.Equal(t, []int64{1, 2, 3, 4, 5}, s.Values(list))
		require.Zero(t, h.Collect())

		require.NoError(t, s.IncAll(list))
		require.Equal(t, 5*cell, h.Collect(), "the replaced leaves are garbage")
		require.Equal(t, []int64{2, 3, 4, 5, 6}, s.Values(list))

		h.Leave()
		require.Equal(t, 5*cell+5*cell, h.Collect())
	})
}

func Test_Store_ListShape(t *testing.T) {
	s := newStore(t, nil)
	h := s.Heap()
	h.Enter()

	list, err := s.List(4, 5)
	require.NoError(t, err)
	require.Equal(t, []gc.Ref{list}, h.Roots())
	require.True(t, s.IsPair(list))
	require.False(t, s.IsPair(s.Car(list)))
	require.False(t, s.IsPair(gc.Nil))
	require.Equal(t, int64(4), s.Value(s.Car(list)))
	require.Equal(t, gc.Nil, s.Cdr(s.Cdr(list)))
	require.Equal(t, 2, s.Len(list))

	empty, err := s.List()
	require.NoError(t, err)
	require.Equal(t, gc.Nil, empty)
	require.Zero(t, s.Len(empty))
	require.Empty(t, s.Values(empty))
}

func Test_Store_Chain(t *testing.T) {
	eachStrategy(t, func(t *testing.T, opts *gc.Options) {
		s := newStore(t, opts)
		h := s.Heap()
		h.Enter()

		const n = 20000
		head, err := s.Chain(n)
		require.NoError(t, err)
		require.Equal(t, []gc.Ref{head}, h.Roots())
		require.Equal(t, n, s.Len(head))
		require.Equal(t, int64(n-1), s.Value(s.Car(head)))

		require.NoError(t, s.IncAll(head))
		require.Equal(t, int64(n), s.Value(s.Car(head)))

		h.Collect()
		require.Zero(t, h.Collect())
		h.Leave()
		require.Equal(t, 2*n*cell, h.Collect())
	})
}

func Test_Store_Tree(t *testing.T) {
	tests := []struct {
		depth int
		nodes int
	}{
		{0, 1},
		{1, 3},
		{4, 31},
		{10, 2047},
	}
	for _, tt := range tests {
		s := newStore(t, nil)
		h := s.Heap()
		h.Enter()

		tree, err := s.Tree(tt.depth)
		require.NoError(t, err)
		require.Len(t, h.Roots(), 1, "depth %d", tt.depth)
		require.Equal(t, tt.nodes, s.CountNodes(tree))
		require.Equal(t, int64(tt.nodes+1)/2, s.Sum(tree))

		require.Zero(t, h.Collect())
		h.Leave()
		require.Equal(t, tt.nodes*cell, h.Collect(), "depth %d", tt.depth)
	}
}

func Test_Store_Exhausted(t *testing.T) {
	s := newStore(t, &gc.Options{MaxPages: 2})
	h := s.Heap()
	h.Enter()

	_, err := s.Chain(10000)
	require.ErrorIs(t, err, gc.ErrHeapExhausted)
	require.Equal(t, 1, h.Frames(), "the failed build closes its frames")
	require.Empty(t, h.Roots())
}
