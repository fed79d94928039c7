// Package gc provides a segregated-size pooled allocator with a mark-sweep
// collector and an explicit root stack.
//
// # Overview
//
// Host code declares one Pool per object shape. Objects live in fixed-size
// slots of 4 KiB pages mapped outside the Go heap and refer to each other by
// Ref handles. Liveness is declared, not discovered: every Ref the host holds
// across an allocation must be reachable from the root stack.
//
// # Pools
//
//	type pair struct{ car, cdr gc.Ref }
//
//	pairs := gc.NewPoolOf[pair](h, "pair", func(p *pair, m *gc.Marker) {
//	    m.Trace(p.car)
//	    m.Trace(p.cdr)
//	})
//	ref, p, err := gc.New[pair](pairs)
//
// Sizes round up to a multiple of 16 bytes (minimum 16). A page holds
// DataSize / SlotSize slots and a bitmap with one mark bit per slot.
//
// # Root Stack
//
// Alloc registers the new object as a root in the current frame, so it
// survives collections triggered by later allocations. Frames bracket scopes:
//
//	f := h.Enter(arg)
//	for ... {
//	    list = cons(x, list)
//	    h.Reset(list) // keep only list live in this frame
//	}
//	return f.Return(list) // close the frame, keep list in the caller's
//
// Scope wraps the same protocol and closes the frame on every exit path.
// A missing Leave retains the frame's objects forever; an early Leave lets a
// collection reclaim objects still in use.
//
// # Collection
//
// Collect marks from every registered root and sweeps unmarked slots back into
// their pools' free lists. Alloc collects on its own when a pool runs dry, then
// grows the pool by pages+1 pages if no more than 30% of its slots came free.
// Pages are never returned to the OS before Close.
//
// Two mark strategies are available. MarkWorklist (default) uses an explicit
// queue and handles arbitrarily deep structures. MarkRecursive recurses through
// trace callbacks and, past Options.DepthLimit, defers objects onto the root
// stack; deferred objects are traced before the sweep of the same cycle.
//
// # Errors
//
// Alloc returns ErrHeapExhausted when Options.MaxPages stops growth. Mapping
// failures, unbalanced frames, heap use from inside a trace callback and bad
// Refs panic with the matching sentinel error: they leave the heap in a state
// no caller can recover from.
//
// # Thread Safety
//
// A Heap is single-threaded. Collection runs on the calling goroutine and
// completes before Collect or Alloc returns.
package gc
