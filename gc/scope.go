package gc

import "fmt"

// Frame is an open root stack frame returned by Heap.Enter. Closing it with
// Frame.Leave checks that no inner frame was left open.
type Frame struct {
	h     *Heap
	level int
}

// Register declares ref live until the current frame is left. Nil is ignored.
func (h *Heap) Register(ref Ref) {
	h.checkIdle()
	if ref != Nil {
		h.roots.push(ref)
	}
}

// Pin registers ref and returns it, for use inside expressions.
func (h *Heap) Pin(ref Ref) Ref {
	h.Register(ref)
	return ref
}

// Enter opens a frame and registers refs in it.
func (h *Heap) Enter(refs ...Ref) Frame {
	h.checkIdle()
	h.roots.enter()
	for _, ref := range refs {
		if ref != Nil {
			h.roots.push(ref)
		}
	}
	return Frame{h: h, level: h.roots.frames}
}

// Leave closes the innermost frame, dropping every root registered since the
// matching Enter, then registers keep in the enclosing frame. Leaving with no
// open frame panics with ErrUnbalancedLeave.
func (h *Heap) Leave(keep ...Ref) {
	h.checkIdle()
	h.roots.leave()
	for _, ref := range keep {
		if ref != Nil {
			h.roots.push(ref)
		}
	}
}

// Reset closes the innermost frame and opens a new one holding refs. Loop
// bodies use it to carry their live locals forward without accumulating roots.
func (h *Heap) Reset(refs ...Ref) {
	h.Leave()
	h.Enter(refs...)
}

// Leave closes f, which must be the innermost open frame, and registers keep in
// the enclosing frame.
func (f Frame) Leave(keep ...Ref) {
	f.check()
	f.h.Leave(keep...)
}

// Reset replaces the contents of f with refs. f must be the innermost frame.
func (f Frame) Reset(refs ...Ref) {
	f.check()
	f.h.Reset(refs...)
}

// Return closes f keeping only ref, and returns ref.
func (f Frame) Return(ref Ref) Ref {
	f.Leave(ref)
	return ref
}

func (f Frame) check() {
	if f.h == nil {
		panic(fmt.Errorf("%w: zero Frame", ErrUnbalancedLeave))
	}
	f.h.checkIdle()
	if f.h.roots.frames != f.level {
		f.h.fatal(fmt.Errorf("%w: closing frame %d with %d frames open", ErrFrameMismatch, f.level, f.h.roots.frames))
	}
}

// Scope runs fn inside a new frame holding roots and closes the frame on every
// exit path, including a panic. When fn succeeds the Ref it returns is
// registered in the enclosing frame so it outlives the scope.
func (h *Heap) Scope(fn func() (Ref, error), roots ...Ref) (Ref, error) {
	f := h.Enter(roots...)
	defer func() {
		if rec := recover(); rec != nil {
			h.unwind(f.level)
			panic(rec)
		}
	}()

	ref, err := fn()
	if err != nil {
		h.unwind(f.level)
		return Nil, err
	}
	f.Leave(ref)
	return ref, nil
}

// unwind closes frames until fewer than level remain open.
func (h *Heap) unwind(level int) {
	for h.roots.frames >= level && h.roots.frames > 0 {
		h.roots.leave()
	}
}

// Roots returns the registered roots from bottom to top, without frame sentinels.
func (h *Heap) Roots() []Ref {
	out := make([]Ref, 0, h.roots.n-h.roots.frames)
	for _, ref := range h.roots.entries[:h.roots.n] {
		if ref != Nil {
			out = append(out, ref)
		}
	}
	return out
}

// Frames returns the number of open frames.
func (h *Heap) Frames() int { return h.roots.frames }
