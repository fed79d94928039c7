package gc

import (
	"fmt"
	"unsafe"
)

// NewPoolOf declares a pool for values of type T. trace may be nil.
//
// T lives in memory the Go collector does not scan, so it must not contain Go
// pointers, slices, strings, maps, interfaces or channels. Link objects with
// Ref fields instead.
func NewPoolOf[T any](h *Heap, name string, trace func(obj *T, m *Marker)) *Pool {
	var zero T
	var tf TraceFunc
	if trace != nil {
		tf = func(obj []byte, m *Marker) {
			trace((*T)(unsafe.Pointer(&obj[0])), m)
		}
	}
	return h.NewPool(name, unsafe.Sizeof(zero), tf)
}

// New allocates from p and returns the new Ref with a typed, zeroed view.
func New[T any](p *Pool) (Ref, *T, error) {
	ref, err := p.Alloc()
	if err != nil {
		return Nil, nil, err
	}
	return ref, Deref[T](p.heap, ref), nil
}

// Deref returns a typed view of the object ref names, or nil for Nil.
// It panics with ErrBadRef when T is larger than the object.
func Deref[T any](h *Heap, ref Ref) *T {
	obj := h.Bytes(ref)
	if obj == nil {
		return nil
	}
	var zero T
	if need := unsafe.Sizeof(zero); need > uintptr(len(obj)) {
		h.fatal(fmt.Errorf("%w: %v holds %d bytes, %T needs %d", ErrBadRef, ref, len(obj), zero, need))
	}
	return (*T)(unsafe.Pointer(&obj[0]))
}
