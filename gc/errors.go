package gc

import "errors"

var (
	// ErrHeapExhausted indicates that a pool's free list was still empty after a
	// full collection and a growth attempt. Only reachable when Options.MaxPages
	// caps the heap.
	ErrHeapExhausted = errors.New("gc: pool exhausted after collection and growth")

	// ErrInvalidOptions indicates an Options value rejected by NewHeap.
	ErrInvalidOptions = errors.New("gc: invalid options")

	// ErrMapFailed indicates that the OS refused memory for heap pages or for
	// root stack growth. Raised as a panic once the heap is running.
	ErrMapFailed = errors.New("gc: page mapping failed")

	// ErrUnbalancedLeave indicates a Leave with no open frame.
	ErrUnbalancedLeave = errors.New("gc: leave without matching enter")

	// ErrFrameMismatch indicates a Frame closed while an inner frame is still open.
	ErrFrameMismatch = errors.New("gc: frame closed out of order")

	// ErrReentrant indicates heap mutation while the collector is running,
	// typically an allocation or root change from inside a trace callback.
	ErrReentrant = errors.New("gc: heap mutated during collection")

	// ErrBadRef indicates a reference that does not name a slot of this heap.
	ErrBadRef = errors.New("gc: bad object reference")

	// ErrClosed indicates use of a heap after Close.
	ErrClosed = errors.New("gc: heap is closed")
)
