package gc

import (
	"fmt"
	"strings"
)

// Ref is a handle to one allocated slot: the owning page id in the high 32 bits
// and the slot index within that page in the low 32 bits. Page ids start at 1,
// so a valid Ref is never zero.
//
// Host objects link to each other by storing Refs, never Go pointers.
type Ref uint64

// Nil is the null reference.
const Nil Ref = 0

func makeRef(page uint32, slot uint32) Ref {
	return Ref(uint64(page)<<32 | uint64(slot))
}

func (r Ref) page() uint32 { return uint32(r >> 32) }
func (r Ref) slot() uint32 { return uint32(r) }

// IsNil reports whether r is the null reference.
func (r Ref) IsNil() bool { return r == Nil }

func (r Ref) String() string {
	if r == Nil {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", r.page(), r.slot())
}

// TraceFunc reports the outgoing references of one object. obj is the object's
// slot, trimmed to the size the pool was declared with. The function must call
// m.Trace for every Ref field and must not allocate or touch the root stack.
type TraceFunc func(obj []byte, m *Marker)

// MarkStrategy selects how the mark phase walks the object graph.
type MarkStrategy uint8

const (
	// MarkWorklist marks from an explicit FIFO worklist. No recursion, no depth limit.
	MarkWorklist MarkStrategy = iota

	// MarkRecursive recurses through trace callbacks. Past Options.DepthLimit
	// nested traces the object is pushed on the root stack as a fresh root and
	// traced later in the same cycle.
	MarkRecursive
)

func (s MarkStrategy) String() string {
	switch s {
	case MarkWorklist:
		return "worklist"
	case MarkRecursive:
		return "recursive"
	default:
		return fmt.Sprintf("MarkStrategy(%d)", uint8(s))
	}
}

// ParseStrategy maps "worklist" or "recursive" (any case) to a MarkStrategy.
func ParseStrategy(name string) (MarkStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "worklist":
		return MarkWorklist, nil
	case "recursive":
		return MarkRecursive, nil
	default:
		return 0, fmt.Errorf("%w: unknown mark strategy %q", ErrInvalidOptions, name)
	}
}

// Phase is the collector state. A heap is only usable by the mutator in PhaseIdle.
type Phase uint8

const (
	PhaseIdle     Phase = iota // mutator running
	PhaseMarkPrep              // clearing mark bitmaps of active pools
	PhaseMark                  // tracing from the root stack
	PhaseSweep                 // rebuilding free lists
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMarkPrep:
		return "mark-prep"
	case PhaseMark:
		return "mark"
	case PhaseSweep:
		return "sweep"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}
