package gc

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/joshuapare/shadowgc/internal/buf"
	"github.com/joshuapare/shadowgc/internal/pagemap"
)

// Heap is one collected heap: its pools, pages, root stack and collector
// state. A Heap is used by one goroutine at a time and does no locking.
type Heap struct {
	opts Options
	log  *slog.Logger

	pages  []*page // indexed by page id - 1
	pools  []*Pool // declared, in declaration order
	active []*Pool // pools that have allocated, in activation order

	roots  rootStack
	marker Marker
	phase  Phase
	closed bool

	stats heapStats
}

// heapStats holds collector counters.
type heapStats struct {
	collections    int
	lastReclaimed  int
	totalReclaimed int64
	lastPause      time.Duration
	lastMarked     int
	lastDeferred   int
}

// NewHeap creates a heap. A nil opts uses DefaultOptions; zero fields of a
// non-nil opts take their defaults.
func NewHeap(opts *Options) (*Heap, error) {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}

	h := &Heap{opts: o, log: o.Logger}
	h.roots.h = h
	if err := h.roots.init(o.rootStackBytes()); err != nil {
		return nil, fmt.Errorf("%w: root stack: %w", ErrMapFailed, err)
	}
	h.marker = Marker{h: h, work: queue.New()}
	return h, nil
}

// Options returns the effective options.
func (h *Heap) Options() Options { return h.opts }

// Phase returns the collector phase. It is PhaseIdle whenever the mutator runs.
func (h *Heap) Phase() Phase { return h.phase }

// Close unmaps every page and the root stack. Refs and slot views obtained from
// the heap become invalid, and any further use panics with ErrClosed.
// Closing a closed heap is a no-op.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	h.checkIdle()

	var errs []error
	for _, pg := range h.pages {
		if err := pagemap.Release(pg.mem); err != nil {
			errs = append(errs, err)
		}
		pg.mem = nil
	}
	if err := h.roots.release(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range h.pools {
		p.pages, p.free, p.nfree = nil, Nil, 0
	}
	h.pages, h.active = nil, nil
	h.closed = true
	return errors.Join(errs...)
}

// Bytes returns the object ref names, sized as its pool was declared.
// Nil yields nil.
func (h *Heap) Bytes(ref Ref) []byte {
	h.checkOpen()
	if ref == Nil {
		return nil
	}
	pg, i := h.locate(ref)
	return pg.slot(i)[:pg.pool.requested]
}

// Pointer returns the address of the object ref names. Nil yields nil.
func (h *Heap) Pointer(ref Ref) unsafe.Pointer {
	obj := h.Bytes(ref)
	if obj == nil {
		return nil
	}
	return unsafe.Pointer(&obj[0])
}

// PoolOf returns the pool that owns ref, or nil for Nil.
func (h *Heap) PoolOf(ref Ref) *Pool {
	h.checkOpen()
	if ref == Nil {
		return nil
	}
	pg, _ := h.locate(ref)
	return pg.pool
}

// Resolve maps an address inside an object of this heap back to the object's
// Ref. It is the only place that derives ownership from an address.
//
// Precondition: p points into a page of this heap (for example a pointer from
// Pointer or Deref, or a field address within one). Pages are PageSize bytes at
// PageSize-aligned addresses, so rounding p down gives its page, whose trailer
// holds the page and pool ids. Addresses in the bitmap or trailer, and pages
// whose trailer disagrees with the heap, report false.
func (h *Heap) Resolve(p unsafe.Pointer) (Ref, bool) {
	h.checkOpen()
	if p == nil {
		return Nil, false
	}
	off := uintptr(p) & (PageSize - 1)
	base := unsafe.Add(p, -int(off))
	trailer := unsafe.Slice((*byte)(unsafe.Add(base, pageIDOffset)), 8)

	id := buf.Half(trailer, 0)
	if id == 0 || int(id) > len(h.pages) {
		return Nil, false
	}
	pg := h.pages[id-1]
	if unsafe.Pointer(&pg.mem[0]) != base || buf.Half(trailer, 4) != pg.pool.id {
		return Nil, false
	}
	if off >= uintptr(pg.pool.perPage*pg.pool.size) {
		return Nil, false
	}
	return makeRef(id, uint32(slotIndex(off, uintptr(pg.pool.size)))), true
}

// checkIdle panics unless the heap is open and the collector is idle.
func (h *Heap) checkIdle() {
	h.checkOpen()
	if h.phase != PhaseIdle {
		h.fatal(fmt.Errorf("%w (phase %s)", ErrReentrant, h.phase))
	}
}

func (h *Heap) checkOpen() {
	if h.closed {
		panic(ErrClosed)
	}
}

// fatal logs err and panics with it. Used for conditions the heap cannot
// continue from: mapping failures and root protocol violations.
func (h *Heap) fatal(err error) {
	h.log.Error("fatal heap error", "err", err)
	panic(err)
}
