package gc

import (
	"fmt"

	"github.com/joshuapare/shadowgc/internal/buf"
)

// Pool allocates fixed-size slots for one object shape. Declare pools with
// Heap.NewPool or NewPoolOf; a pool lives as long as its heap.
type Pool struct {
	heap      *Heap
	id        uint32
	name      string
	requested int // declared object size
	size      int // slot size
	perPage   int
	trace     TraceFunc

	// Intrusive free list: the first word of a free slot holds the next Ref.
	free  Ref
	nfree int
	pages []*page

	// active is set once the pool joins the heap's active list.
	active bool

	stats poolStats
}

// poolStats holds per-pool counters.
type poolStats struct {
	allocs     uint64 // Alloc calls that returned a slot
	slowAllocs uint64 // Alloc calls that found the free list empty
	grows      uint64 // growth events (each adds pages+1 pages)
}

// NewPool declares a pool for objects of size bytes. trace reports the Refs an
// object holds and may be nil for shapes without references. A size of zero or
// above DataSize panics.
func (h *Heap) NewPool(name string, size uintptr, trace TraceFunc) *Pool {
	h.checkIdle()
	if size == 0 || size > DataSize {
		panic(fmt.Sprintf("gc: pool %q: object size %d outside (0, %d]", name, size, DataSize))
	}
	slot := SlotSize(size)
	p := &Pool{
		heap:      h,
		id:        uint32(len(h.pools) + 1),
		name:      name,
		requested: int(size),
		size:      int(slot),
		perPage:   SlotsPerPage(slot),
		trace:     trace,
	}
	h.pools = append(h.pools, p)
	return p
}

// Name returns the name the pool was declared with.
func (p *Pool) Name() string { return p.name }

// SlotSize returns the bytes each object of this pool occupies.
func (p *Pool) SlotSize() int { return p.size }

// Pages returns the number of pages the pool owns. It never decreases.
func (p *Pool) Pages() int { return len(p.pages) }

// Free returns the number of free slots.
func (p *Pool) Free() int { return p.nfree }

// Alloc returns a zeroed slot registered on the root stack.
//
// The fresh object stays pinned in the current frame until that frame is left,
// so it survives collections triggered by later allocations while the caller
// links it into a rooted structure.
//
// When the free list is empty Alloc collects and may grow the pool. It returns
// ErrHeapExhausted if no slot is free afterwards, which only happens when
// Options.MaxPages stops growth.
func (p *Pool) Alloc() (Ref, error) {
	p.heap.checkIdle()
	if p.free == Nil {
		return p.allocSlow()
	}
	return p.take(), nil
}

// take pops the free-list head. The free list must be non-empty.
func (p *Pool) take() Ref {
	ref := p.free
	pg, i := p.heap.locate(ref)
	obj := pg.slot(i)
	p.free = Ref(buf.Word(obj, 0))
	p.nfree--
	clear(obj)
	p.stats.allocs++
	p.heap.roots.push(ref)
	return ref
}

func (p *Pool) allocSlow() (Ref, error) {
	p.stats.slowAllocs++
	p.activate()
	p.reserve()
	if p.free == Nil {
		return Nil, fmt.Errorf("%w: pool %q (%d pages, heap cap %d)",
			ErrHeapExhausted, p.name, len(p.pages), p.heap.opts.MaxPages)
	}
	return p.take(), nil
}

// activate links the pool into the heap's active list. Idempotent.
func (p *Pool) activate() {
	if p.active {
		return
	}
	p.active = true
	p.heap.active = append(p.heap.active, p)
	p.heap.log.Debug("pool activated", "pool", p.name, "slot_size", p.size, "slots_per_page", p.perPage)
}

// reserve runs a collection, then grows the pool by pages+1 pages when free
// slots are at or below the growth threshold. Mostly-garbage pools do not grow.
func (p *Pool) reserve() {
	h := p.heap
	h.Collect()

	capacity := len(p.pages) * p.perPage
	if float64(p.nfree) > h.opts.GrowthThreshold*float64(capacity) {
		return
	}

	add := len(p.pages) + 1
	if h.opts.MaxPages > 0 {
		add = min(add, h.opts.MaxPages-len(h.pages))
	}
	if add <= 0 {
		h.log.Debug("pool growth capped", "pool", p.name, "pages", len(p.pages), "max_pages", h.opts.MaxPages)
		return
	}
	for range add {
		h.newPage(p)
	}
	p.stats.grows++
	h.log.Debug("pool grown", "pool", p.name, "added", add, "pages", len(p.pages), "free", p.nfree)
}

// reclaimPage threads every unmarked slot of pg onto the free list and returns
// how many it added. Slots are pushed high to low so the lowest slot is taken
// first. Used for fresh pages (empty bitmap) and by sweep.
func (p *Pool) reclaimPage(pg *page) int {
	next := p.free
	n := 0
	for i := p.perPage - 1; i >= 0; i-- {
		if pg.marked(i) {
			continue
		}
		buf.PutWord(pg.slot(i), 0, uint64(next))
		next = makeRef(pg.id, uint32(i))
		n++
	}
	p.free = next
	p.nfree += n
	return n
}

// sweep rebuilds the free list from unmarked slots and returns the bytes
// reclaimed relative to the previous free count.
func (p *Pool) sweep() int {
	before := p.nfree
	p.free, p.nfree = Nil, 0
	for _, pg := range p.pages {
		p.reclaimPage(pg)
	}
	return (p.nfree - before) * p.size
}
