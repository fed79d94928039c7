package gc

import (
	"fmt"

	"github.com/joshuapare/shadowgc/internal/buf"
	"github.com/joshuapare/shadowgc/internal/pagemap"
)

// Page layout. Every page is PageSize bytes at a PageSize-aligned address:
//
//	[0, DataSize)              packed slots
//	[DataSize, DataSize+32)    mark bitmap, one bit per slot
//	[PageSize-8, PageSize-4)   page id (uint32 LE)
//	[PageSize-4, PageSize)     owning pool id (uint32 LE)
const (
	PageSize = 4096

	bitmapSize  = 32
	trailerSize = 32

	// DataSize is the slot area of a page. 4032 / MinSlotSize = 252 slots,
	// which the 256-bit bitmap covers.
	DataSize = PageSize - bitmapSize - trailerSize

	bitmapOffset = DataSize
	pageIDOffset = PageSize - 8
	poolIDOffset = PageSize - 4

	refBytes = 8
)

// page is the Go-side handle of one mapped page. The mapped memory holds only
// slot data, marks and ids; the owning pool pointer lives here.
type page struct {
	id   uint32
	pool *Pool
	mem  []byte
}

func (pg *page) bitmap() []byte {
	return pg.mem[bitmapOffset : bitmapOffset+bitmapSize]
}

func (pg *page) marked(i int) bool { return buf.Bit(pg.bitmap(), i) }
func (pg *page) mark(i int)        { buf.SetBit(pg.bitmap(), i) }
func (pg *page) clearMarks()       { clear(pg.bitmap()) }
func (pg *page) countMarks() int   { return buf.CountBits(pg.bitmap(), pg.pool.perPage) }

// slot returns the full slot i, capped so appends cannot spill into the next slot.
func (pg *page) slot(i int) []byte {
	size := pg.pool.size
	off := i * size
	return pg.mem[off : off+size : off+size]
}

// newPage maps a page for p, stamps its trailer and threads its slots onto
// p's free list. Mapping failure is fatal.
func (h *Heap) newPage(p *Pool) *page {
	mem, err := pagemap.Acquire(PageSize)
	if err != nil {
		h.fatal(fmt.Errorf("%w: page for pool %q: %w", ErrMapFailed, p.name, err))
	}
	pg := &page{id: uint32(len(h.pages) + 1), pool: p, mem: mem}
	buf.PutHalf(mem, pageIDOffset, pg.id)
	buf.PutHalf(mem, poolIDOffset, p.id)

	h.pages = append(h.pages, pg)
	p.pages = append(p.pages, pg)
	p.reclaimPage(pg)
	return pg
}

// locate resolves ref to its page and slot index. A ref that names no slot of
// this heap is a host defect and fatal.
func (h *Heap) locate(ref Ref) (*page, int) {
	id := ref.page()
	if id == 0 || int(id) > len(h.pages) {
		h.fatal(fmt.Errorf("%w: %v (heap has %d pages)", ErrBadRef, ref, len(h.pages)))
	}
	pg := h.pages[id-1]
	i := int(ref.slot())
	if i >= pg.pool.perPage {
		h.fatal(fmt.Errorf("%w: %v (pool %q has %d slots per page)", ErrBadRef, ref, pg.pool.name, pg.pool.perPage))
	}
	return pg, i
}
