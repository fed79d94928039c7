package gc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/shadowgc/internal/pagemap"
)

// rootStack is the shadow stack: live Refs interleaved with Nil frame
// sentinels, stored in provider-backed memory that doubles when full.
type rootStack struct {
	h       *Heap
	mem     []byte
	entries []Ref // view of mem
	n       int
	frames  int // open frames, i.e. sentinels in entries[:n]
	grows   int
}

func (rs *rootStack) init(size int) error {
	mem, err := pagemap.Acquire(size)
	if err != nil {
		return err
	}
	rs.mem, rs.entries = mem, refsOf(mem)
	return nil
}

func refsOf(mem []byte) []Ref {
	return unsafe.Slice((*Ref)(unsafe.Pointer(&mem[0])), len(mem)/refBytes)
}

func (rs *rootStack) push(ref Ref) {
	if rs.n == len(rs.entries) {
		rs.grow()
	}
	rs.entries[rs.n] = ref
	rs.n++
}

// grow moves the stack to a mapping twice the size and releases the old one.
func (rs *rootStack) grow() {
	size := len(rs.mem) * 2
	mem, err := pagemap.Acquire(size)
	if err != nil {
		rs.h.fatal(fmt.Errorf("%w: root stack of %d bytes: %w", ErrMapFailed, size, err))
	}
	entries := refsOf(mem)
	copy(entries, rs.entries[:rs.n])
	old := rs.mem
	rs.mem, rs.entries = mem, entries
	rs.grows++
	if err := pagemap.Release(old); err != nil {
		rs.h.log.Warn("root stack release failed", "bytes", len(old), "err", err)
	}
	rs.h.log.Debug("root stack grown", "entries", len(entries), "used", rs.n)
}

func (rs *rootStack) enter() {
	rs.push(Nil)
	rs.frames++
}

// leave pops through the nearest sentinel.
func (rs *rootStack) leave() {
	if rs.frames == 0 {
		rs.h.fatal(fmt.Errorf("%w (%d roots outside any frame)", ErrUnbalancedLeave, rs.n))
	}
	for rs.entries[rs.n-1] != Nil {
		rs.n--
	}
	rs.n--
	rs.frames--
}

// truncate drops entries above n. Used to discard roots deferred during mark.
func (rs *rootStack) truncate(n int) {
	if n < rs.n {
		rs.n = n
	}
}

func (rs *rootStack) release() error {
	err := pagemap.Release(rs.mem)
	rs.mem, rs.entries, rs.n, rs.frames = nil, nil, 0, 0
	return err
}
