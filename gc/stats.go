package gc

import "time"

// PoolStats is a snapshot of one pool.
type PoolStats struct {
	Name       string `json:"name"`
	ObjectSize int    `json:"object_size"`
	SlotSize   int    `json:"slot_size"`
	Pages      int    `json:"pages"`
	Slots      int    `json:"slots"`
	Free       int    `json:"free"`
	InUse      int    `json:"in_use"` // Slots - Free; includes garbage not yet swept
	Marked     int    `json:"marked"` // slots found live by the last collection
	Allocs     uint64 `json:"allocs"`
	SlowAllocs uint64 `json:"slow_allocs"`
	Grows      uint64 `json:"grows"`
	Active     bool   `json:"active"`
}

// Stats is a snapshot of a heap.
type Stats struct {
	Strategy       string        `json:"strategy"`
	Collections    int           `json:"collections"`
	LastReclaimed  int           `json:"last_reclaimed"`
	TotalReclaimed int64         `json:"total_reclaimed"`
	LastPause      time.Duration `json:"last_pause_ns"`
	LastMarked     int           `json:"last_marked"`
	LastDeferred   int           `json:"last_deferred"` // MarkRecursive only
	Roots          int           `json:"roots"`
	Frames         int           `json:"frames"`
	RootCapacity   int           `json:"root_capacity"`
	RootGrows      int           `json:"root_grows"`
	Pages          int           `json:"pages"`
	HeapBytes      int           `json:"heap_bytes"`
	Pools          []PoolStats   `json:"pools"`
}

// Stats returns a snapshot of the pool.
func (p *Pool) Stats() PoolStats {
	slots := len(p.pages) * p.perPage
	marked := 0
	for _, pg := range p.pages {
		marked += pg.countMarks()
	}
	return PoolStats{
		Name:       p.name,
		ObjectSize: p.requested,
		SlotSize:   p.size,
		Pages:      len(p.pages),
		Slots:      slots,
		Free:       p.nfree,
		InUse:      slots - p.nfree,
		Marked:     marked,
		Allocs:     p.stats.allocs,
		SlowAllocs: p.stats.slowAllocs,
		Grows:      p.stats.grows,
		Active:     p.active,
	}
}

// Stats returns a snapshot of the heap and every declared pool.
func (h *Heap) Stats() Stats {
	s := Stats{
		Strategy:       h.opts.Strategy.String(),
		Collections:    h.stats.collections,
		LastReclaimed:  h.stats.lastReclaimed,
		TotalReclaimed: h.stats.totalReclaimed,
		LastPause:      h.stats.lastPause,
		LastMarked:     h.stats.lastMarked,
		LastDeferred:   h.stats.lastDeferred,
		Roots:          h.roots.n - h.roots.frames,
		Frames:         h.roots.frames,
		RootCapacity:   len(h.roots.entries),
		RootGrows:      h.roots.grows,
		Pages:          len(h.pages),
		HeapBytes:      len(h.pages) * PageSize,
		Pools:          make([]PoolStats, 0, len(h.pools)),
	}
	for _, p := range h.pools {
		s.Pools = append(s.Pools, p.Stats())
	}
	return s
}
