package gc

import (
	"time"

	"github.com/eapache/queue"
)

// Marker is handed to trace callbacks during the mark phase.
type Marker struct {
	h     *Heap
	work  *queue.Queue // pending objects for MarkWorklist
	depth int          // nesting of the current trace under MarkRecursive

	marked   int
	deferred int
}

// Trace marks ref reachable. Trace callbacks call it once per Ref field.
// Nil is ignored, as is an object already marked in this cycle.
func (m *Marker) Trace(ref Ref) {
	if ref == Nil {
		return
	}
	pg, i := m.h.locate(ref)
	if pg.marked(i) {
		return
	}
	if m.h.opts.Strategy == MarkRecursive {
		m.traceRecursive(ref, pg, i)
		return
	}
	pg.mark(i)
	m.marked++
	if pg.pool.trace != nil {
		m.work.Add(ref)
	}
}

// traceRecursive marks and descends. Past the depth limit the object is left
// unmarked and pushed on the root stack instead; the root loop in Collect
// reaches it before sweep.
func (m *Marker) traceRecursive(ref Ref, pg *page, i int) {
	if m.depth >= m.h.opts.DepthLimit {
		m.h.roots.push(ref)
		m.deferred++
		return
	}
	pg.mark(i)
	m.marked++
	if pg.pool.trace == nil {
		return
	}
	m.depth++
	pg.pool.trace(pg.slot(i)[:pg.pool.requested], m)
	m.depth--
}

// drain traces queued objects until the worklist is empty.
func (m *Marker) drain() {
	for m.work.Length() > 0 {
		ref := m.work.Remove().(Ref)
		pg, i := m.h.locate(ref)
		pg.pool.trace(pg.slot(i)[:pg.pool.requested], m)
	}
}

func (m *Marker) reset() {
	m.depth, m.marked, m.deferred = 0, 0, 0
}

// Collect runs one full mark-sweep cycle and returns the bytes reclaimed:
// for each active pool, (free slots after - free slots before) * slot size.
//
// Every object reachable from a registered root through trace callbacks keeps
// its contents. Every other slot of an active pool is free afterwards.
// A cycle never fails; 0 is a normal result.
func (h *Heap) Collect() int {
	h.checkIdle()
	start := time.Now()

	h.phase = PhaseMarkPrep
	for _, p := range h.active {
		for _, pg := range p.pages {
			pg.clearMarks()
		}
	}

	h.phase = PhaseMark
	m := &h.marker
	m.reset()
	// The length is re-read each iteration: MarkRecursive appends deferred
	// objects, and they must be traced before sweep.
	base := h.roots.n
	for i := 0; i < h.roots.n; i++ {
		ref := h.roots.entries[i]
		if ref == Nil {
			continue
		}
		m.depth = 0
		m.Trace(ref)
		m.drain()
	}
	h.roots.truncate(base)

	h.phase = PhaseSweep
	reclaimed := 0
	for _, p := range h.active {
		reclaimed += p.sweep()
	}
	h.phase = PhaseIdle

	pause := time.Since(start)
	h.stats.collections++
	h.stats.lastReclaimed = reclaimed
	h.stats.totalReclaimed += int64(reclaimed)
	h.stats.lastPause = pause
	h.stats.lastMarked = m.marked
	h.stats.lastDeferred = m.deferred

	h.log.Debug("collection",
		"cycle", h.stats.collections,
		"reclaimed", reclaimed,
		"marked", m.marked,
		"deferred", m.deferred,
		"roots", h.roots.n-h.roots.frames,
		"frames", h.roots.frames,
		"pause", pause,
	)
	return reclaimed
}
