package gctrace

import (
	"time"

	"github.com/go-foundations/gctrace/heap"
)

// CycleStats summarises one completed collection cycle.
type CycleStats struct {
	ObjectsMarked     int64
	ObjectsDestroyed  int
	BytesFreed        int64
	Duration          time.Duration
	UsedParallelSweep bool
}

// RunCycle executes one full collection cycle as a single synchronous call,
// the eight steps of spec.md §4.6: wake workers, mark roots, drain, sweep,
// drain, re-stitch (inside ParallelSweep/SerialSweep), sweep the
// interned-strings table of destroyed keys, put workers to sleep, update
// the heap-size threshold.
//
// The caller — the mutator — must have quiesced before calling: no other
// goroutine may touch the object graph until RunCycle returns. There is no
// concurrent-with-mutator marking.
func (p *ThreadPool) RunCycle(h *heap.Heap, roots heap.RootProvider) CycleStats {
	start := time.Now()

	w := p.BecomeWorkerZero()
	defer p.StopBeingWorkerZero()

	p.cycleMarked.Store(0)
	p.WakeWorkers()

	roots.MarkRoots(func(v heap.Value) {
		p.markValue(w, v)
	})
	p.WaitForWorkers(w)

	var usedParallel bool
	var destroyed []*heap.Object
	if h.ObjectCount() < int64(p.config.ParallelSweepThreshold) {
		destroyed = p.SerialSweep(h)
	} else {
		usedParallel, destroyed = p.ParallelSweep(w, h)
		if !usedParallel {
			destroyed = p.SerialSweep(h)
		}
	}

	if h.InternedStrings != nil && len(destroyed) > 0 {
		dead := make(map[*heap.Object]struct{}, len(destroyed))
		for _, obj := range destroyed {
			dead[obj] = struct{}{}
		}
		h.InternedStrings.RemoveDestroyed(dead)
	}

	p.PutWorkersToSleep()

	h.AdjustCount(-int64(len(destroyed)))

	var freedBytes int64
	for _, obj := range destroyed {
		freedBytes += int64(obj.Size)
	}
	p.heapCtl.RecordFree(freedBytes)
	p.heapCtl.RecordCycle(freedBytes)

	return CycleStats{
		ObjectsMarked:     p.cycleMarked.Load(),
		ObjectsDestroyed:  len(destroyed),
		BytesFreed:        freedBytes,
		Duration:          time.Since(start),
		UsedParallelSweep: usedParallel,
	}
}

// CollectIfNeeded runs a cycle when the heap controller's threshold (or the
// stress flag) says to, and reports whether it did.
func (p *ThreadPool) CollectIfNeeded(h *heap.Heap, roots heap.RootProvider) (bool, CycleStats) {
	if !p.ShouldCollect() {
		return false, CycleStats{}
	}
	return true, p.RunCycle(h, roots)
}
