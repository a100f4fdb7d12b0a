package gctrace

import "sync/atomic"

// heapController tracks bytes-in-use against a growth-scaled threshold,
// implementing spec.md §4.5: NextGC = max(MinThreshold, bytesInUse *
// GrowthFactor), recomputed after every cycle, plus the stress flag that
// forces a collection check on every allocation.
type heapController struct {
	minThreshold int64
	growthFactor float64

	bytesInUse atomic.Int64
	nextGC     atomic.Int64
	prevFreed  atomic.Int64
	stress     atomic.Bool
}

func newHeapController(cfg Config) *heapController {
	hc := &heapController{
		minThreshold: cfg.MinHeapThreshold,
		growthFactor: cfg.HeapGrowthFactor,
	}
	hc.nextGC.Store(cfg.MinHeapThreshold)
	hc.stress.Store(cfg.StressGC)
	return hc
}

// RecordAllocation adds n bytes to the in-use total. Called by the
// embedder's allocation path before it checks ShouldCollect.
func (hc *heapController) RecordAllocation(n int64) {
	hc.bytesInUse.Add(n)
}

// RecordFree subtracts n bytes from the in-use total. RunCycle calls it once
// per cycle, after the sweep, with the bytes of every object destroyed.
func (hc *heapController) RecordFree(n int64) {
	hc.bytesInUse.Add(-n)
}

// ShouldCollect reports whether the embedder's allocation path should
// invoke a cycle: either the stress flag forces it, or bytes-in-use has
// reached the threshold set by the previous cycle.
func (hc *heapController) ShouldCollect() bool {
	return hc.stress.Load() || hc.bytesInUse.Load() >= hc.nextGC.Load()
}

// RecordCycle updates NextGC and PrevGCFreed after a completed collection.
func (hc *heapController) RecordCycle(freedBytes int64) {
	hc.prevFreed.Store(freedBytes)
	inUse := hc.bytesInUse.Load()
	next := int64(float64(inUse) * hc.growthFactor)
	if next < hc.minThreshold {
		next = hc.minThreshold
	}
	hc.nextGC.Store(next)
}

// SetStress toggles the stress flag and returns its previous value,
// mirroring the original's native gc.stress(force) contract.
func (hc *heapController) SetStress(v bool) bool {
	return hc.stress.Swap(v)
}

// Stats is the Go equivalent of the original's gc.stats() native: the
// current bytes allocated, the next collection threshold, and the number
// of bytes freed by the previous cycle.
type Stats struct {
	BytesAllocated int64
	NextGC         int64
	PrevGCFreed    int64
}

func (hc *heapController) Stats() Stats {
	return Stats{
		BytesAllocated: hc.bytesInUse.Load(),
		NextGC:         hc.nextGC.Load(),
		PrevGCFreed:    hc.prevFreed.Load(),
	}
}

// RecordAllocation registers n bytes of new allocation with the pool's heap
// controller.
func (p *ThreadPool) RecordAllocation(n int64) {
	p.heapCtl.RecordAllocation(n)
}

// ShouldCollect reports whether the allocator should trigger a cycle now.
func (p *ThreadPool) ShouldCollect() bool {
	return p.heapCtl.ShouldCollect()
}

// SetStressGC toggles forced collection on every allocation check and
// returns the previous setting.
func (p *ThreadPool) SetStressGC(v bool) bool {
	return p.heapCtl.SetStress(v)
}

// Stats returns the pool's current heap-size-controller statistics.
func (p *ThreadPool) Stats() Stats {
	return p.heapCtl.Stats()
}
