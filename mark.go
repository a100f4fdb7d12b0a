package gctrace

import "github.com/go-foundations/gctrace/heap"

// markValue marks v on behalf of w. Primitives are a no-op. A heap reference
// is marked via an atomic false→true CAS on its mark bit; only the
// goroutine that wins that CAS traces the object's outgoing edges, which is
// the collector's entire cycle guard — no separate "grey" bookkeeping is
// needed because the deque a newly-marked object's fan-out tasks land in is
// the grey set.
func (p *ThreadPool) markValue(w *Worker, v heap.Value) {
	if !v.IsObj() {
		return
	}
	obj := v.Obj
	if !obj.TryMark() {
		return
	}
	p.cycleMarked.Add(1)
	if p.config.EnableWorkerStats {
		w.Stats.ObjectsMarked.Add(1)
	}
	p.traceObject(w, obj)
}

// traceObject enqueues (or inline-marks) an object's outgoing references,
// once per kind of container it carries: a bulk array, a bulk table, or a
// small fixed set of edges. An object may combine a fixed edge set with a
// bulk container (a closure's captured upvalues alongside nothing, a
// function's constant pool alongside nothing) — traceObject walks whichever
// are populated.
func (p *ThreadPool) traceObject(w *Worker, obj *heap.Object) {
	if obj.Array != nil {
		p.ParallelMarkArray(w, obj.Array)
	}
	if obj.Table != nil {
		p.ParallelMarkHashtable(w, obj.Table)
	}
	for _, edge := range obj.Edges {
		p.markValue(w, edge)
	}
}

// ParallelMarkArray marks every value in array. Below
// Config.ParallelMarkArrayThreshold it marks inline on w; at or above it,
// it fans out into range tasks chosen by Config.FanoutStrategy, pushed only
// into w's own deque, to be executed or stolen by the rest of the pool.
func (p *ThreadPool) ParallelMarkArray(w *Worker, array *heap.ValueArray) {
	count := array.Count
	if count < p.config.ParallelMarkArrayThreshold {
		for i := 0; i < count; i++ {
			p.markValue(w, array.At(i))
		}
		return
	}

	for _, r := range p.config.FanoutStrategy.Partition(count, len(p.workers)) {
		chunk := r
		w.addTask(func(tw *Worker) {
			for idx := chunk.Start; idx < chunk.End; idx++ {
				p.markValue(tw, array.At(idx))
			}
		})
	}
}

// ParallelMarkHashtable marks every occupied bucket's key and value. Below
// Config.ParallelMarkHashtableThreshold it marks inline on w; at or above
// it, it fans out over table.Capacity() the same way ParallelMarkArray
// fans out over array.Count. Empty-internal slots (including tombstones)
// are skipped without inspecting their key's value, per heap.HashTable's
// iteration contract.
func (p *ThreadPool) ParallelMarkHashtable(w *Worker, table *heap.HashTable) {
	capacity := table.Capacity()
	if capacity < p.config.ParallelMarkHashtableThreshold {
		for i := 0; i < capacity; i++ {
			if key, value, ok := table.Slot(i); ok {
				p.markValue(w, key)
				p.markValue(w, value)
			}
		}
		return
	}

	for _, r := range p.config.FanoutStrategy.Partition(capacity, len(p.workers)) {
		chunk := r
		w.addTask(func(tw *Worker) {
			for idx := chunk.Start; idx < chunk.End; idx++ {
				if key, value, ok := table.Slot(idx); ok {
					p.markValue(tw, key)
					p.markValue(tw, value)
				}
			}
		})
	}
}
