package gctrace

import "github.com/go-foundations/gctrace/heap"

// sweepChunk is a contiguous slice of the global object list owned
// exclusively by one sweep task. start/end are inclusive endpoints on
// entry; the task overwrites them with the endpoints of the surviving
// sub-slice (both nil if the whole chunk died) for the coordinator to read
// back during re-stitching.
type sweepChunk struct {
	start *heap.Object
	end   *heap.Object
	size  int

	destroyed []*heap.Object
}

// partitionSweep walks heap h's object list once, producing up to
// 2*worker_count chunks of as-equal-as-possible size (the first
// total%num_chunks chunks get one extra element). h.ObjectCount is treated
// as an upper bound rather than ground truth: if the list turns out to be
// shorter than the counter claims, the walk simply stops at the nil tail
// and the last chunk (or chunks) produced are smaller than requested, or
// absent entirely — this is the resolution to spec.md §9's open question.
func (p *ThreadPool) partitionSweep(h *heap.Heap) []*sweepChunk {
	total := h.ObjectCount()
	if total < 0 {
		total = 0
	}

	numChunks := len(p.workers) * 2
	base := total / int64(numChunks)
	remainder := total % int64(numChunks)

	chunks := make([]*sweepChunk, 0, numChunks)
	current := h.Objects
	for i := 0; i < numChunks && current != nil; i++ {
		want := base
		if remainder > 0 {
			want++
			remainder--
		}
		if want == 0 {
			continue
		}

		chunk := &sweepChunk{start: current}
		var got int64
		for got < want && current != nil {
			chunk.end = current
			current = current.Next
			got++
		}
		chunk.size = int(got)
		chunks = append(chunks, chunk)
	}
	return chunks
}

// sweepChunkTask sweeps exactly chunk.size objects starting at chunk.start,
// atomically resetting each mark bit and keeping survivors linked together
// while destroying white objects in place. w is only used for optional
// per-worker stats; the chunk's slice is otherwise self-contained, which is
// what lets disjoint chunks run concurrently with no coordination.
func (p *ThreadPool) sweepChunkTask(w *Worker, chunk *sweepChunk) {
	current := chunk.start
	var previous, newStart, newEnd *heap.Object
	var destroyedCount int

	for i := 0; i < chunk.size; i++ {
		next := current.Next
		if current.SweepExchange() {
			if newStart == nil {
				newStart = current
			}
			newEnd = current
			previous = current
		} else {
			if previous != nil {
				previous.Next = next
			}
			chunk.destroyed = append(chunk.destroyed, current)
			destroyedCount++
			if current.Destroy != nil {
				current.Destroy(current)
			}
		}
		current = next
	}

	chunk.start = newStart
	chunk.end = newEnd
	if p.config.EnableWorkerStats && destroyedCount > 0 {
		w.Stats.ObjectsFreed.Add(int64(destroyedCount))
	}
}

// restitch splices the surviving sub-slices of chunks back into h.Objects,
// in partition order, and null-terminates the new tail. Must only run after
// every chunk task has completed.
func restitch(h *heap.Heap, chunks []*sweepChunk) []*heap.Object {
	h.Objects = nil
	var tail *heap.Object
	var destroyed []*heap.Object

	for _, chunk := range chunks {
		if chunk.start != nil {
			if h.Objects == nil {
				h.Objects = chunk.start
			} else {
				tail.Next = chunk.start
			}
			tail = chunk.end
		}
		destroyed = append(destroyed, chunk.destroyed...)
	}
	if tail != nil {
		tail.Next = nil
	}
	return destroyed
}

// ParallelSweep partitions h's object list into chunks, pushes one task per
// chunk into worker 0's own deque, drains via w, and re-stitches the
// survivors. It returns ok=false, leaving h untouched, if partitioning could
// not produce any chunks for a non-empty heap — the caller is expected to
// fall back to SerialSweep, exactly as spec.md §4.4's failure policy
// describes for the original's chunk-descriptor allocation failure. RunCycle
// only calls ParallelSweep with a positive object count, so it never sees
// ok=false; SerialSweep itself runs on every cycle whose object count is
// below ParallelSweepThreshold.
func (p *ThreadPool) ParallelSweep(w *Worker, h *heap.Heap) (ok bool, destroyed []*heap.Object) {
	chunks := p.partitionSweep(h)
	if len(chunks) == 0 {
		if h.Objects != nil {
			return false, nil
		}
		return true, nil
	}

	weights := make([]int64, len(chunks))
	for i, chunk := range chunks {
		weights[i] = int64(chunk.size)
	}
	for _, idx := range p.config.SweepStrategy.OrderByWeight(weights) {
		c := chunks[idx]
		p.workers[0].addTask(func(tw *Worker) {
			p.sweepChunkTask(tw, c)
		})
	}
	p.WaitForWorkers(w)

	return true, restitch(h, chunks)
}

// SerialSweep walks h's entire object list on the calling goroutine with
// identical per-object semantics to a parallel chunk task: atomic mark-bit
// exchange, in-place unlink of white objects, destructor invocation. It is
// ParallelSweep's fallback and is immune to any object-count drift since it
// simply walks until Next is nil.
func (p *ThreadPool) SerialSweep(h *heap.Heap) []*heap.Object {
	current := h.Objects
	var previous, newStart, newEnd *heap.Object
	var destroyed []*heap.Object

	for current != nil {
		next := current.Next
		if current.SweepExchange() {
			if newStart == nil {
				newStart = current
			}
			newEnd = current
			previous = current
		} else {
			if previous != nil {
				previous.Next = next
			}
			destroyed = append(destroyed, current)
			if current.Destroy != nil {
				current.Destroy(current)
			}
		}
		current = next
	}

	if newEnd != nil {
		newEnd.Next = nil
	}
	h.Objects = newStart
	return destroyed
}
