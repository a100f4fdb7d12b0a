package gctrace

import "sync/atomic"

// cacheLinePad is the padding width used to keep frequently-written fields
// of adjacent workers (and adjacent fields of the same struct) off each
// other's cache lines.
const cacheLinePad = 64

// WorkerStats holds the optional per-worker diagnostic counters enabled by
// Config.EnableWorkerStats. Aggregation across workers is only meaningful
// once every worker is parked, mirroring the original's "stats counters are
// maintained per worker; aggregation is safe only when workers are parked."
type WorkerStats struct {
	ObjectsMarked    atomic.Int64
	ObjectsFreed     atomic.Int64
	StealAttempts    atomic.Uint64
	SuccessfulSteals atomic.Uint64
}

// Worker is a single participant in a collection cycle: an identity, its
// own deque, and a done flag. Worker 0 is degenerate — it has no dedicated
// goroutine; the mutator goroutine executes worker-0 logic directly via
// ThreadPool.BecomeWorkerZero.
//
// Fields are laid out and padded to keep this worker's hot done flag off
// the cache line any other worker's fields might share, following the same
// discipline as Deque's own internal padding.
type Worker struct {
	ID    int
	Deque *Deque
	Stats WorkerStats

	done atomic.Bool
	_    [cacheLinePad]byte
}

// Done reports whether the worker currently believes there is no more work
// anywhere. Read with relaxed semantics by the drain loop, exactly as
// spec.md §9 notes: "reading done is atomic-relaxed."
func (w *Worker) Done() bool {
	return w.done.Load()
}

// addTask pushes a task onto this worker's own deque and clears its done
// flag — any worker that just produced work cannot also be finished.
func (w *Worker) addTask(t Task) {
	w.done.Store(false)
	w.Deque.Push(t)
}
