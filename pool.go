package gctrace

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// workerBackoff is how long a worker sleeps after finding no work anywhere,
// matching the ~1ms backoff spec.md §4.2 specifies.
const workerBackoff = time.Millisecond

// ThreadPool is the set of all workers participating in collection cycles,
// plus the pool-wide lifecycle flags and wake event spec.md §4 describes.
// It is created once when the embedding VM starts and destroyed once at VM
// shutdown.
type ThreadPool struct {
	config  Config
	workers []*Worker

	shutdown   atomic.Bool
	shouldWork atomic.Bool
	event      *manualResetEvent

	// zeroActive detects the mutator re-entering the collector recursively
	// while already acting as worker 0 — spec.md's design notes call this
	// out explicitly as "disallowed and must be detectable."
	zeroActive atomic.Bool

	heapCtl *heapController

	cycleMarked atomic.Int64

	wg sync.WaitGroup
}

// NewThreadPool creates n workers (n-1 of them backed by a dedicated
// goroutine; worker 0 is bound to whichever goroutine later calls
// BecomeWorkerZero) and returns the pool ready to run cycles. An invalid
// worker count is a fatal initialisation error, returned rather than
// aborting the process — the idiomatic Go substitute for the original's
// process exit on invalid configuration.
func NewThreadPool(n int, cfg Config) (*ThreadPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("gctrace: invalid worker count %d", n)
	}
	cfg.applyDefaults()

	p := &ThreadPool{
		config:  cfg,
		workers: make([]*Worker, n),
		event:   newManualResetEvent(),
		heapCtl: newHeapController(cfg),
	}

	for i := 0; i < n; i++ {
		p.workers[i] = &Worker{
			ID:    i,
			Deque: NewDeque(cfg.DequeInitialCapacity),
		}
		// A parked worker holds no work, so every worker starts out done.
		p.workers[i].done.Store(true)
	}

	for i := 1; i < n; i++ {
		p.wg.Add(1)
		go p.workerLoop(p.workers[i])
	}

	return p, nil
}

// NumWorkers returns the number of workers in the pool, including worker 0.
func (p *ThreadPool) NumWorkers() int {
	return len(p.workers)
}

// Shutdown signals every worker to exit, wakes any that are parked, and
// joins their goroutines. It is safe to call more than once.
func (p *ThreadPool) Shutdown() {
	if p.shutdown.Swap(true) {
		return
	}
	p.shouldWork.Store(true)
	p.event.Set()
	p.wg.Wait()
}

// BecomeWorkerZero binds the calling goroutine to worker 0 for the duration
// of one cycle. Go has no thread-local storage, so unlike the original's
// gc_assign_current_worker, the returned handle must be threaded explicitly
// through calls that need "the current worker" (ParallelMarkArray,
// ParallelMarkHashtable, WaitForWorkers).
//
// Calling this while worker 0 is already active — the mutator re-entering
// the collector recursively, which spec.md's design notes call out as
// disallowed — panics rather than silently corrupting the cycle.
func (p *ThreadPool) BecomeWorkerZero() *Worker {
	if !p.zeroActive.CompareAndSwap(false, true) {
		panic("gctrace: mutator re-entered the collector while already acting as worker 0")
	}
	return p.workers[0]
}

// StopBeingWorkerZero releases the worker-0 binding acquired by
// BecomeWorkerZero.
func (p *ThreadPool) StopBeingWorkerZero() {
	p.zeroActive.Store(false)
}

// WakeWorkers signals all workers to start looking for work.
func (p *ThreadPool) WakeWorkers() {
	p.config.Logf("[gctrace] waking workers\n")
	p.shouldWork.Store(true)
	p.event.Set()
}

// PutWorkersToSleep signals all workers to return to their parked state.
func (p *ThreadPool) PutWorkersToSleep() {
	p.config.Logf("[gctrace] putting workers to sleep\n")
	p.shouldWork.Store(false)
	p.event.Reset()
}

// doWork executes one step for w: try its own deque, then round-robin a
// single steal attempt against every other worker. Reports whether any work
// was found and executed.
func (p *ThreadPool) doWork(w *Worker) bool {
	if task, ok := w.Deque.Pop(); ok {
		task(w)
		return true
	}

	n := len(p.workers)
	for i := 0; i < n; i++ {
		victim := p.workers[i]
		if victim.ID == w.ID {
			continue
		}
		if p.config.EnableWorkerStats {
			w.Stats.StealAttempts.Add(1)
		}
		if task, ok := victim.Deque.Steal(); ok {
			if p.config.EnableWorkerStats {
				w.Stats.SuccessfulSteals.Add(1)
			}
			task(w)
			return true
		}
	}
	return false
}

// workerLoop is the goroutine body for workers 1..n-1: park on the wake
// event between cycles, otherwise repeatedly do one work step, backing off
// briefly whenever nothing was found anywhere.
func (p *ThreadPool) workerLoop(w *Worker) {
	defer p.wg.Done()
	for !p.shutdown.Load() {
		if !p.shouldWork.Load() {
			p.event.Wait()
			continue
		}

		w.done.Store(false)
		if !p.doWork(w) {
			w.done.Store(true)
			time.Sleep(workerBackoff)
		}
	}
}

// WaitForWorkers is the mutator-only drain loop: it participates in work on
// w (normally the worker-0 handle from BecomeWorkerZero) and returns once
// every other worker reports done with every deque empty.
func (p *ThreadPool) WaitForWorkers(w *Worker) {
	for {
		if p.doWork(w) {
			continue
		}

		allDone := true
		for i := 1; i < len(p.workers); i++ {
			if !p.workers[i].Done() {
				allDone = false
				break
			}
		}
		if allDone {
			return
		}
	}
}
