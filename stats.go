package gctrace

import (
	"fmt"
	"io"
)

// WorkerStatsSnapshot is a consistent, point-in-time copy of one worker's
// counters, safe to read after the counters have stopped changing (i.e.
// once every worker is parked — see WorkerStats's doc comment).
type WorkerStatsSnapshot struct {
	ID               int
	ObjectsMarked    int64
	ObjectsFreed     int64
	StealAttempts    uint64
	SuccessfulSteals uint64
	DequeCapacity    int64
}

// WorkerStats returns a snapshot of every worker's counters. Only
// meaningful when Config.EnableWorkerStats is set; otherwise every counter
// reads zero.
func (p *ThreadPool) WorkerStats() []WorkerStatsSnapshot {
	snapshots := make([]WorkerStatsSnapshot, len(p.workers))
	for i, w := range p.workers {
		snapshots[i] = WorkerStatsSnapshot{
			ID:               w.ID,
			ObjectsMarked:    w.Stats.ObjectsMarked.Load(),
			ObjectsFreed:     w.Stats.ObjectsFreed.Load(),
			StealAttempts:    w.Stats.StealAttempts.Load(),
			SuccessfulSteals: w.Stats.SuccessfulSteals.Load(),
			DequeCapacity:    w.Deque.Capacity(),
		}
	}
	return snapshots
}

// ResetWorkerStats zeroes every worker's counters, intended to be called
// right after PrintWorkerStats the way the original resets its table after
// each print.
func (p *ThreadPool) ResetWorkerStats() {
	for _, w := range p.workers {
		w.Stats.ObjectsMarked.Store(0)
		w.Stats.ObjectsFreed.Store(0)
		w.Stats.StealAttempts.Store(0)
		w.Stats.SuccessfulSteals.Store(0)
	}
}

// PrintWorkerStats writes the per-worker diagnostic table to out, in the
// same column shape as the original's gc_print_worker_stats.
func (p *ThreadPool) PrintWorkerStats(out io.Writer) {
	fmt.Fprintf(out, "Worker Statistics:\n")
	fmt.Fprintf(out, "  %-6s  %-12s  %-12s  %-12s  %-12s  %-12s  %-12s\n",
		"Worker", "Marked", "Freed", "Steal Tries", "Steals", "Success Rate", "Deque Cap")

	var totalMarked, totalFreed int64
	for _, s := range p.WorkerStats() {
		rate := 0.0
		if s.StealAttempts > 0 {
			rate = float64(s.SuccessfulSteals) * 100.0 / float64(s.StealAttempts)
		}
		fmt.Fprintf(out, "  %-6d  %-12d  %-12d  %-12d  %-12d  %10.2f%%  %-12d\n",
			s.ID, s.ObjectsMarked, s.ObjectsFreed, s.StealAttempts, s.SuccessfulSteals, rate, s.DequeCapacity)
		totalMarked += s.ObjectsMarked
		totalFreed += s.ObjectsFreed
	}

	fmt.Fprintf(out, "  %-6s  %-12d  %-12d\n", "Total", totalMarked, totalFreed)
}
