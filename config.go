package gctrace

import "github.com/go-foundations/gctrace/strategies"

// Config holds tuning knobs for a ThreadPool. It mirrors the shape of the
// teacher workerpool.Config: a plain struct with a DefaultConfig
// constructor, no environment or file-based layer — this is an embedded
// library, not a standalone service.
type Config struct {
	// EnableWorkerStats turns on the optional diagnostic surface: per-worker
	// counts of objects marked, objects freed, steal attempts, successful
	// steals, and deque capacity.
	EnableWorkerStats bool

	// ParallelMarkArrayThreshold is the minimum element count below which
	// ParallelMarkArray marks inline instead of fanning out into tasks.
	ParallelMarkArrayThreshold int

	// ParallelMarkHashtableThreshold is the minimum bucket count below which
	// ParallelMarkHashtable marks inline instead of fanning out into tasks.
	ParallelMarkHashtableThreshold int

	// ParallelSweepThreshold is the minimum live-object count below which
	// the cycle driver sweeps serially instead of attempting a parallel
	// sweep at all.
	ParallelSweepThreshold int

	// DequeInitialCapacity is the starting capacity of every worker's
	// work-stealing deque.
	DequeInitialCapacity int

	// MinHeapThreshold is the floor NextGC never drops below.
	MinHeapThreshold int64

	// HeapGrowthFactor scales bytes-in-use into the next collection
	// threshold.
	HeapGrowthFactor float64

	// StressGC, when true, forces a collection check on every allocation.
	StressGC bool

	// Logf receives diagnostic trace lines, standing in for the original
	// collector's GC_WORKER_LOG/GC_SWEEP_LOG debug macros. Defaults to a
	// no-op.
	Logf func(format string, args ...any)

	// FanoutStrategy chooses how ParallelMarkArray and ParallelMarkHashtable
	// split their index range into chunks once they decide to fan out at
	// all. Defaults to strategies.ChunkedStrategy, the coarse even split.
	FanoutStrategy strategies.Strategy

	// SweepStrategy orders ParallelSweep's chunk tasks heaviest-first (by
	// object count) before they are pushed onto worker 0's deque. It does
	// not affect how partitionSweep splits the object list. Defaults to
	// strategies.PriorityStrategy.
	SweepStrategy strategies.PriorityStrategy
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableWorkerStats:              false,
		ParallelMarkArrayThreshold:     10000,
		ParallelMarkHashtableThreshold: 2000,
		ParallelSweepThreshold:         100000,
		DequeInitialCapacity:           1024,
		MinHeapThreshold:               1 << 20, // 1 MiB
		HeapGrowthFactor:               2.0,
		StressGC:                       false,
		Logf:                           func(string, ...any) {},
		FanoutStrategy:                 strategies.ChunkedStrategy{},
		SweepStrategy:                  strategies.PriorityStrategy{},
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.ParallelMarkArrayThreshold <= 0 {
		c.ParallelMarkArrayThreshold = defaults.ParallelMarkArrayThreshold
	}
	if c.ParallelMarkHashtableThreshold <= 0 {
		c.ParallelMarkHashtableThreshold = defaults.ParallelMarkHashtableThreshold
	}
	if c.ParallelSweepThreshold <= 0 {
		c.ParallelSweepThreshold = defaults.ParallelSweepThreshold
	}
	if c.DequeInitialCapacity <= 0 {
		c.DequeInitialCapacity = defaults.DequeInitialCapacity
	}
	if c.MinHeapThreshold <= 0 {
		c.MinHeapThreshold = defaults.MinHeapThreshold
	}
	if c.HeapGrowthFactor <= 0 {
		c.HeapGrowthFactor = defaults.HeapGrowthFactor
	}
	if c.Logf == nil {
		c.Logf = defaults.Logf
	}
	if c.FanoutStrategy == nil {
		c.FanoutStrategy = defaults.FanoutStrategy
	}
}
