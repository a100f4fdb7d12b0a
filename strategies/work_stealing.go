package strategies

// WorkStealingStrategy produces the finest-grained split of the three
// range strategies: many more chunks than workers, so a worker that races
// ahead always has something nearby to steal rather than waiting out a
// coarse neighbor's last block. The actual lock-free stealing happens in
// the collector's own Deque; this strategy only decides how many chunks
// to hand it.
type WorkStealingStrategy struct{}

func (WorkStealingStrategy) Name() string { return "Work Stealing" }

func (WorkStealingStrategy) Partition(total, numWorkers int) []Range {
	if total <= 0 || numWorkers <= 0 {
		return nil
	}
	const laps = 16
	numChunks := min(max(numWorkers*laps, 1), total)
	return splitEven(total, numChunks)
}
