// Package strategies implements the fan-out distribution policies the
// collector can use to split a bulk container (an array's indices, a
// sweep pass's object count) into per-worker chunks. It mirrors the shape
// of a generic worker-pool's distribution strategies, specialised to the
// one thing the collector ever needs to partition: a contiguous range of
// indices, or a slice of differently-weighted units of work.
package strategies

// Range is a half-open index interval [Start, End) assigned to a single
// chunk of fan-out work.
type Range struct {
	Start int
	End   int
}

// Len reports the number of indices covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Strategy partitions [0, total) into the chunks that will be pushed onto
// the calling worker's deque for the rest of the pool to execute or steal. Different
// strategies trade off coarse chunks (less scheduling overhead, worse load
// balance) against fine chunks (more overhead, better balance under
// stealing).
type Strategy interface {
	// Partition splits total indices across numWorkers and returns the
	// chunks in push order. It never returns an empty Range and the
	// returned ranges never overlap or exceed [0, total).
	Partition(total, numWorkers int) []Range
	Name() string
}

// DistributionStrategy identifies a registered Strategy by kind, the way
// the original DistributionStrategy enum selected a generic job-dispatch
// policy.
type DistributionStrategy int

const (
	Chunked DistributionStrategy = iota
	RoundRobin
	WorkStealing
	Adaptive
)

// New returns the Strategy instance for kind, defaulting to Chunked for an
// unrecognised value.
func New(kind DistributionStrategy) Strategy {
	switch kind {
	case RoundRobin:
		return RoundRobinStrategy{}
	case WorkStealing:
		return WorkStealingStrategy{}
	case Adaptive:
		return AdaptiveStrategy{}
	default:
		return ChunkedStrategy{}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// splitEven partitions [0, total) into at most numChunks contiguous,
// roughly equal ranges — the shared primitive every range-based strategy
// here builds on, differing only in how many chunks they ask for.
func splitEven(total, numChunks int) []Range {
	if total <= 0 || numChunks <= 0 {
		return nil
	}
	chunkSize := (total + numChunks - 1) / numChunks
	ranges := make([]Range, 0, numChunks)
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}
