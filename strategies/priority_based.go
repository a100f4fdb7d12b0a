package strategies

// WeightedItem is one unit of work with an estimated cost, e.g. an
// object's byte size during sweep — a chunk of ten tiny values is not the
// same amount of work as a chunk of one giant array, and range-based
// Partition has no way to see that.
type WeightedItem struct {
	Index  int
	Weight int64
}

// PriorityStrategy assigns weighted items to workers with the longest
// processing time (LPT) heuristic: items are considered heaviest first,
// and each goes to whichever worker currently carries the least total
// weight. It trades the other strategies' even index splits for even
// estimated-cost splits.
type PriorityStrategy struct{}

func (PriorityStrategy) Name() string { return "Priority Based" }

// Partition satisfies Strategy by weighting every item equally; callers
// that have real per-item costs should call AssignByWeight instead.
func (PriorityStrategy) Partition(total, numWorkers int) []Range {
	return splitEven(total, numWorkers)
}

// AssignByWeight buckets items across numWorkers bins using LPT
// scheduling and returns, for each worker, the indices assigned to it.
func (PriorityStrategy) AssignByWeight(items []WeightedItem, numWorkers int) [][]int {
	if numWorkers <= 0 {
		return nil
	}
	assignments := make([][]int, numWorkers)

	sorted := make([]WeightedItem, len(items))
	copy(sorted, items)
	sortByWeightDescending(sorted)

	loads := newLoadHeap(numWorkers)
	for _, item := range sorted {
		worker := loads.lightest()
		assignments[worker] = append(assignments[worker], item.Index)
		loads.add(item.Weight)
	}
	return assignments
}

// OrderByWeight returns the indices [0, len(weights)) sorted so the
// heaviest item comes first. Pushing tasks in this order onto a shared
// deque means the costliest chunk is the first thing any idle worker
// steals, instead of sitting at the far end behind a run of cheap ones.
func (PriorityStrategy) OrderByWeight(weights []int64) []int {
	items := make([]WeightedItem, len(weights))
	for i, w := range weights {
		items[i] = WeightedItem{Index: i, Weight: w}
	}
	sortByWeightDescending(items)
	order := make([]int, len(items))
	for i, item := range items {
		order[i] = item.Index
	}
	return order
}

func sortByWeightDescending(items []WeightedItem) {
	// Small-n insertion sort: sweep chunk counts are in the hundreds at
	// most, so an O(n^2) sort grounded on the same bubble-style approach
	// as the rest of this package is clearer than pulling in sort.Slice.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Weight > items[j-1].Weight; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// loadHeap is a binary min-heap over per-worker running totals, tracking
// accumulated weight per worker instead of per job. Loads only ever grow,
// and only at the root, so bubbleDown is the only re-heapify step it needs.
type loadHeap struct {
	workerID []int
	load     []int64
}

func newLoadHeap(numWorkers int) *loadHeap {
	h := &loadHeap{workerID: make([]int, numWorkers), load: make([]int64, numWorkers)}
	for i := range h.workerID {
		h.workerID[i] = i
	}
	return h
}

// lightest returns the worker ID currently carrying the least weight.
func (h *loadHeap) lightest() int {
	return h.workerID[0]
}

// add credits delta weight to the currently lightest worker (the heap
// root) and re-heapifies.
func (h *loadHeap) add(delta int64) {
	h.load[0] += delta
	h.bubbleDown(0)
}

func (h *loadHeap) bubbleDown(index int) {
	n := len(h.load)
	for {
		left, right := 2*index+1, 2*index+2
		smallest := index
		if left < n && h.load[left] < h.load[smallest] {
			smallest = left
		}
		if right < n && h.load[right] < h.load[smallest] {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.load[index], h.load[smallest] = h.load[smallest], h.load[index]
		h.workerID[index], h.workerID[smallest] = h.workerID[smallest], h.workerID[index]
		index = smallest
	}
}
