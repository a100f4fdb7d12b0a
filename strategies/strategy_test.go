package strategies

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
}

func TestStrategyTestSuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

// assertFullCoverage checks that ranges exactly tile [0, total) with no
// gaps, no overlaps, and ascending order — the contract every Strategy
// implementation must satisfy regardless of how it chooses chunk sizes.
func (s *StrategyTestSuite) assertFullCoverage(ranges []Range, total int) {
	covered := 0
	for i, r := range ranges {
		s.Greater(r.Len(), 0, "range %d must not be empty", i)
		s.Equal(covered, r.Start, "range %d must start where the previous one ended", i)
		covered = r.End
	}
	s.Equal(total, covered, "ranges must exactly cover [0, total)")
}

func (s *StrategyTestSuite) TestChunkedCoversEverything() {
	for _, tc := range []struct{ total, workers int }{{100, 4}, {7, 3}, {1, 1}, {0, 4}} {
		s.assertFullCoverage(ChunkedStrategy{}.Partition(tc.total, tc.workers), tc.total)
	}
}

func (s *StrategyTestSuite) TestRoundRobinCoversEverything() {
	for _, tc := range []struct{ total, workers int }{{1000, 4}, {5, 3}, {0, 4}} {
		s.assertFullCoverage(RoundRobinStrategy{}.Partition(tc.total, tc.workers), tc.total)
	}
}

func (s *StrategyTestSuite) TestRoundRobinProducesMoreChunksThanChunked() {
	total, workers := 1000, 4
	chunked := ChunkedStrategy{}.Partition(total, workers)
	roundRobin := RoundRobinStrategy{}.Partition(total, workers)
	s.Greater(len(roundRobin), len(chunked))
}

func (s *StrategyTestSuite) TestWorkStealingCoversEverythingAndIsFinestGrained() {
	total, workers := 1000, 4
	s.assertFullCoverage(WorkStealingStrategy{}.Partition(total, workers), total)

	fine := WorkStealingStrategy{}.Partition(total, workers)
	coarse := ChunkedStrategy{}.Partition(total, workers)
	s.Greater(len(fine), len(coarse))
}

func (s *StrategyTestSuite) TestAdaptivePicksChunkedInMidRange() {
	total, workers := 100, 4 // between 2*workers and 64*workers
	adaptive := AdaptiveStrategy{}.Partition(total, workers)
	chunked := ChunkedStrategy{}.Partition(total, workers)
	s.Equal(chunked, adaptive)
}

func (s *StrategyTestSuite) TestAdaptivePicksWorkStealingForLargeInput() {
	total, workers := 100000, 4
	adaptive := AdaptiveStrategy{}.Partition(total, workers)
	workStealing := WorkStealingStrategy{}.Partition(total, workers)
	s.Equal(workStealing, adaptive)
}

func (s *StrategyTestSuite) TestNewSelectsByKind() {
	s.Equal("Chunked", New(Chunked).Name())
	s.Equal("Round Robin", New(RoundRobin).Name())
	s.Equal("Work Stealing", New(WorkStealing).Name())
	s.Equal("Adaptive", New(Adaptive).Name())
}

func (s *StrategyTestSuite) TestAssignByWeightBalancesLoad() {
	items := []WeightedItem{
		{Index: 0, Weight: 100},
		{Index: 1, Weight: 10},
		{Index: 2, Weight: 10},
		{Index: 3, Weight: 10},
		{Index: 4, Weight: 10},
	}
	assignments := PriorityStrategy{}.AssignByWeight(items, 2)
	s.Len(assignments, 2)

	totalAssigned := 0
	for _, bin := range assignments {
		totalAssigned += len(bin)
	}
	s.Equal(len(items), totalAssigned)

	// The single heavy item must land alone in one bin for the loads to
	// come out anywhere close to balanced.
	var heavyBin []int
	for _, bin := range assignments {
		for _, idx := range bin {
			if idx == 0 {
				heavyBin = bin
			}
		}
	}
	s.Len(heavyBin, 1)
}

func (s *StrategyTestSuite) TestOrderByWeightDescending() {
	order := PriorityStrategy{}.OrderByWeight([]int64{3, 9, 1, 7})
	s.Equal([]int{1, 3, 0, 2}, order)
}
