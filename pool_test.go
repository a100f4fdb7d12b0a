package gctrace

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type PoolTestSuite struct {
	suite.Suite
}

func TestPoolTestSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}

func (s *PoolTestSuite) TestInvalidWorkerCountIsAnError() {
	_, err := NewThreadPool(0, DefaultConfig())
	s.Error(err)
	_, err = NewThreadPool(-1, DefaultConfig())
	s.Error(err)
}

func (s *PoolTestSuite) TestNumWorkers() {
	p, err := NewThreadPool(5, DefaultConfig())
	s.Require().NoError(err)
	defer p.Shutdown()
	s.Equal(5, p.NumWorkers())
}

func (s *PoolTestSuite) TestShutdownIsIdempotent() {
	p, err := NewThreadPool(3, DefaultConfig())
	s.Require().NoError(err)
	s.NotPanics(func() {
		p.Shutdown()
		p.Shutdown()
	})
}

func (s *PoolTestSuite) TestBecomeWorkerZeroPanicsOnReentry() {
	p, err := NewThreadPool(2, DefaultConfig())
	s.Require().NoError(err)
	defer p.Shutdown()

	p.BecomeWorkerZero()
	s.Panics(func() { p.BecomeWorkerZero() })
	p.StopBeingWorkerZero()

	s.NotPanics(func() {
		w := p.BecomeWorkerZero()
		p.StopBeingWorkerZero()
		_ = w
	})
}

func (s *PoolTestSuite) TestWakeAndSleepToggleShouldWork() {
	p, err := NewThreadPool(2, DefaultConfig())
	s.Require().NoError(err)
	defer p.Shutdown()

	s.False(p.shouldWork.Load())
	p.WakeWorkers()
	s.True(p.shouldWork.Load())
	p.PutWorkersToSleep()
	s.False(p.shouldWork.Load())
}

func (s *PoolTestSuite) TestWaitForWorkersDrainsDistributedWork() {
	p, err := NewThreadPool(4, DefaultConfig())
	s.Require().NoError(err)
	defer p.Shutdown()

	p.WakeWorkers()
	w := p.BecomeWorkerZero()
	defer p.StopBeingWorkerZero()

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		w.addTask(func(*Worker) { count.Add(1) })
	}
	p.WaitForWorkers(w)
	p.PutWorkersToSleep()

	s.EqualValues(4, count.Load())
}
