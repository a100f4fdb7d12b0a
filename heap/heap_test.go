package heap

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type HeapTestSuite struct {
	suite.Suite
}

func TestHeapTestSuite(t *testing.T) {
	suite.Run(t, new(HeapTestSuite))
}

func (s *HeapTestSuite) TestObjPanicsOnNil() {
	s.Panics(func() { Obj(nil) })
}

func (s *HeapTestSuite) TestIsObj() {
	o := NewObject(KindString, 1, 0, nil)
	s.True(Obj(o).IsObj())
	s.False(Nil().IsObj())
	s.False(Int(3).IsObj())
}

func (s *HeapTestSuite) TestTryMarkIsOnceOnly() {
	o := NewObject(KindString, 1, 0, nil)
	s.False(o.Marked())
	s.True(o.TryMark())
	s.True(o.Marked())
	s.False(o.TryMark(), "a second TryMark must fail once the bit is set")
}

func (s *HeapTestSuite) TestSweepExchangeResetsAndReportsPrevious() {
	o := NewObject(KindString, 1, 0, nil)
	s.False(o.SweepExchange(), "never-marked object is white")
	o.TryMark()
	s.True(o.SweepExchange(), "marked object survives and reports true")
	s.False(o.Marked(), "mark bit is cleared for the next cycle")
}

func (s *HeapTestSuite) TestHeapLinkAndCount() {
	h := &Heap{}
	s.EqualValues(0, h.ObjectCount())

	a := NewObject(KindString, 1, 0, nil)
	b := NewObject(KindString, 2, 0, nil)
	h.Link(a)
	h.Link(b)

	s.EqualValues(2, h.ObjectCount())
	s.Same(b, h.Objects, "Link pushes onto the front of the list")
	s.Same(a, h.Objects.Next)

	h.AdjustCount(-1)
	s.EqualValues(1, h.ObjectCount())
}

func (s *HeapTestSuite) TestValueArrayGrowthAndOps() {
	a := NewValueArray()
	s.Equal(0, a.Capacity())

	for i := 0; i < 20; i++ {
		a.Write(Int(int64(i)))
	}
	s.Equal(20, a.Count)
	s.GreaterOrEqual(a.Capacity(), 20)
	s.Equal(int64(5), a.At(5).Int)

	popped := a.Pop()
	s.Equal(int64(19), popped.Int)
	s.Equal(19, a.Count)

	removed := a.RemoveAt(0)
	s.Equal(int64(0), removed.Int)
	s.Equal(int64(1), a.At(0).Int)

	s.True(a.RemoveAt(1000).Tag == TagNil)
}

func (s *HeapTestSuite) TestHashTableSetGetDelete() {
	t := NewHashTable()
	key := Obj(NewObject(KindString, 42, 0, nil))

	isNew := t.Set(key, Int(7))
	s.True(isNew)
	v, ok := t.Get(key)
	s.True(ok)
	s.Equal(int64(7), v.Int)

	isNew = t.Set(key, Int(9))
	s.False(isNew, "re-setting an existing key is not a new entry")
	v, _ = t.Get(key)
	s.Equal(int64(9), v.Int)

	s.True(t.Delete(key))
	_, ok = t.Get(key)
	s.False(ok)
	s.False(t.Delete(key), "deleting twice reports false the second time")
}

func (s *HeapTestSuite) TestHashTableGrowsUnderLoad() {
	t := NewHashTable()
	for i := 0; i < 100; i++ {
		t.Set(Int(int64(i)), Int(int64(i * 2)))
	}
	s.Equal(100, t.Count)
	for i := 0; i < 100; i++ {
		v, ok := t.Get(Int(int64(i)))
		s.True(ok)
		s.Equal(int64(i*2), v.Int)
	}
}

func (s *HeapTestSuite) TestRemoveDestroyedTombstonesDeadKeys() {
	t := NewHashTable()
	dead := NewObject(KindString, 1, 0, nil)
	alive := NewObject(KindString, 2, 0, nil)

	t.Set(Obj(dead), Bool(true))
	t.Set(Obj(alive), Bool(true))

	removed := t.RemoveDestroyed(map[*Object]struct{}{dead: {}})
	s.Equal(1, removed)

	_, ok := t.Get(Obj(dead))
	s.False(ok)
	_, ok = t.Get(Obj(alive))
	s.True(ok)
}

func (s *HeapTestSuite) TestSlotSkipsEmptyAndTombstoneBuckets() {
	t := NewHashTable()
	a := Int(1)
	b := Int(2)
	t.Set(a, Int(10))
	t.Set(b, Int(20))
	t.Delete(a)

	var seenKeys, seenValues []Value
	for i := 0; i < t.Capacity(); i++ {
		key, value, ok := t.Slot(i)
		if !ok {
			continue
		}
		seenKeys = append(seenKeys, key)
		seenValues = append(seenValues, value)
	}

	s.Len(seenKeys, 1, "deleted key's tombstone slot must not report ok")
	s.Equal(int64(2), seenKeys[0].Int)
	s.Equal(int64(20), seenValues[0].Int)
}

func (s *HeapTestSuite) TestRootFuncAdapter() {
	o := NewObject(KindString, 1, 0, nil)
	var marked []Value
	RootFunc(func(mark func(Value)) {
		mark(Obj(o))
	}).MarkRoots(func(v Value) {
		marked = append(marked, v)
	})
	s.Len(marked, 1)
	s.Same(o, marked[0].Obj)
}
