// Package heap defines the minimal object graph shape the garbage collector
// needs: heap objects threaded on a global singly-linked list, the two bulk
// container shapes it fans mark-work out over (ValueArray, HashTable), and
// the root-set contract the mutator implements. Everything else about the
// runtime the objects belong to — bytecode, native methods, string interning
// — is the embedder's business.
package heap

import "sync/atomic"

// Kind discriminates the shape of a heap object. The collector itself never
// switches on Kind; it is here for the embedder's bookkeeping and for
// diagnostics.
type Kind int

const (
	KindBoundMethod Kind = iota
	KindClass
	KindClosure
	KindFunction
	KindNativeFunction
	KindString
	KindUpvalue
	KindSequence
	KindTuple
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBoundMethod:
		return "bound-method"
	case KindClass:
		return "class"
	case KindClosure:
		return "closure"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native-function"
	case KindString:
		return "string"
	case KindUpvalue:
		return "upvalue"
	case KindSequence:
		return "sequence"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Destroy runs an object's type-specific destructor during sweep. It must
// not touch Next or the mark bit; the sweeper owns both.
type Destroy func(*Object)

// Object is the header every heap value shares. Objects are never relocated;
// their address is their identity for the lifetime of the object.
//
// Array, Table and Edges are the object's outgoing references, in whichever
// shape its kind needs: a bulk value sequence, a bulk hash table, or a small
// fixed set of values (closures' upvalues, a bound method's receiver, an
// upvalue's captured slot). At most one is populated for any given kind, but
// the collector does not enforce that — it traces whichever are non-empty.
type Object struct {
	Kind   Kind
	Hash   uint64
	Size   uintptr
	Next   *Object
	marked atomic.Bool

	Array   *ValueArray
	Table   *HashTable
	Edges   []Value
	Destroy Destroy
}

// NewObject builds a fresh, unmarked object ready to be linked onto a Heap's
// object list.
func NewObject(kind Kind, hash uint64, size uintptr, destroy Destroy) *Object {
	return &Object{Kind: kind, Hash: hash, Size: size, Destroy: destroy}
}

// Marked reports the object's current mark bit.
func (o *Object) Marked() bool {
	return o.marked.Load()
}

// TryMark atomically flips the mark bit from false to true and reports
// whether this call was the one that did it. The first caller to succeed is
// responsible for tracing the object's outgoing edges; later callers (racing
// through a cycle in the graph) must stop, which is the collector's sole
// cycle guard.
func (o *Object) TryMark() bool {
	return o.marked.CompareAndSwap(false, true)
}

// SweepExchange atomically resets the mark bit to false and reports its
// previous value: true means the object survives this cycle, false means it
// is white and must be destroyed.
func (o *Object) SweepExchange() bool {
	return o.marked.Swap(false)
}

// Heap is the embedder-owned state the collector mutates: the head of the
// global object list and a count of live objects.
//
// Count is maintained by the embedder's allocator and is treated by the
// sweep scheduler as an upper bound, not a promise — see Heap.Objects
// iteration in the sweep partitioner, which clamps at a nil Next rather than
// trusting Count to index a fixed-length walk.
type Heap struct {
	Objects *Object
	count   atomic.Int64

	// InternedStrings is swept of entries whose key object was destroyed
	// this cycle, once re-stitching completes. Nil if the embedder does not
	// intern strings.
	InternedStrings *HashTable
}

// ObjectCount returns the embedder's live-object counter.
func (h *Heap) ObjectCount() int64 {
	return h.count.Load()
}

// Link threads a freshly allocated object onto the front of the global list
// and increments the live-object counter.
func (h *Heap) Link(o *Object) {
	o.Next = h.Objects
	h.Objects = o
	h.count.Add(1)
}

// AdjustCount applies a delta to the live-object counter. The cycle driver
// (RunCycle) calls this after the sweep with the negative of the number of
// objects destroyed; embedders with their own allocation accounting may call it
// directly too.
func (h *Heap) AdjustCount(delta int64) {
	h.count.Add(delta)
}
