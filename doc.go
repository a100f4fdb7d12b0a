// Package gctrace implements a parallel tracing garbage collector for an
// embedding bytecode virtual machine. It coordinates a pool of worker
// goroutines over lock-free work-stealing deques, parallelises the mark
// phase over the two bulk container shapes defined in package heap (ordered
// value sequences and open-addressed hash tables), and parallelises the
// sweep phase over the embedder's global object list.
//
// The collector never inspects VM internals beyond the heap package's
// iteration contract: the embedder supplies a heap.RootProvider and a
// heap.Heap, and gctrace supplies ThreadPool.RunCycle as the single
// synchronous entry point a quiesced mutator calls to run one collection.
package gctrace
