package heap

// RootProvider is implemented by the embedder (the VM). MarkRoots is called
// once per cycle, on the mutator's goroutine acting as worker 0, and must
// call mark once for every root value: stack slots, the open-upvalue chain,
// the globals table, the module cache, the interned-strings table, compiler
// roots, and any active call frames. mark is safe to call with primitive
// values; it is a no-op for them.
//
// The collector never constructs or inspects a root set itself — it only
// ever drives this callback.
type RootProvider interface {
	MarkRoots(mark func(Value))
}

// RootFunc adapts a plain function to RootProvider.
type RootFunc func(mark func(Value))

// MarkRoots implements RootProvider.
func (f RootFunc) MarkRoots(mark func(Value)) {
	f(mark)
}
