package heap

// The constructors below build concrete heap objects of each discriminant
// spec.md §3 names. They exist so the collector's tests can build realistic
// object graphs (including the cyclic and self-referential shapes spec.md
// §9 calls out — upvalues pointing back at a closure, classes referencing
// their own method table) without needing the rest of the VM. An embedder
// is free to lay its own objects out differently; only the Object header's
// Array/Table/Edges fields matter to the collector.

// NewString allocates a leaf string object: no outgoing references.
func NewString(hash uint64, chars string, destroy Destroy) *Object {
	o := NewObject(KindString, hash, uintptr(len(chars)), destroy)
	return o
}

// NewSequence allocates a mutable, ordered sequence backed by a ValueArray.
func NewSequence(hash uint64, destroy Destroy) *Object {
	o := NewObject(KindSequence, hash, 0, destroy)
	o.Array = NewValueArray()
	return o
}

// NewTuple allocates an immutable ordered sequence backed by a ValueArray.
func NewTuple(hash uint64, items []Value, destroy Destroy) *Object {
	o := NewObject(KindTuple, hash, 0, destroy)
	arr := NewValueArray()
	for _, v := range items {
		arr.Write(v)
	}
	o.Array = arr
	return o
}

// NewGenericObject allocates a field bag backed by a HashTable — the
// fallback shape for ordinary instances.
func NewGenericObject(hash uint64, destroy Destroy) *Object {
	o := NewObject(KindObject, hash, 0, destroy)
	o.Table = NewHashTable()
	return o
}

// NewClass allocates a class object. Its method table is a HashTable, like
// any other object's fields, so it traces the same way; classes may list
// themselves in their own method table (a self-reference the mark-bit guard
// alone resolves).
func NewClass(hash uint64, destroy Destroy) *Object {
	o := NewObject(KindClass, hash, 0, destroy)
	o.Table = NewHashTable()
	return o
}

// NewUpvalue allocates an open or closed upvalue. Edges holds the single
// captured value; a still-open upvalue typically aliases a stack slot the
// root set also walks, which is one of the back-referencing shapes the mark
// bit alone must resolve without a separate cycle check.
func NewUpvalue(hash uint64, captured Value, destroy Destroy) *Object {
	o := NewObject(KindUpvalue, hash, 0, destroy)
	o.Edges = []Value{captured}
	return o
}

// SetUpvalueValue updates the value an upvalue points at — used when closing
// an upvalue over a stack slot.
func SetUpvalueValue(upvalue *Object, v Value) {
	upvalue.Edges = []Value{v}
}

// NewFunction allocates a function template: its constant pool is the
// ValueArray the mark scheduler fans out over for large functions.
func NewFunction(hash uint64, destroy Destroy) *Object {
	o := NewObject(KindFunction, hash, 0, destroy)
	o.Array = NewValueArray()
	return o
}

// NewClosure allocates a closure wrapping a function and its captured
// upvalues. The function and each upvalue are traced as fixed edges; the
// function's own constant pool fans out independently once the function
// object itself is marked.
func NewClosure(hash uint64, function *Object, upvalues []*Object, destroy Destroy) *Object {
	o := NewObject(KindClosure, hash, 0, destroy)
	edges := make([]Value, 0, len(upvalues)+1)
	edges = append(edges, Obj(function))
	for _, uv := range upvalues {
		edges = append(edges, Obj(uv))
	}
	o.Edges = edges
	return o
}

// NewBoundMethod allocates a bound method: a receiver value plus the
// closure it is bound to.
func NewBoundMethod(hash uint64, receiver Value, method *Object, destroy Destroy) *Object {
	o := NewObject(KindBoundMethod, hash, 0, destroy)
	o.Edges = []Value{receiver, Obj(method)}
	return o
}

// NewNativeFunction allocates a native function object. Native functions
// carry no heap references of their own.
func NewNativeFunction(hash uint64, destroy Destroy) *Object {
	return NewObject(KindNativeFunction, hash, 0, destroy)
}
