package heap

// Tag discriminates the payload a Value carries.
type Tag int

const (
	TagNil Tag = iota
	TagBool
	TagInt
	TagFloat
	TagHandler
	TagObj
	// tagEmptyInternal marks an open hash-table slot as never-occupied. It is
	// not constructible outside this package precisely so it can never be
	// confused with a user-visible nil — see HashTable.
	tagEmptyInternal
)

// Value is the tagged union every slot in a ValueArray or HashTable holds.
// Type, when set, points at the value's type-class — itself a heap object —
// mirroring the original VM's "every value carries a pointer to its
// type-class" rule.
type Value struct {
	Tag     Tag
	Type    *Object
	Bool    bool
	Int     int64
	Float   float64
	Handler uint16
	Obj     *Object
}

// Nil returns the nil value.
func Nil() Value { return Value{Tag: TagNil} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Tag: TagBool, Bool: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Tag: TagInt, Int: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{Tag: TagFloat, Float: f} }

// Handler returns a small handler-index value (e.g. an exception-handler
// slot).
func Handler(h uint16) Value { return Value{Tag: TagHandler, Handler: h} }

// Obj returns a heap-reference value. Passing a nil *Object panics — use
// Nil() for the absence of a value.
func Obj(o *Object) Value {
	if o == nil {
		panic("heap: Obj called with a nil *Object; use Nil() instead")
	}
	return Value{Tag: TagObj, Obj: o}
}

// IsObj reports whether v is a heap reference.
func (v Value) IsObj() bool {
	return v.Tag == TagObj && v.Obj != nil
}

// emptyInternal is the hash-table sentinel distinguishing an empty slot from
// a user-supplied nil key.
var emptyInternal = Value{Tag: tagEmptyInternal}

// isEmptyInternal reports whether v is the hash-table's internal empty-slot
// sentinel. Marking must skip these.
func isEmptyInternal(v Value) bool {
	return v.Tag == tagEmptyInternal
}
