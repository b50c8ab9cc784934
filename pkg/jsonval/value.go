// Package jsonval implements the JSON value model used by the noderpc
// protocol engine.
//
// A Value is a closed variant over the six JSON types. Numbers are
// kept in their exact textual form and are never materialized as
// float64 inside this package; a typed codec (such as the Amount codec
// in pkg/rpc) interprets the text when the caller asks for a concrete
// type. Objects preserve insertion order so that serialization is
// deterministic.
package jsonval

import "strconv"

// Kind identifies which JSON type a Value holds.
type Kind uint8

const (
	// KindNull is the JSON null value.
	KindNull Kind = iota
	// KindBool is a JSON boolean.
	KindBool
	// KindNumber is a JSON number, kept as its exact literal text.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is a string-keyed mapping with insertion order preserved.
	KindObject
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a single JSON value. The zero Value is JSON null.
// Containers own their children exclusively; no cycles are possible
// by construction.
type Value struct {
	kind Kind
	b    bool
	text string // number literal or string content
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String returns a JSON string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a JSON number from its literal text. The literal is
// stored verbatim; it must already be valid JSON number syntax (use
// Parse or the typed constructors when in doubt).
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Int returns a JSON number holding the given integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Uint returns a JSON number holding the given unsigned integer.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, text: strconv.FormatUint(u, 10)}
}

// Array returns a JSON array of the given items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an Object into a Value.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind returns which JSON type the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolVal returns the boolean content. ok is false if the value is not
// a boolean.
func (v Value) BoolVal() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// NumberText returns the exact number literal. ok is false if the
// value is not a number.
func (v Value) NumberText() (text string, ok bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// StringVal returns the string content. ok is false if the value is
// not a string.
func (v Value) StringVal() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Items returns the array elements. ok is false if the value is not an
// array. The returned slice is owned by the value and must not be
// mutated.
func (v Value) Items() (items []Value, ok bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Obj returns the object content. ok is false if the value is not an
// object.
func (v Value) Obj() (obj *Object, ok bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Equal reports deep equality. Numbers compare by their literal text,
// so "1.0" and "1" are distinct; the model never decides numeric
// equivalence on behalf of a typed codec.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(other.obj)
	default:
		return false
	}
}

// Object is a string-keyed mapping of JSON values. Keys keep their
// insertion order for serialization; lookups are by key regardless of
// order.
type Object struct {
	keys []string
	idx  map[string]int
	vals []Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{idx: make(map[string]int)}
}

// Set stores a value under key, replacing any previous value while
// keeping the key's original position.
func (o *Object) Set(key string, v Value) *Object {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = v
		return o
	}
	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.idx[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is
// owned by the object and must not be mutated.
func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	// Key order is a serialization concern, not an identity one.
	for i, k := range o.keys {
		ov, ok := other.Get(k)
		if !ok || !o.vals[i].Equal(ov) {
			return false
		}
	}
	return true
}
