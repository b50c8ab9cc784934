package rpc

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// ID is the correlation token linking a request to its response. The
// wire allows either a string or a number; the zero ID is unset and
// rejected by the request builder.
type ID struct {
	v jsonval.Value
}

// NumberID creates a numeric correlation id.
func NumberID(n uint64) ID {
	return ID{v: jsonval.Uint(n)}
}

// StringID creates a string correlation id.
func StringID(s string) ID {
	return ID{v: jsonval.String(s)}
}

// idFromValue builds an ID from a decoded wire value. Only strings and
// numbers are valid correlation tokens.
func idFromValue(v jsonval.Value) (ID, bool) {
	switch v.Kind() {
	case jsonval.KindString, jsonval.KindNumber:
		return ID{v: v}, true
	default:
		return ID{}, false
	}
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id.v.IsNull()
}

// Equal reports whether two ids are the same token. A string id never
// equals a numeric id, even if their texts agree.
func (id ID) Equal(other ID) bool {
	return id.v.Equal(other.v)
}

// JSONValue returns the id as a JSON value for serialization.
func (id ID) JSONValue() jsonval.Value {
	return id.v
}

// String returns the id in its serialized wire form, for logs and
// error messages.
func (id ID) String() string {
	if id.IsZero() {
		return "<unset>"
	}
	return string(id.v.Marshal())
}

// IDAllocator issues correlation ids. Ids must be unique among
// concurrently outstanding calls; implementations must be safe for
// concurrent use.
type IDAllocator interface {
	// Next returns a fresh correlation id.
	Next() ID
}

// CounterIDAllocator issues monotonically increasing numeric ids from
// a shared atomic counter.
type CounterIDAllocator struct {
	last atomic.Uint64
}

var _ IDAllocator = (*CounterIDAllocator)(nil)

// NewCounterIDAllocator creates an allocator whose first issued id is
// start+1.
func NewCounterIDAllocator(start uint64) *CounterIDAllocator {
	a := &CounterIDAllocator{}
	a.last.Store(start)
	return a
}

// Next implements IDAllocator.
func (a *CounterIDAllocator) Next() ID {
	return NumberID(a.last.Add(1))
}

// RandomIDAllocator issues UUID string tokens. Useful when several
// independent callers share one transport and a single counter cannot
// be shared.
type RandomIDAllocator struct{}

var _ IDAllocator = RandomIDAllocator{}

// Next implements IDAllocator.
func (RandomIDAllocator) Next() ID {
	return StringID(uuid.NewString())
}
