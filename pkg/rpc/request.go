package rpc

import (
	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// Request is a single JSON-RPC call envelope. It is constructed per
// call, serialized, and discarded once the matching response has been
// consumed.
//
// The wire form is:
//
//	{"method": "getblockcount", "params": [], "id": 1}
//
// Params are positional; the named-object variant is not emitted.
type Request struct {
	// Method is the RPC method to invoke.
	Method string
	// Params are the positional call arguments.
	Params []jsonval.Value
	// ID is the correlation token, unique per in-flight call.
	ID ID
}

// NewRequest assembles a request from a method name, positional
// params, and a correlation id. The method must be non-empty and the
// id must be set; param arity and types are each method wrapper's
// responsibility, not this layer's.
func NewRequest(method string, params []jsonval.Value, id ID) (Request, error) {
	if method == "" {
		return Request{}, ErrEmptyMethod
	}
	if id.IsZero() {
		return Request{}, ErrInvalidID
	}
	if params == nil {
		params = []jsonval.Value{}
	}
	return Request{Method: method, Params: params, ID: id}, nil
}

// MarshalJSON implements json.Marshaler. Serialization is
// deterministic: the envelope keys always appear as method, params,
// id.
func (r Request) MarshalJSON() ([]byte, error) {
	envelope := jsonval.NewObject().
		Set("method", jsonval.String(r.Method)).
		Set("params", jsonval.Array(r.Params...)).
		Set("id", r.ID.JSONValue())
	return jsonval.ObjectValue(envelope).Marshal(), nil
}

// Args converts typed Go arguments into positional params via
// jsonval.From. Types with custom JSON marshalers (such as Amount)
// keep their exact wire form.
func Args(vals ...any) ([]jsonval.Value, error) {
	params := make([]jsonval.Value, 0, len(vals))
	for _, x := range vals {
		v, err := jsonval.From(x)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	return params, nil
}
