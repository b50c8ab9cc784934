package rpc

import (
	"fmt"
	"strconv"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// Response is a decoded JSON-RPC reply envelope. Exactly one of
// Result and Err is populated for a well-formed reply; the decoder
// enforces this, treating JSON null the same as an absent member.
type Response struct {
	// ID is the correlation token echoed by the node.
	ID ID
	// Result holds the method result; null when the call failed.
	Result jsonval.Value
	// Err holds the node-reported failure; nil when the call succeeded.
	Err *RPCError
}

// DecodeResponse parses a reply payload into a Response.
//
// It fails with a *ProtocolError if the payload is not valid JSON, is
// not a JSON object, lacks an id, or has both or neither of result
// and error populated. Unknown envelope members are ignored.
func DecodeResponse(data []byte) (Response, error) {
	root, err := jsonval.Parse(data)
	if err != nil {
		return Response{}, &ProtocolError{Reason: "payload is not valid JSON", Err: err}
	}

	obj, ok := root.Obj()
	if !ok {
		return Response{}, &ProtocolError{Reason: fmt.Sprintf("payload is a JSON %s, want object", root.Kind())}
	}

	idVal, ok := obj.Get("id")
	if !ok {
		return Response{}, &ProtocolError{Reason: "missing id"}
	}
	id, ok := idFromValue(idVal)
	if !ok {
		return Response{}, &ProtocolError{Reason: fmt.Sprintf("id is a JSON %s, want string or number", idVal.Kind())}
	}

	result, _ := obj.Get("result")
	errVal, _ := obj.Get("error")

	switch {
	case result.IsNull() && errVal.IsNull():
		return Response{}, &ProtocolError{Reason: "neither result nor error is populated"}
	case !result.IsNull() && !errVal.IsNull():
		return Response{}, &ProtocolError{Reason: "both result and error are populated"}
	case !errVal.IsNull():
		rpcErr, err := decodeRPCError(errVal)
		if err != nil {
			return Response{}, err
		}
		return Response{ID: id, Err: rpcErr}, nil
	default:
		return Response{ID: id, Result: result}, nil
	}
}

// decodeRPCError validates a non-null error member. A malformed error
// object is an envelope violation, not a node error.
func decodeRPCError(v jsonval.Value) (*RPCError, error) {
	obj, ok := v.Obj()
	if !ok {
		return nil, &ProtocolError{Reason: fmt.Sprintf("error member is a JSON %s, want object", v.Kind())}
	}

	codeVal, ok := obj.Get("code")
	if !ok {
		return nil, &ProtocolError{Reason: "error object lacks a code"}
	}
	codeText, ok := codeVal.NumberText()
	if !ok {
		return nil, &ProtocolError{Reason: fmt.Sprintf("error code is a JSON %s, want number", codeVal.Kind())}
	}
	code, err := strconv.ParseInt(codeText, 10, 64)
	if err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("error code %s is not an integer", codeText)}
	}

	msgVal, ok := obj.Get("message")
	if !ok {
		return nil, &ProtocolError{Reason: "error object lacks a message"}
	}
	msg, ok := msgVal.StringVal()
	if !ok {
		return nil, &ProtocolError{Reason: fmt.Sprintf("error message is a JSON %s, want string", msgVal.Kind())}
	}

	data, _ := obj.Get("data")
	return &RPCError{Code: code, Message: msg, Data: data}, nil
}

// MatchResponse enforces id correlation: it fails with a
// *CorrelationError if the response carries a different id than the
// request it is being matched against. This guards against transports
// that multiplex multiple in-flight calls.
func MatchResponse(requestID ID, res Response) error {
	if !res.ID.Equal(requestID) {
		return &CorrelationError{Want: requestID, Got: res.ID}
	}
	return nil
}
