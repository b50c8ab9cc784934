package rpc

import (
	"fmt"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// Request building errors
var (
	ErrEmptyMethod = fmt.Errorf("method must not be empty")
	ErrInvalidID   = fmt.Errorf("correlation id must be a string or a number")
)

// WebSocket transport errors
var (
	ErrAlreadyConnected  = fmt.Errorf("already connected")
	ErrNotConnected      = fmt.Errorf("not connected to server")
	ErrDialingWebsocket  = fmt.Errorf("error dialing websocket server")
	ErrSendingRequest    = fmt.Errorf("error sending request")
	ErrNoResponse        = fmt.Errorf("no response received")
	ErrConnectionTimeout = fmt.Errorf("websocket connection timeout")
	ErrReadingMessage    = fmt.Errorf("error reading websocket message")
)

// ProtocolError reports a payload that is well-formed JSON transport
// output but not a valid JSON-RPC response envelope: not an object,
// missing id, or carrying both or neither of result and error.
// Invalid JSON is also reported as a ProtocolError wrapping the
// underlying *jsonval.ParseError.
type ProtocolError struct {
	// Reason describes the envelope violation.
	Reason string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid rpc envelope: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid rpc envelope: %s", e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// CorrelationError reports a response whose id does not match the
// request it was correlated against. It guards against transports
// that multiplex several in-flight calls over one channel.
type CorrelationError struct {
	// Want is the id of the outstanding request.
	Want ID
	// Got is the id carried by the mismatched response.
	Got ID
}

// Error implements the error interface.
func (e *CorrelationError) Error() string {
	return fmt.Sprintf("response id %s does not match request id %s", e.Got, e.Want)
}

// DecodeError reports a result (or amount) that is present but not
// shaped as the caller expected, including monetary precision loss.
// It is distinct from a node-reported RPCError.
type DecodeError struct {
	// Reason describes the shape or precision mismatch.
	Reason string
	// Err is the underlying decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode result: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot decode result: %s", e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps an opaque failure from the byte-exchange
// channel. Callers implement retry/backoff around this type only;
// every other error kind indicates a logic or compatibility mismatch.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies node-reported errors into a closed set that
// callers can switch on without knowing each node's code table.
type ErrorKind uint8

const (
	// ErrorKindOther is an application-range error that passes through
	// with its original code and message.
	ErrorKindOther ErrorKind = iota
	// ErrorKindInvalidParameters means the node rejected the params.
	ErrorKindInvalidParameters
	// ErrorKindMethodNotFound means the method does not exist.
	ErrorKindMethodNotFound
	// ErrorKindInternalNodeError covers reserved-range protocol-level
	// failures inside the node.
	ErrorKindInternalNodeError
	// ErrorKindUnauthorized means the node refused the call for lack
	// of permission.
	ErrorKindUnauthorized
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidParameters:
		return "invalid_parameters"
	case ErrorKindMethodNotFound:
		return "method_not_found"
	case ErrorKindInternalNodeError:
		return "internal_node_error"
	case ErrorKindUnauthorized:
		return "unauthorized"
	default:
		return "other"
	}
}

// JSON-RPC reserved error codes. Codes in [-32768, -32000] are
// protocol-level; everything outside is node-specific.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
	codeParseError     = -32700
	codeUnauthorized   = -32001

	reservedRangeHigh = -32000
	reservedRangeLow  = -32768
)

// RPCError is a method-level failure explicitly reported by the node.
// It is constructed only by the response decoder from a well-formed
// error object and is immutable afterwards.
type RPCError struct {
	// Code is the node's numeric error code.
	Code int64
	// Message is the node's human-readable description.
	Message string
	// Data carries optional structured details; null when absent.
	Data jsonval.Value
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("node rpc error %d (%s): %s", e.Code, e.Kind(), e.Message)
}

// Kind maps the error code into the closed ErrorKind set following the
// JSON-RPC reserved-range convention.
func (e *RPCError) Kind() ErrorKind {
	switch e.Code {
	case codeMethodNotFound:
		return ErrorKindMethodNotFound
	case codeInvalidParams, codeInvalidRequest:
		return ErrorKindInvalidParameters
	case codeUnauthorized:
		return ErrorKindUnauthorized
	}
	if e.Code >= reservedRangeLow && e.Code <= reservedRangeHigh {
		return ErrorKindInternalNodeError
	}
	return ErrorKindOther
}
