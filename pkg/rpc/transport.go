package rpc

import (
	"context"
	"errors"
)

// Transport is the byte-exchange capability the dispatcher depends
// on: send a serialized request, receive the raw reply bytes, or fail.
// The core neither authenticates nor manages connection lifecycle;
// implementations do. A Transport must be safe for concurrent use.
type Transport interface {
	// Send delivers the request payload and returns the reply payload.
	// The context bounds the exchange; implementations should return
	// promptly once it is cancelled.
	Send(ctx context.Context, req []byte) ([]byte, error)
}

// asTransportError ensures every failure crossing the transport
// boundary surfaces as a *TransportError, so callers can scope their
// retry policy to this one type.
func asTransportError(err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Err: err}
}
