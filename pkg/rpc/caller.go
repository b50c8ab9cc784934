package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/coinbridge/noderpc/pkg/jsonval"
	"github.com/coinbridge/noderpc/pkg/log"
)

const tracerName = "github.com/coinbridge/noderpc"

// Caller is the typed dispatcher every method wrapper goes through.
// Each call walks the same path: encode args, allocate a fresh
// correlation id, hand serialized bytes to the transport, decode and
// correlate the reply, then surface either the result value or a
// structured error.
//
// The Caller itself is stateless and safe for concurrent use; the only
// shared resource is the id allocator, which is synchronized. Failures
// short-circuit — there are no retries and no partial state, so retry
// policy belongs to the caller of the Caller.
type Caller struct {
	transport Transport
	ids       IDAllocator
	metrics   *Metrics
	tracer    trace.Tracer
}

// CallerOption customizes a Caller.
type CallerOption func(*Caller)

// WithIDAllocator replaces the default monotonic counter allocator.
// Deterministic allocators make tests reproducible.
func WithIDAllocator(ids IDAllocator) CallerOption {
	return func(c *Caller) { c.ids = ids }
}

// WithMetrics attaches Prometheus metrics to the dispatcher.
func WithMetrics(m *Metrics) CallerOption {
	return func(c *Caller) { c.metrics = m }
}

// NewCaller creates a dispatcher over the given transport.
func NewCaller(transport Transport, opts ...CallerOption) *Caller {
	c := &Caller{
		transport: transport,
		ids:       NewCounterIDAllocator(0),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call invokes a method with positional params and returns the raw
// result value. Errors are one of: *TransportError, *ProtocolError,
// *CorrelationError, or a node-reported *RPCError.
func (c *Caller) Call(ctx context.Context, method string, params ...jsonval.Value) (jsonval.Value, error) {
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "rpc.call", trace.WithAttributes(
		attribute.String("rpc.method", method),
	))
	defer span.End()

	result, err := c.dispatch(ctx, method, params)
	c.metrics.observe(method, callStatus(err), time.Since(started))
	if err != nil {
		span.SetStatus(codes.Error, callStatus(err))
		span.RecordError(err)
		return jsonval.Value{}, err
	}
	return result, nil
}

func (c *Caller) dispatch(ctx context.Context, method string, params []jsonval.Value) (jsonval.Value, error) {
	lg := log.FromContext(ctx)

	// Building.
	id := c.ids.Next()
	req, err := NewRequest(method, params, id)
	if err != nil {
		return jsonval.Value{}, err
	}
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return jsonval.Value{}, fmt.Errorf("error marshaling request: %w", err)
	}

	// Sent -> AwaitingReply.
	lg.Debug("sending rpc request", "method", method, "id", id.String())
	resBytes, err := c.transport.Send(ctx, reqBytes)
	if err != nil {
		return jsonval.Value{}, asTransportError(err)
	}

	// Decoded | Failed.
	res, err := DecodeResponse(resBytes)
	if err != nil {
		return jsonval.Value{}, err
	}
	if err := MatchResponse(id, res); err != nil {
		return jsonval.Value{}, err
	}
	if res.Err != nil {
		lg.Debug("node reported rpc error", "method", method, "code", res.Err.Code, "kind", res.Err.Kind().String())
		return jsonval.Value{}, res.Err
	}

	return res.Result, nil
}

// CallInto invokes a method and decodes the result into out, which
// must be a pointer to the method's declared return type. A result
// that is present but wrongly shaped fails with a *DecodeError,
// distinct from a node-reported *RPCError.
func (c *Caller) CallInto(ctx context.Context, out any, method string, params ...jsonval.Value) error {
	result, err := c.Call(ctx, method, params...)
	if err != nil {
		return err
	}
	return decodeResult(result, out)
}

// decodeResult bridges the value model into typed Go values. The value
// is re-serialized and decoded with encoding/json, so number literals
// reach custom unmarshalers (Amount) with full precision.
func decodeResult(result jsonval.Value, out any) error {
	dec := json.NewDecoder(bytes.NewReader(result.Marshal()))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		// Amount decoding failures are already DecodeErrors; keep them.
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return decodeErr
		}
		return &DecodeError{Reason: fmt.Sprintf("result does not fit %T", out), Err: err}
	}
	return nil
}

// callStatus classifies an error for the metrics outcome label.
func callStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		transportErr   *TransportError
		protocolErr    *ProtocolError
		correlationErr *CorrelationError
		decodeErr      *DecodeError
		rpcErr         *RPCError
	)
	switch {
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &protocolErr):
		return "protocol_error"
	case errors.As(err, &correlationErr):
		return "correlation_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &rpcErr):
		return "rpc_" + rpcErr.Kind().String()
	default:
		return "error"
	}
}
