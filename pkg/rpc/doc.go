// Package rpc implements a typed JSON-RPC 2.0 client for a
// cryptocurrency node daemon.
//
// The package separates the protocol into small composable layers:
//
//   - Request building: NewRequest assembles a method name, positional
//     params, and a correlation id into a deterministic envelope.
//   - Response decoding: DecodeResponse validates the reply envelope
//     and splits it into a result value or a node-reported RPCError.
//   - Correlation: MatchResponse enforces that a reply answers the
//     request it is matched against, by canonical id equality.
//   - Dispatch: Caller runs the full call lifecycle over a pluggable
//     Transport, with Prometheus metrics and an OpenTelemetry span per
//     call.
//   - Typed surface: Client wraps the dispatcher with one method per
//     supported node RPC, decoding results into the structs in api.go.
//
// # Exact numbers
//
// Monetary values never pass through binary floating point. Replies
// are parsed into the jsonval value model, which keeps each number's
// exact literal text, and Amount decodes that text into fixed-point
// smallest units (1e-8 of a coin). Decoding a value with more than
// eight fractional digits fails with a DecodeError rather than
// rounding.
//
// # Correlation ids
//
// Ids are compared by canonical serialized form, so the string "1"
// and the number 1 are distinct. Id allocation is injectable: the
// default CounterIDAllocator hands out monotonically increasing
// numeric ids, RandomIDAllocator hands out UUID string ids, and tests
// can supply their own deterministic allocator.
//
// # Errors
//
// Local failures and node-reported failures are distinct types.
// TransportError wraps byte-exchange failures and is the only error
// callers should retry around. ProtocolError, CorrelationError, and
// DecodeError indicate compatibility or logic mismatches. RPCError is
// a failure the node itself reported; its Kind method classifies the
// numeric code into a closed set (invalid parameters, method not
// found, internal node error, unauthorized, other) following the
// JSON-RPC reserved-range convention.
//
// # Transports
//
// Two Transport implementations are provided. HTTPTransport posts one
// request per call with basic auth. WSTransport multiplexes concurrent
// calls over a single WebSocket connection, routing replies back by
// correlation id and surfacing unsolicited node messages on an event
// channel.
//
// # Example
//
//	transport, err := rpc.NewHTTPTransport(rpc.HTTPTransportConfig{
//	    URL:      "http://127.0.0.1:8332",
//	    Username: "rpcuser",
//	    Password: "rpcpass",
//	    Timeout:  30 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := rpc.NewClient(transport)
//	count, err := client.GetBlockCount(ctx)
//	if err != nil {
//	    var rpcErr *rpc.RPCError
//	    if errors.As(err, &rpcErr) && rpcErr.Kind() == rpc.ErrorKindUnauthorized {
//	        // bad credentials accepted at the HTTP layer but refused by the node
//	    }
//	    log.Fatal(err)
//	}
package rpc
