package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coinbridge/noderpc/pkg/log"
)

// WSTransportConfig contains configuration options for the WebSocket transport.
type WSTransportConfig struct {
	// HandshakeTimeout is the duration to wait for the WebSocket handshake to complete.
	HandshakeTimeout time.Duration

	// EventChanSize is the buffer size for the event channel.
	// A larger buffer prevents blocking when the node pushes many notifications.
	EventChanSize int
}

// DefaultWSTransportConfig provides sensible defaults for WebSocket connections.
var DefaultWSTransportConfig = WSTransportConfig{
	HandshakeTimeout: 5 * time.Second,
	EventChanSize:    100,
}

// wsConn holds the connection context and resources.
type wsConn struct {
	ctx  context.Context
	conn *websocket.Conn
	lg   log.Logger
}

// WSTransport implements Transport over a single WebSocket connection.
// Several calls may be in flight at once; replies are routed back to
// their callers by the correlation id carried in each envelope, so
// out-of-order delivery is handled here and the dispatcher above only
// ever sees the reply to its own request.
//
// Messages that carry no id, or an id with no pending call, are pushed
// to the event channel as unsolicited node notifications.
type WSTransport struct {
	cfg     WSTransportConfig
	wsConn  *wsConn
	eventCh chan []byte
	sinks   map[string]chan []byte // canonical id text -> waiting caller
	mu      sync.RWMutex           // Protects wsConn and sinks
	writeMu sync.Mutex             // Serializes WebSocket write operations
}

var _ Transport = (*WSTransport)(nil)

// NewWSTransport creates a WebSocket transport with the given configuration.
func NewWSTransport(cfg WSTransportConfig) *WSTransport {
	return &WSTransport{
		cfg:     cfg,
		eventCh: make(chan []byte, cfg.EventChanSize),
		sinks:   make(map[string]chan []byte),
	}
}

// Dial establishes a WebSocket connection to the specified URL.
// The connection stays open until the context is cancelled or the read
// loop fails; handleClosure is invoked once with the first error, if any.
func (t *WSTransport) Dial(parentCtx context.Context, url string, handleClosure func(err error)) error {
	if t.IsConnected() {
		return ErrAlreadyConnected
	}

	dialer := websocket.Dialer{
		HandshakeTimeout:  t.cfg.HandshakeTimeout,
		EnableCompression: true,
	}

	conn, _, err := dialer.DialContext(parentCtx, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDialingWebsocket, err)
	}

	childCtx, cancel := context.WithCancel(parentCtx)
	wg := sync.WaitGroup{}
	wg.Add(2)

	var closureErr error
	var closureErrMu sync.Mutex
	childHandleClosure := func(err error) {
		closureErrMu.Lock()
		defer closureErrMu.Unlock()

		// Capture the first error encountered
		if err != nil && closureErr == nil {
			closureErr = err
		}

		cancel()
		wg.Done()
	}

	t.mu.Lock()
	t.wsConn = &wsConn{
		ctx:  childCtx,
		conn: conn,
		lg:   log.FromContext(parentCtx).WithName("ws-transport"),
	}
	t.eventCh = make(chan []byte, t.cfg.EventChanSize)
	t.mu.Unlock()

	go t.closeOnContextDone(childCtx, childHandleClosure)
	go t.readMessages(childCtx, childHandleClosure)

	go func() {
		wg.Wait()

		closureErrMu.Lock()
		defer closureErrMu.Unlock()

		handleClosure(closureErr)
	}()

	return nil
}

// IsConnected returns true if the transport has an active connection.
func (t *WSTransport) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.wsConn != nil && t.wsConn.ctx.Err() == nil
}

// closeOnContextDone waits for the context to be done and then closes the connection.
func (t *WSTransport) closeOnContextDone(ctx context.Context, handleClosure func(err error)) {
	<-ctx.Done()

	t.mu.RLock()
	conn := t.wsConn.conn
	t.mu.RUnlock()

	err := conn.Close()

	// Clean up sinks to prevent goroutine leaks
	t.mu.Lock()
	for _, sink := range t.sinks {
		close(sink)
	}
	t.sinks = make(map[string]chan []byte)
	t.mu.Unlock()

	handleClosure(err)
}

// readMessages continuously reads messages from the WebSocket connection
// and routes them to the waiting caller or the event channel.
func (t *WSTransport) readMessages(ctx context.Context, handleClosure func(err error)) {
	t.mu.RLock()
	conn := t.wsConn.conn
	lg := t.wsConn.lg
	t.mu.RUnlock()

	for {
		_, messageBytes, err := conn.ReadMessage()
		if ctx.Err() != nil {
			handleClosure(nil)
			lg.Info("websocket read loop exiting due to context done")
			return
		} else if _, ok := err.(net.Error); ok {
			handleClosure(fmt.Errorf("%w: %w", ErrConnectionTimeout, err))
			lg.Error("websocket connection timeout", "error", err)
			return
		} else if err != nil {
			handleClosure(fmt.Errorf("%w: %w", ErrReadingMessage, err))
			lg.Error("websocket read error", "error", err)
			return
		}

		idText, ok := envelopeIDText(messageBytes)

		t.mu.Lock()
		sink, pending := t.sinks[idText]
		t.mu.Unlock()

		if !ok || !pending {
			// No pending request for this id, treat as an unsolicited event
			sink = t.eventCh
		}

		select {
		case <-ctx.Done():
			handleClosure(nil)
			return
		case sink <- messageBytes:
		default:
			lg.Warn("message channel full, dropping message", "id", idText)
		}
	}
}

// Send implements Transport. It writes the request over the connection
// and blocks until the reply with the matching correlation id arrives,
// the request context is done, or the connection closes.
func (t *WSTransport) Send(ctx context.Context, req []byte) ([]byte, error) {
	idText, ok := envelopeIDText(req)
	if !ok {
		return nil, fmt.Errorf("%w: request carries no id", ErrSendingRequest)
	}

	// Check connection and register the sink atomically
	t.mu.Lock()
	if t.wsConn == nil || t.wsConn.ctx.Err() != nil {
		t.mu.Unlock()
		return nil, ErrNotConnected
	}
	conn := t.wsConn.conn
	connCtx := t.wsConn.ctx
	sink := make(chan []byte, 1) // Buffered to prevent blocking in readMessages
	t.sinks[idText] = sink
	t.mu.Unlock()

	// WebSocket writes must be serialized
	t.writeMu.Lock()
	err := conn.WriteMessage(websocket.TextMessage, req)
	t.writeMu.Unlock()

	if err != nil {
		t.mu.Lock()
		delete(t.sinks, idText)
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrSendingRequest, err)
	}

	var res []byte
	select {
	case <-ctx.Done():
		// Request context cancelled
	case <-connCtx.Done():
		// Connection closed
	case res = <-sink:
	}

	t.mu.Lock()
	delete(t.sinks, idText)
	t.mu.Unlock()

	if res == nil {
		return nil, fmt.Errorf("%w for request %s", ErrNoResponse, idText)
	}
	return res, nil
}

// EventCh returns a read-only channel carrying node messages that do
// not correspond to any pending call.
func (t *WSTransport) EventCh() <-chan []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.eventCh
}

// envelopeIDText extracts the correlation id from a serialized envelope
// in its canonical textual form. String ids keep their quotes, so the
// string "1" never collides with the number 1.
func envelopeIDText(data []byte) (string, bool) {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", false
	}
	raw := bytes.TrimSpace(envelope.ID)
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	return string(raw), true
}
