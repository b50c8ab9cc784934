package rpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbridge/noderpc/pkg/rpc"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// startWSServer runs a WebSocket endpoint that answers every request
// via handle(request bytes) -> zero or more reply documents.
func startWSServer(t *testing.T, handle func(req []byte) [][]byte) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var writeMu sync.Mutex
		for {
			_, req, err := conn.ReadMessage()
			if err != nil {
				return
			}
			for _, reply := range handle(req) {
				writeMu.Lock()
				err := conn.WriteMessage(websocket.TextMessage, reply)
				writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func echoWSHandler(result string) func(req []byte) [][]byte {
	return func(req []byte) [][]byte {
		var envelope struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(req, &envelope); err != nil {
			return nil
		}
		reply := fmt.Sprintf(`{"result": %s, "error": null, "id": %s}`, result, envelope.ID)
		return [][]byte{[]byte(reply)}
	}
}

func dialWSTransport(t *testing.T, url string) *rpc.WSTransport {
	t.Helper()

	transport := rpc.NewWSTransport(rpc.DefaultWSTransportConfig)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	closed := make(chan error, 1)
	require.NoError(t, transport.Dial(ctx, url, func(err error) { closed <- err }))
	require.True(t, transport.IsConnected())

	return transport
}

func TestWSTransportCall(t *testing.T) {
	t.Parallel()

	url := startWSServer(t, echoWSHandler("903542"))
	transport := dialWSTransport(t, url)

	client := rpc.NewClient(transport)
	count, err := client.GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(903542), count)
}

func TestWSTransportNotConnected(t *testing.T) {
	t.Parallel()

	transport := rpc.NewWSTransport(rpc.DefaultWSTransportConfig)
	_, err := transport.Send(context.Background(), []byte(`{"method":"getblockcount","params":[],"id":1}`))
	assert.ErrorIs(t, err, rpc.ErrNotConnected)
}

func TestWSTransportAlreadyConnected(t *testing.T) {
	t.Parallel()

	url := startWSServer(t, echoWSHandler("1"))
	transport := dialWSTransport(t, url)

	err := transport.Dial(context.Background(), url, func(error) {})
	assert.ErrorIs(t, err, rpc.ErrAlreadyConnected)
}

func TestWSTransportRequestWithoutID(t *testing.T) {
	t.Parallel()

	url := startWSServer(t, echoWSHandler("1"))
	transport := dialWSTransport(t, url)

	_, err := transport.Send(context.Background(), []byte(`{"method":"getblockcount","params":[]}`))
	assert.ErrorIs(t, err, rpc.ErrSendingRequest)
}

func TestWSTransportConcurrentOutOfOrder(t *testing.T) {
	t.Parallel()

	// The server batches requests and answers them in reverse arrival
	// order; each caller must still receive the reply carrying its own
	// correlation id.
	const n = 8

	var mu sync.Mutex
	pending := make([][]byte, 0, n)
	url := startWSServer(t, func(req []byte) [][]byte {
		var envelope struct {
			ID json.Number `json:"id"`
		}
		if err := json.Unmarshal(req, &envelope); err != nil {
			return nil
		}
		reply := []byte(fmt.Sprintf(`{"result": "h-%s", "error": null, "id": %s}`, envelope.ID, envelope.ID))

		mu.Lock()
		defer mu.Unlock()
		pending = append(pending, reply)
		if len(pending) < n {
			return nil
		}
		batch := make([][]byte, 0, n)
		for i := len(pending) - 1; i >= 0; i-- {
			batch = append(batch, pending[i])
		}
		pending = pending[:0]
		return batch
	})

	transport := dialWSTransport(t, url)
	caller := rpc.NewCaller(transport, rpc.WithIDAllocator(rpc.NewCounterIDAllocator(0)))

	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := caller.Call(context.Background(), "getblockhash")
			if err != nil {
				errs[i] = err
				return
			}
			results[i], _ = result.StringVal()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		seen[results[i]] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestWSTransportUnsolicitedEvent(t *testing.T) {
	t.Parallel()

	url := startWSServer(t, func(req []byte) [][]byte {
		var envelope struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(req, &envelope); err != nil {
			return nil
		}
		// A notification with no pending call, then the real reply.
		event := []byte(`{"method": "newblock", "params": ["000000000000000000024c4a"], "id": null}`)
		reply := []byte(fmt.Sprintf(`{"result": 1, "error": null, "id": %s}`, envelope.ID))
		return [][]byte{event, reply}
	})

	transport := dialWSTransport(t, url)
	caller := rpc.NewCaller(transport)

	_, err := caller.Call(context.Background(), "getblockcount")
	require.NoError(t, err)

	select {
	case event := <-transport.EventCh():
		assert.Contains(t, string(event), "newblock")
	case <-time.After(2 * time.Second):
		t.Fatal("expected an unsolicited event")
	}
}

func TestWSTransportSendContextCancel(t *testing.T) {
	t.Parallel()

	// Server never replies.
	url := startWSServer(t, func([]byte) [][]byte { return nil })
	transport := dialWSTransport(t, url)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.Send(ctx, []byte(`{"method":"getblockcount","params":[],"id":1}`))
	assert.ErrorIs(t, err, rpc.ErrNoResponse)
}

func TestWSTransportClosesOnContextDone(t *testing.T) {
	t.Parallel()

	url := startWSServer(t, echoWSHandler("1"))

	transport := rpc.NewWSTransport(rpc.DefaultWSTransportConfig)
	ctx, cancel := context.WithCancel(context.Background())

	closed := make(chan error, 1)
	require.NoError(t, transport.Dial(ctx, url, func(err error) { closed <- err }))
	require.True(t, transport.IsConnected())

	cancel()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the closure handler to run")
	}
	assert.False(t, transport.IsConnected())
}
