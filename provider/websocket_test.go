package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer is a tiny JSON-RPC-over-websocket echo/subscribe server,
// grounded on the same wire shapes WebsocketProvider speaks.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var req map[string]interface{}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			method, _ := req["method"].(string)
			id := req["id"]

			switch method {
			case "ping":
				_ = conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": id, "result": "pong",
				})
			case "boom":
				_ = conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": id,
					"error": map[string]interface{}{"code": -32000, "message": "boom"},
				})
			case "sub_start":
				_ = conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": id, "result": "sub-1",
				})
				go func() {
					time.Sleep(10 * time.Millisecond)
					_ = conn.WriteJSON(map[string]interface{}{
						"jsonrpc": "2.0",
						"method":  "sub_event",
						"params":  map[string]interface{}{"subscription": "sub-1", "result": map[string]interface{}{"tick": 1}},
					})
				}()
			case "sub_start_a":
				_ = conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": id, "result": "sub-a",
				})
				go func() {
					time.Sleep(10 * time.Millisecond)
					_ = conn.WriteJSON(map[string]interface{}{
						"jsonrpc": "2.0",
						"method":  "sub_event",
						"params":  map[string]interface{}{"subscription": "sub-a", "result": map[string]interface{}{"tag": "a"}},
					})
				}()
			case "sub_start_b":
				_ = conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": id, "result": "sub-b",
				})
				go func() {
					time.Sleep(10 * time.Millisecond)
					_ = conn.WriteJSON(map[string]interface{}{
						"jsonrpc": "2.0",
						"method":  "sub_event",
						"params":  map[string]interface{}{"subscription": "sub-b", "result": map[string]interface{}{"tag": "b"}},
					})
				}()
			}
		}
	}))
}

func dialURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebsocketProviderSendRoundTrip(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	p := NewWebsocketProvider(dialURL(srv))
	require.NoError(t, p.Connect(context.Background()))
	defer p.Disconnect()

	result, err := p.Send(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}

func TestWebsocketProviderSendPropagatesRpcError(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	p := NewWebsocketProvider(dialURL(srv))
	require.NoError(t, p.Connect(context.Background()))
	defer p.Disconnect()

	_, err := p.Send(context.Background(), "boom", nil)
	assert.Error(t, err)
}

func TestWebsocketProviderSubscribeDeliversNotifications(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	p := NewWebsocketProvider(dialURL(srv))
	require.NoError(t, p.Connect(context.Background()))
	defer p.Disconnect()

	var cancelledWith string
	sub, err := p.Subscribe(context.Background(), "sub_start", nil, func(id string) {
		cancelledWith = id
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID())

	select {
	case msg := <-sub.Stream():
		assert.Equal(t, "sub-1", msg.Subscription)
		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Result, &result))
		assert.Equal(t, float64(1), result["tick"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription notification")
	}

	sub.Cancel()
	assert.Equal(t, "sub-1", cancelledWith)

	// Cancel is idempotent: a second call must not invoke onCancel again.
	sub.Cancel()
	assert.Equal(t, "sub-1", cancelledWith)
}

func TestWebsocketProviderDemultiplexesTwoSubscriptionsWithoutCrosstalk(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	p := NewWebsocketProvider(dialURL(srv))
	require.NoError(t, p.Connect(context.Background()))
	defer p.Disconnect()

	subA, err := p.Subscribe(context.Background(), "sub_start_a", nil, nil)
	require.NoError(t, err)
	subB, err := p.Subscribe(context.Background(), "sub_start_b", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "sub-a", subA.ID())
	assert.Equal(t, "sub-b", subB.ID())

	var gotA, gotB map[string]interface{}
	for i := 0; i < 2; i++ {
		select {
		case msg := <-subA.Stream():
			require.NoError(t, json.Unmarshal(msg.Result, &gotA))
			assert.Equal(t, "sub-a", msg.Subscription)
		case msg := <-subB.Stream():
			require.NoError(t, json.Unmarshal(msg.Result, &gotB))
			assert.Equal(t, "sub-b", msg.Subscription)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for subscription notifications")
		}
	}

	assert.Equal(t, "a", gotA["tag"])
	assert.Equal(t, "b", gotB["tag"])
}
