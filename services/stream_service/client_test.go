package stream_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed is a data socket that acks every action and, on subscribe, pushes
// one undecodable frame followed by a ticker for the symbol.
func feed(t *testing.T, actions chan<- action) *httptest.Server {
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			var a action
			if err := conn.ReadJSON(&a); err != nil {
				return
			}
			actions <- a

			ack := map[string]string{"type": a.Action + "d", "symbol": a.Symbol}
			if err := conn.WriteJSON(ack); err != nil {
				return
			}

			if a.Action == "subscribe" {
				conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`))
				conn.WriteJSON(map[string]any{"type": "ticker", "symbol": a.Symbol, "price": "101.5", "change_24h": "1.5", "volume_24h": "10"})
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

type collector struct {
	mu   sync.Mutex
	msgs []Message
}

func (c *collector) handle(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) snapshot() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.msgs...)
}

func TestClientSubscribeAndRun(t *testing.T) {
	actions := make(chan action, 4)
	srv := feed(t, actions)
	defer srv.Close()

	got := &collector{}
	client := NewClient(wsURL(srv), got.handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, client.Connect(ctx))

	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()

	require.NoError(t, client.Subscribe("BTC"))
	assert.Equal(t, action{Action: "subscribe", Symbol: "BTC"}, <-actions)

	require.Eventually(t, func() bool { return len(got.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)

	msgs := got.snapshot()
	assert.Equal(t, AckMessage{Action: TypeSubscribed, Symbol: "BTC"}, msgs[0])
	ticker, ok := msgs[1].(TickerMessage)
	require.True(t, ok)
	assert.Equal(t, "BTC", ticker.Symbol)
	assert.Equal(t, "101.5", ticker.Price.String())

	require.NoError(t, client.Unsubscribe("BTC"))
	assert.Equal(t, action{Action: "unsubscribe", Symbol: "BTC"}, <-actions)
	require.Eventually(t, func() bool { return len(got.snapshot()) == 3 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, TypeUnsubscribed, got.snapshot()[2].Type())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestClientNotConnected(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1", func(Message) {})

	assert.ErrorIs(t, client.Subscribe("BTC"), ErrNotConnected)
	assert.ErrorIs(t, client.Run(context.Background()), ErrNotConnected)
	assert.NoError(t, client.Close())
}

func TestClientDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(wsURL(srv), func(Message) {})
	assert.Error(t, client.Connect(context.Background()))
}
