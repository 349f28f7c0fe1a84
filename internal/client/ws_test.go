package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// wsServer accepts one connection at a time, pushes frames from send to
// the current client, and counts accepted connections. A value on drop
// closes the current connection server-side.
type wsServer struct {
	srv   *httptest.Server
	send  chan string
	drop  chan struct{}
	conns atomic.Int32
}

func newWSServer(t *testing.T) *wsServer {
	t.Helper()
	ws := &wsServer{
		send: make(chan string, 16),
		drop: make(chan struct{}, 1),
	}
	ws.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws.conns.Add(1)
		defer conn.Close()

		// Detect the client going away so the handler never outlives
		// the connection (httptest.Close waits on handlers).
		clientGone := make(chan struct{})
		go func() {
			defer close(clientGone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg := <-ws.send:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
					return
				}
			case <-ws.drop:
				return
			case <-clientGone:
				return
			}
		}
	}))
	t.Cleanup(ws.srv.Close)
	return ws
}

func (ws *wsServer) url() string {
	return "ws" + strings.TrimPrefix(ws.srv.URL, "http")
}

// newTestChannel builds a channel with a short reconnect delay so tests
// stay fast, and waits for the first connection.
func newTestChannel(t *testing.T, ws *wsServer) *Channel {
	t.Helper()
	c := NewChannel(ws.url(), zerolog.Nop())
	c.delay = 50 * time.Millisecond
	t.Cleanup(c.Close)
	c.Start()
	waitFor(t, func() bool { return c.Connected() }, "channel never connected")
	return c
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestDispatchToRegisteredHandler(t *testing.T) {
	ws := newWSServer(t)
	c := NewChannel(ws.url(), zerolog.Nop())
	c.delay = 50 * time.Millisecond
	t.Cleanup(c.Close)

	got := make(chan json.RawMessage, 1)
	c.Handle(EventNewArticle, func(data json.RawMessage) { got <- data })
	c.Start()
	waitFor(t, func() bool { return c.Connected() }, "channel never connected")

	ws.send <- `{"type":"new_article","data":{"id":42}}`

	select {
	case data := <-got:
		assert.JSONEq(t, `{"id":42}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestLatestHandlerWins(t *testing.T) {
	ws := newWSServer(t)
	c := newTestChannel(t, ws)

	h1Called := make(chan struct{}, 1)
	h2Called := make(chan struct{}, 1)
	c.Handle(EventNewAlert, func(json.RawMessage) { h1Called <- struct{}{} })
	c.Handle(EventNewAlert, func(json.RawMessage) { h2Called <- struct{}{} })

	ws.send <- `{"type":"new_alert","data":{}}`

	select {
	case <-h2Called:
	case <-h1Called:
		t.Fatal("stale handler invoked")
	case <-time.After(2 * time.Second):
		t.Fatal("no handler invoked")
	}
}

func TestMalformedAndUnknownMessagesDropped(t *testing.T) {
	ws := newWSServer(t)
	c := newTestChannel(t, ws)

	got := make(chan string, 4)
	c.Handle(EventNewArticle, func(json.RawMessage) { got <- EventNewArticle })

	ws.send <- `this is not json`
	ws.send <- `{"type":"unregistered_type","data":{}}`
	ws.send <- `{"type":"new_article","data":{"id":1}}`

	// Only the well-formed, registered event comes through; the channel
	// survives the garbage before it.
	select {
	case typ := <-got:
		require.Equal(t, EventNewArticle, typ)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not survive malformed input")
	}
	assert.Empty(t, got)
}

func TestReconnectAfterDrop(t *testing.T) {
	ws := newWSServer(t)
	c := newTestChannel(t, ws)
	require.EqualValues(t, 1, ws.conns.Load())

	// Server-side close drops the connection; the channel must dial
	// again after its fixed delay without any intervention.
	ws.drop <- struct{}{}
	waitFor(t, func() bool { return ws.conns.Load() >= 2 }, "channel never reconnected")
	waitFor(t, func() bool { return c.Connected() }, "channel not connected after reconnect")
}

func TestCloseCancelsPendingReconnect(t *testing.T) {
	ws := newWSServer(t)
	c := newTestChannel(t, ws)

	// Drop the connection, then close the channel while its reconnect
	// timer is pending.
	ws.drop <- struct{}{}
	waitFor(t, func() bool { return !c.Connected() }, "channel never noticed the drop")
	c.Close()

	before := ws.conns.Load()
	time.Sleep(4 * c.delay)
	assert.Equal(t, before, ws.conns.Load(), "reconnect happened after Close")
}

func TestCloseDuringDialReleasesConnection(t *testing.T) {
	// The server stalls the upgrade so Close runs while the dial is
	// still in flight; the late-completing connection must be released,
	// not parked in the read loop.
	dialing := make(chan struct{}, 1)
	release := make(chan struct{})
	var releaseOnce sync.Once
	t.Cleanup(func() { releaseOnce.Do(func() { close(release) }) })

	var active atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dialing <- struct{}{}
		<-release
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		active.Add(1)
		defer active.Add(-1)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	c := NewChannel("ws"+strings.TrimPrefix(srv.URL, "http"), zerolog.Nop())
	c.delay = 50 * time.Millisecond
	t.Cleanup(c.Close)

	states := make(chan bool, 8)
	c.OnStateChange(func(connected bool) { states <- connected })
	c.Start()

	select {
	case <-dialing:
	case <-time.After(2 * time.Second):
		t.Fatal("channel never dialed")
	}
	c.Close()
	releaseOnce.Do(func() { close(release) })

	waitFor(t, func() bool { return active.Load() == 0 }, "post-Close connection was never released")
	assert.False(t, c.Connected(), "channel reports connected after Close")
	select {
	case s := <-states:
		t.Fatalf("state notification %v fired for a post-Close connection", s)
	default:
	}
}

func TestCloseWhileConnected(t *testing.T) {
	ws := newWSServer(t)
	c := newTestChannel(t, ws)

	c.Close()
	waitFor(t, func() bool { return !c.Connected() }, "channel still connected after Close")

	time.Sleep(4 * c.delay)
	assert.EqualValues(t, 1, ws.conns.Load(), "channel reconnected after Close")
}

func TestStateChangeNotifications(t *testing.T) {
	ws := newWSServer(t)
	c := NewChannel(ws.url(), zerolog.Nop())
	c.delay = 50 * time.Millisecond
	t.Cleanup(c.Close)

	states := make(chan bool, 8)
	c.OnStateChange(func(connected bool) { states <- connected })
	c.Start()

	select {
	case s := <-states:
		assert.True(t, s, "first notification should be a connect")
	case <-time.After(2 * time.Second):
		t.Fatal("no connect notification")
	}

	ws.drop <- struct{}{}
	select {
	case s := <-states:
		assert.False(t, s, "expected a disconnect notification")
	case <-time.After(2 * time.Second):
		t.Fatal("no disconnect notification")
	}
}

func TestLiveURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://127.0.0.1:8000", "ws://127.0.0.1:8000/api/ws/news"},
		{"https://news.example.com", "wss://news.example.com/api/ws/news"},
		{"http://10.0.0.5:9000/", "ws://10.0.0.5:9000/api/ws/news"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LiveURL(tt.base), "LiveURL(%q)", tt.base)
	}
}
