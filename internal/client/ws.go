package client

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// reconnectDelay is the fixed wait between connection attempts. There is
// no backoff growth and no retry ceiling: the channel is best-effort and
// must keep trying for as long as it lives.
const reconnectDelay = 5 * time.Second

// Event type tags pushed by the backend.
const (
	EventNewArticle = "new_article"
	EventNewAlert   = "new_alert"
	EventNewReport  = "new_report"
)

// Envelope is the wire shape of one live-channel message.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventHandler consumes the data payload of one event. Handlers are
// invoked synchronously on the channel's read goroutine and should treat
// the event as an invalidation signal, not as the data itself.
type EventHandler func(data json.RawMessage)

// Channel maintains the live event-stream connection to the backend.
// It dispatches incoming envelopes to the handler registered for their
// type and reconnects after a fixed delay on any close or error.
// Connection failures are never surfaced as errors; consumers must not
// rely on the channel for correctness, only for latency.
type Channel struct {
	url    string
	dialer *websocket.Dialer
	log    zerolog.Logger
	delay  time.Duration

	mu        sync.Mutex
	handlers  map[string]EventHandler
	conn      *websocket.Conn
	connected bool
	onState   func(connected bool)

	done      chan struct{}
	closeOnce sync.Once
}

// NewChannel creates a channel for the given ws:// or wss:// URL. It does
// not connect until Start is called.
func NewChannel(wsURL string, log zerolog.Logger) *Channel {
	return &Channel{
		url:      wsURL,
		dialer:   websocket.DefaultDialer,
		log:      log,
		delay:    reconnectDelay,
		handlers: make(map[string]EventHandler),
		done:     make(chan struct{}),
	}
}

// LiveURL derives the event-stream URL from the backend base URL:
// http becomes ws, https becomes wss, path is fixed.
func LiveURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "ws://127.0.0.1:8000/api/ws/news"
	}
	scheme := "ws"
	if strings.HasPrefix(u.Scheme, "https") {
		scheme = "wss"
	}
	return scheme + "://" + u.Host + "/api/ws/news"
}

// Handle registers the handler for one event type, replacing any
// previous registration. The channel always dispatches to the handler
// current at arrival time, never one captured at connect time.
func (c *Channel) Handle(eventType string, h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = h
}

// SetHandlers atomically replaces the whole registry.
func (c *Channel) SetHandlers(handlers map[string]EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = make(map[string]EventHandler, len(handlers))
	for k, v := range handlers {
		c.handlers[k] = v
	}
}

// OnStateChange registers a callback fired on every connect and
// disconnect. Must be set before Start.
func (c *Channel) OnStateChange(fn func(connected bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// Connected reports whether a live connection is currently up.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Start launches the connect/read/reconnect loop in its own goroutine.
func (c *Channel) Start() {
	go c.run()
}

// Close terminates the channel: the active connection is closed and any
// pending reconnect is cancelled. The channel cannot be restarted.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
	})
}

func (c *Channel) run() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		conn, _, err := c.dialer.Dial(c.url, nil)
		if err != nil {
			c.log.Debug().Err(err).Str("url", c.url).Msg("live channel dial failed")
			if !c.wait() {
				return
			}
			continue
		}

		// Close may have run while the dial was in flight. Re-check under
		// the lock so a post-Close connection is released, not parked in
		// the read loop.
		c.mu.Lock()
		select {
		case <-c.done:
			c.mu.Unlock()
			conn.Close()
			return
		default:
		}
		c.conn = conn
		c.connected = true
		notify := c.onState
		c.mu.Unlock()
		c.log.Info().Str("url", c.url).Msg("live channel connected")
		if notify != nil {
			notify(true)
		}

		c.readLoop(conn)

		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.connected = false
		notify = c.onState
		c.mu.Unlock()
		conn.Close()
		if notify != nil {
			notify(false)
		}

		if !c.wait() {
			return
		}
	}
}

// readLoop consumes frames until the connection fails. Malformed frames
// and unknown types are dropped without surfacing anything.
func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Debug().Err(err).Msg("live channel read failed")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Debug().Err(err).Msg("dropping malformed live message")
			continue
		}

		c.mu.Lock()
		h := c.handlers[env.Type]
		c.mu.Unlock()
		if h == nil {
			continue
		}
		h(env.Data)
	}
}

// wait blocks for the reconnect delay. It returns false when the channel
// was closed while waiting, so a pending reconnect never outlives Close.
func (c *Channel) wait() bool {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-c.done:
		return false
	case <-timer.C:
		return true
	}
}
