package presenter

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const dialTimeout = 5 * time.Second

// WSClient is the presenter-view side of the sync transport: it dials the
// presenting process's /ws endpoint and streams state snapshots.
type WSClient struct {
	url string

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	updates chan State
}

// NewWSClient builds a client for rawURL ("ws://host:port/ws" or an
// "http://" URL, which is rewritten). No I/O happens until Start.
func NewWSClient(rawURL string) (*WSClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("presenter: parse url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("presenter: unsupported scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return &WSClient{url: u.String(), updates: make(chan State, 16)}, nil
}

// Start dials the endpoint and begins streaming inbound state.
func (c *WSClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("presenter: client closed")
	}
	if c.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("presenter: dial %s: %w", c.url, err)
	}
	c.conn = conn
	go c.readLoop(conn)
	return nil
}

func (c *WSClient) readLoop(conn *websocket.Conn) {
	defer close(c.updates)
	for {
		var s State
		if err := conn.ReadJSON(&s); err != nil {
			return
		}
		select {
		case c.updates <- s:
		default:
			// Drop stale snapshots rather than stall the reader; only the
			// newest position matters.
			select {
			case <-c.updates:
			default:
			}
			c.updates <- s
		}
	}
}

// Publish sends a state snapshot to the presenting process.
func (c *WSClient) Publish(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("presenter: client not started")
	}
	c.conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	return c.conn.WriteJSON(s)
}

// Updates returns the inbound state stream.
func (c *WSClient) Updates() <-chan State { return c.updates }

// Close tears down the connection.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.conn != nil {
		return c.conn.Close()
	}
	close(c.updates)
	return nil
}
