package presenter

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server hosts the sync hub for presenter views: a WebSocket endpoint that
// fans state out to every connected view, plus small JSON endpoints for the
// last known state and health.
type Server struct {
	addr      string
	hub       *hub
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a sync server bound to addr (":0" picks a free port).
func NewServer(addr string) *Server {
	if addr == "" {
		addr = "127.0.0.1:3535"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		hub:    newHub(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving. It returns once the listener is bound.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", s.handleWS)
	r.GET("/api/state", s.handleState)
	r.GET("/api/health", s.handleHealth)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("presenter: listen %s: %w", s.addr, err)
	}
	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address, useful when addr was ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down and drops all hub connections.
func (s *Server) Stop() error {
	s.cancel()
	s.hub.close()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// LocalClient returns the in-process Client the presenting shell uses to
// publish into the hub.
func (s *Server) LocalClient() Client { return &localClient{hub: s.hub} }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Presenter views run on the speaker's machines; same-origin checks
	// would only reject the terminal clients.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	send := s.hub.register(conn)

	// Writer: fan hub broadcasts out to this view.
	go func() {
		for state := range send {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(state); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Reader: presenter views may publish too (remote next/prev).
	go func() {
		defer s.hub.unregister(conn)
		for {
			var state State
			if err := conn.ReadJSON(&state); err != nil {
				return
			}
			s.hub.broadcast(state, conn)
		}
	}()
}

func (s *Server) handleState(c *gin.Context) {
	state, ok := s.hub.lastState()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).String(),
		"viewers": s.hub.viewerCount(),
	})
}

// hub fans state between the local presenting shell and remote views.
type hub struct {
	mu      sync.Mutex
	conns   map[*websocket.Conn]chan State
	local   chan State
	last    State
	hasLast bool
	closed  bool
}

func newHub() *hub {
	return &hub{
		conns: make(map[*websocket.Conn]chan State),
		local: make(chan State, 16),
	}
}

func (h *hub) register(conn *websocket.Conn) chan State {
	h.mu.Lock()
	defer h.mu.Unlock()

	send := make(chan State, 16)
	h.conns[conn] = send
	// Late joiners catch up on the current position immediately.
	if h.hasLast {
		send <- h.last
	}
	return send
}

func (h *hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(send)
	}
}

// broadcast fans state to every connection except from, and to the local
// client when the state originated remotely.
func (h *hub) broadcast(state State, from *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = state
	h.hasLast = true

	for conn, send := range h.conns {
		if conn == from {
			continue
		}
		select {
		case send <- state:
		default: // slow viewer; drop the stale frame
		}
	}
	if from != nil {
		select {
		case h.local <- state:
		default:
		}
	}
}

func (h *hub) lastState() (State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

func (h *hub) viewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for conn, send := range h.conns {
		close(send)
		conn.Close()
		delete(h.conns, conn)
	}
	close(h.local)
}

// localClient is the presenting shell's in-process attachment to the hub.
type localClient struct {
	hub    *hub
	mu     sync.Mutex
	closed bool
}

func (l *localClient) Start() error { return nil }

func (l *localClient) Publish(s State) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return fmt.Errorf("presenter: local client closed")
	}
	l.hub.broadcast(s, nil)
	return nil
}

func (l *localClient) Updates() <-chan State { return l.hub.local }

func (l *localClient) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
