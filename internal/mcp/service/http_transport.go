package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// channelBufferSize buffers request and response messages per session
	// so bursts do not block the HTTP handlers immediately.
	channelBufferSize = 10

	// shutdownTimeout bounds graceful HTTP server shutdown.
	shutdownTimeout = 5 * time.Second

	// sessionCleanupInterval is how often idle sessions are reaped.
	sessionCleanupInterval = 5 * time.Minute

	// sessionIdleExpiry is how long a session may stay idle before it is
	// closed and removed.
	sessionIdleExpiry = 1 * time.Hour

	// sessionHeader carries the session identifier between requests.
	sessionHeader = "X-MCP-Session-ID"
)

// HTTPTransport serves MCP over HTTP: JSON-RPC messages arrive as POST
// bodies and responses stream back directly or over Server-Sent Events.
// Each HTTP session gets its own mcp server run loop reading from the
// session's channels, so sessions stay isolated from one another.
type HTTPTransport struct {
	addr       string
	server     *mcp.Server
	httpServer *http.Server

	sessionsMu sync.RWMutex
	sessions   map[string]*httpSession

	serverCtx    context.Context
	serverCancel context.CancelFunc

	nextSession func() string
}

// httpSession tracks one client session: its connection, liveness, and
// whether a server run loop has been started for it.
type httpSession struct {
	id       string
	conn     *httpConnection
	lastUsed time.Time
	runOnce  sync.Once
}

// httpConnection implements mcp.Connection over channels fed by the
// HTTP handlers.
type httpConnection struct {
	sessionID string
	requests  chan jsonrpc.Message
	responses chan jsonrpc.Message
	closed    chan struct{}
	closeMu   sync.Mutex
	isClosed  bool
}

// NewHTTPTransportWithServer creates an HTTP transport bound to a
// configured MCP server.
func NewHTTPTransportWithServer(addr string, server *mcp.Server) *HTTPTransport {
	// Default to localhost-only binding for security
	if addr == "" {
		addr = "localhost:8081"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HTTPTransport{
		addr:         addr,
		server:       server,
		sessions:     make(map[string]*httpSession),
		serverCtx:    ctx,
		serverCancel: cancel,
		nextSession:  defaultSessionID,
	}
}

// Start runs the HTTP server until the context ends or the listener
// fails, then shuts down gracefully and closes all sessions.
func (t *HTTPTransport) Start(ctx context.Context) error {
	t.serverCtx, t.serverCancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/messages", t.handleMessages)
	mux.HandleFunc("/mcp/sse", t.handleSSE)
	mux.HandleFunc("/mcp/health", t.handleHealth)

	t.httpServer = &http.Server{Addr: t.addr, Handler: mux}

	log.Printf("starting MCP HTTP server on %s", t.addr)

	go t.reapIdleSessions(t.serverCtx)

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		t.serverCancel()
		t.closeAllSessions()
		return nil
	case err := <-errChan:
		t.serverCancel()
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// session returns the session for an ID, creating one (and starting its
// server run loop) when the ID is unknown or empty.
func (t *HTTPTransport) session(id string) *httpSession {
	if id != "" {
		t.sessionsMu.RLock()
		session, ok := t.sessions[id]
		t.sessionsMu.RUnlock()
		if ok {
			return session
		}
	}

	if id == "" {
		id = t.nextSession()
	}
	conn := &httpConnection{
		sessionID: id,
		requests:  make(chan jsonrpc.Message, channelBufferSize),
		responses: make(chan jsonrpc.Message, channelBufferSize),
		closed:    make(chan struct{}),
	}
	session := &httpSession{id: id, conn: conn, lastUsed: time.Now()}

	t.sessionsMu.Lock()
	t.sessions[id] = session
	t.sessionsMu.Unlock()
	return session
}

// runSession starts the MCP server run loop for a session exactly once.
func (t *HTTPTransport) runSession(session *httpSession) {
	if t.server == nil {
		return
	}
	session.runOnce.Do(func() {
		transport := &connectionTransport{conn: session.conn}
		go func() {
			if err := t.server.Run(t.serverCtx, transport); err != nil && t.serverCtx.Err() == nil {
				log.Printf("session %s run loop ended: %v", session.id, err)
			}
		}()
	})
}

// handleMessages handles POST /mcp/messages for JSON-RPC requests.
func (t *HTTPTransport) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := t.session(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, session.id)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("read request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	msg, err := jsonrpc.DecodeMessage(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON-RPC message: %v", err), http.StatusBadRequest)
		return
	}

	t.touch(session)
	t.runSession(session)

	select {
	case session.conn.requests <- msg:
	case <-session.conn.closed:
		http.Error(w, "session closed", http.StatusGone)
		return
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	// Notifications carry no ID and get no response.
	if req, ok := msg.(*jsonrpc.Request); ok && req.ID == (jsonrpc.ID{}) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	select {
	case resp := <-session.conn.responses:
		data, err := jsonrpc.EncodeMessage(resp)
		if err != nil {
			http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(data); err != nil {
			log.Printf("write response: %v", err)
		}
	case <-session.conn.closed:
		http.Error(w, "session closed", http.StatusGone)
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
	}
}

// handleSSE handles GET /mcp/sse for Server-Sent Events streaming.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := t.session(r.URL.Query().Get("session"))
	t.runSession(session)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(sessionHeader, session.id)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-session.conn.closed:
			return
		case msg := <-session.conn.responses:
			data, err := jsonrpc.EncodeMessage(msg)
			if err != nil {
				log.Printf("encode SSE message: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
			t.touch(session)
		}
	}
}

// handleHealth handles GET /mcp/health for health checks.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (t *HTTPTransport) touch(session *httpSession) {
	t.sessionsMu.Lock()
	session.lastUsed = time.Now()
	t.sessionsMu.Unlock()
}

// reapIdleSessions periodically closes and removes sessions that have
// been idle longer than sessionIdleExpiry.
func (t *HTTPTransport) reapIdleSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-sessionIdleExpiry)
			t.sessionsMu.Lock()
			for id, session := range t.sessions {
				if session.lastUsed.Before(cutoff) {
					session.conn.Close()
					delete(t.sessions, id)
				}
			}
			t.sessionsMu.Unlock()
		}
	}
}

func (t *HTTPTransport) closeAllSessions() {
	t.sessionsMu.Lock()
	defer t.sessionsMu.Unlock()
	for id, session := range t.sessions {
		session.conn.Close()
		delete(t.sessions, id)
	}
}

// Read implements mcp.Connection. It delivers messages posted by HTTP
// handlers to the MCP server run loop.
func (c *httpConnection) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-c.requests:
		return msg, nil
	case <-c.closed:
		return nil, fmt.Errorf("connection closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write implements mcp.Connection. Responses are picked up by the
// waiting POST handler or the SSE stream.
func (c *httpConnection) Write(ctx context.Context, msg jsonrpc.Message) error {
	select {
	case c.responses <- msg:
		return nil
	case <-c.closed:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements mcp.Connection.
func (c *httpConnection) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.isClosed {
		return nil
	}
	c.isClosed = true
	close(c.closed)
	return nil
}

// SessionID implements mcp.Connection.
func (c *httpConnection) SessionID() string {
	return c.sessionID
}

// connectionTransport hands a pre-built connection to Server.Run.
type connectionTransport struct {
	conn mcp.Connection
}

// Connect implements mcp.Transport.
func (t *connectionTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	return t.conn, nil
}

var sessionCounter atomic.Uint64

// defaultSessionID generates a unique session ID from crypto/rand bytes
// combined with a process-wide counter.
func defaultSessionID() string {
	counter := sessionCounter.Add(1)
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("session_%d_%d", time.Now().UnixNano(), counter)
	}
	return fmt.Sprintf("session_%s_%d", hex.EncodeToString(b), counter)
}
