package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gigurra/karaoke/cmd/serve/queue"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Snapshotter provides the current queue contents.
type Snapshotter interface {
	List() []queue.Entry
}

// QueueEvent is pushed to websocket subscribers whenever the queue changes.
type QueueEvent struct {
	Type  string        `json:"type"`
	Queue []queue.Entry `json:"queue"`
}

// Hub fans queue snapshots out to connected websocket clients.
type Hub struct {
	source   Snapshotter
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

func NewHub(source Snapshotter, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeWS upgrades the request, sends the current queue and then a fresh
// snapshot after every change until the client disconnects.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	if err := h.send(conn, h.source.List()); err != nil {
		h.mu.Unlock()
		slog.Warn("failed to send initial queue snapshot", "error", err)
		_ = conn.Close()
		return
	}
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Incoming messages are ignored; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

// Notify sends the latest queue snapshot to every subscriber.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.conns) == 0 {
		return
	}
	snapshot := h.source.List()
	for conn := range h.conns {
		if err := h.send(conn, snapshot); err != nil {
			slog.Debug("dropping queue subscriber", "error", err)
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn := range h.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		_ = conn.Close()
	}
}

// send must be called with h.mu held; it serialises writes per connection.
func (h *Hub) send(conn *websocket.Conn, snapshot []queue.Entry) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(QueueEvent{Type: "queue", Queue: snapshot})
}
