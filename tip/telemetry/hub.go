// Package telemetry serves the planner's optional debug stream over a
// websocket, the realization of spec.md's "debug: enable auxiliary
// publication" option. Modeled on the server-push websocket hub in the
// niceyeti-tabular retrieval pack: an http.Handler upgrades a connection,
// and a background writer drains a broadcast channel onto it.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 1 * time.Second
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  maxMessageSize,
	WriteBufferSize: maxMessageSize,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one debug telemetry sample, roughly mirroring tipData_ from
// the original convert2ROS/pubROS debug publication.
type Frame struct {
	Timestamp   time.Time `json:"timestamp"`
	LatencyMS   float64   `json:"latency_ms"`
	Speed       float64   `json:"speed"`
	FollowPrim  bool      `json:"follow_prim"`
	PrimCost    float64   `json:"prim_cost"`
	Mode        string    `json:"mode"`
}

// Hub fans a stream of Frames out to any number of connected websocket
// clients, dropping a frame for a slow client rather than blocking the
// planner's own tick loop on a stalled connection.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan Frame
}

// NewHub returns an empty telemetry hub.
func NewHub() *Hub {
	return &Hub{clients: map[*websocket.Conn]chan Frame{}}
}

// ServeHTTP upgrades the request to a websocket and registers the
// resulting connection as a broadcast recipient until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ch := make(chan Frame, 8)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for frame := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		b, err := json.Marshal(frame)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

// Broadcast pushes frame to every connected client's buffer, dropping it
// for any client whose buffer is currently full.
func (h *Hub) Broadcast(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Close disconnects every client and stops accepting new frames.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		close(ch)
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
