// Package push streams realtime figures to connected dashboard clients
// over WebSocket, as a complement to the polled HTTP endpoints.
package push

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"hainetsukaishu-backend/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// defaultWriteWait bounds a single client write so one stalled
// connection cannot hold up a broadcast tick.
const defaultWriteWait = 10 * time.Second

// Hub pushes realtime figures for every allow-listed device on a fixed
// interval. A failed refresh for one device is logged and skipped; the
// ticker and the other clients are unaffected.
type Hub struct {
	service   *service.QueryService
	interval  time.Duration
	writeWait time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates a new Hub.
func NewHub(service *service.QueryService, interval time.Duration) *Hub {
	return &Hub{
		service:   service,
		interval:  interval,
		writeWait: defaultWriteWait,
		clients:   make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS upgrades the connection and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	log.Printf("WebSocket client connected (%d active)", h.ClientCount())

	// Drain reads so the hub notices when the client goes away.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// Run broadcasts realtime figures until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.broadcastTick(ctx)
		}
	}
}

func (h *Hub) broadcastTick(ctx context.Context) {
	if h.ClientCount() == 0 {
		return
	}
	for _, device := range h.service.Devices() {
		data, err := h.service.Realtime(ctx, device)
		if err != nil {
			log.Printf("Skipping realtime push for %s: %v", device, err)
			continue
		}
		h.broadcast(data)
	}
}

func (h *Hub) broadcast(payload interface{}) {
	message, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode push payload: %v", err)
		return
	}

	// Snapshot the client set and write outside the lock, so one slow
	// connection never stalls delivery to the others.
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Dropping WebSocket client: %v", err)
			h.remove(conn)
		}
	}
}
