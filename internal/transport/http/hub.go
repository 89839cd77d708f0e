package http

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"quiz-rooms-service/internal/app"
)

// Hub implements app.Publisher over live websocket connections. It tracks
// which connections are in which room so room-scoped events fan out without
// the engine knowing about sockets.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]bool // roomID -> member connIDs
}

type client struct {
	connID string
	conn   *websocket.Conn
	send   chan app.Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]bool),
	}
}

// Register binds a connection and starts its writer.
func (h *Hub) Register(connID string, conn *websocket.Conn) {
	c := &client{connID: connID, conn: conn, send: make(chan app.Event, 16)}
	h.mu.Lock()
	h.clients[connID] = c
	h.mu.Unlock()
	go c.writePump()
}

// Unregister drops a connection and its room memberships.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for roomID, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	close(c.send)
}

func (h *Hub) Broadcast(e app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.deliver(e)
	}
}

func (h *Hub) ToRoom(roomID string, e app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for connID := range h.rooms[roomID] {
		if c, ok := h.clients[connID]; ok {
			c.deliver(e)
		}
	}
}

func (h *Hub) ToConn(connID string, e app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		c.deliver(e)
	}
}

func (h *Hub) Join(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]bool)
		h.rooms[roomID] = members
	}
	members[connID] = true
}

func (h *Hub) Leave(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// deliver is non-blocking: a slow client drops the oldest queued event rather
// than stalling the fan-out.
func (c *client) deliver(e app.Event) {
	select {
	case c.send <- e:
	default:
		select {
		case <-c.send:
		default:
		}
		select {
		case c.send <- e:
		default:
		}
	}
}

func (c *client) writePump() {
	for e := range c.send {
		if err := c.conn.WriteJSON(e); err != nil {
			log.Printf("ws write to %s: %v", c.connID, err)
			return
		}
	}
}
