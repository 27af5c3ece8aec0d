// Package ws implements the room-based websocket hub behind the
// notification fan-out.
package ws

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Frame is the wire format of every server-to-client message.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	// Guards writes; fasthttp websocket connections allow one writer.
	mu    sync.Mutex
	rooms map[string]bool
}

func (c *client) send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Hub tracks connected clients and their room membership. Clients are
// not authenticated; a room is joined by naming an identity.
type Hub struct {
	log *zap.SugaredLogger

	mu      sync.RWMutex
	nextID  uint64
	clients map[string]*client
	rooms   map[string]map[string]*client
}

// NewHub constructs an empty hub.
func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
	}
}

// Register adds a connection and returns its client id.
func (h *Hub) Register(conn *websocket.Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := "c" + strconv.FormatUint(h.nextID, 10)
	h.clients[id] = &client{conn: conn, rooms: make(map[string]bool)}
	return id
}

// Unregister drops the client and its room memberships.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	for room := range c.rooms {
		delete(h.rooms[room], clientID)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.clients, clientID)
}

// Join adds the client to a room. Unknown clients are ignored.
func (h *Hub) Join(clientID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	c.rooms[room] = true
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*client)
	}
	h.rooms[room][clientID] = c
}

// EmitToRoom pushes one event frame to every client in the room.
func (h *Hub) EmitToRoom(room, event string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.Errorw("marshal payload", "event", event, "error", err)
		return
	}
	frame, err := json.Marshal(Frame{Event: event, Payload: raw})
	if err != nil {
		h.log.Errorw("marshal frame", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[room]))
	for _, c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.send(frame); err != nil {
			h.log.Warnw("websocket write failed", "room", room, "event", event, "error", err)
		}
	}
}

// Close tears down every connection; used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
	h.rooms = make(map[string]map[string]*client)
}
