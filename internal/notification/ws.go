package notification

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// userHub fans a user's live notifications out to their open connections.
type userHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

func (h *userHub) broadcast(evt wsEvent) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *userHub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *userHub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Hub holds one userHub per connected user.
type Hub struct {
	hubs map[string]*userHub
	mu   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{hubs: make(map[string]*userHub)}
}

func (h *Hub) forUser(userID string) *userHub {
	h.mu.Lock()
	defer h.mu.Unlock()
	if uh, ok := h.hubs[userID]; ok {
		return uh
	}
	uh := &userHub{clients: make(map[*websocket.Conn]bool)}
	h.hubs[userID] = uh
	return uh
}

// Publish pushes a notification to every open connection of the target user.
func (h *Hub) Publish(userID string, n *Notification) {
	h.mu.RLock()
	uh, ok := h.hubs[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	uh.broadcast(wsEvent{Type: "notification", Data: n})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/notifications/ws
// Upgrades the request and streams the requester's notifications live.
func (h *Handler) Stream(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	uh := h.hub.forUser(userID)
	uh.register(conn)
	defer func() {
		uh.unregister(conn)
		_ = conn.Close()
	}()

	// Drain the connection until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
