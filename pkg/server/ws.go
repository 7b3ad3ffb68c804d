package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// DeleteEvent is broadcast over the websocket when a message is removed.
type DeleteEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Non-browser clients (the terminal client, tests) send no
				// Origin header.
				return true
			}
			return allowed[origin]
		},
	}
}

// HandleWebSocket registers a client for delete broadcasts. Inbound frames
// are read only to keep the connection alive.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := createUpgrader(h.Config.AllowedOrigins)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	h.ClientMu.Lock()
	h.Clients[conn] = true
	h.ClientMu.Unlock()

	for {
		var frame interface{}
		if err := conn.ReadJSON(&frame); err != nil {
			h.ClientMu.Lock()
			delete(h.Clients, conn)
			h.ClientMu.Unlock()
			return
		}
	}
}

// HandleBroadcast fans delete events out to every connected client.
func (h *Handler) HandleBroadcast() {
	for event := range h.Broadcast {
		h.ClientMu.RLock()
		snapshot := make([]*websocket.Conn, 0, len(h.Clients))
		for client := range h.Clients {
			snapshot = append(snapshot, client)
		}
		h.ClientMu.RUnlock()

		for _, client := range snapshot {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				h.ClientMu.Lock()
				delete(h.Clients, client)
				h.ClientMu.Unlock()
			}
		}
	}
}
