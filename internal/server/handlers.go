// Package server exposes HTTP handlers: the WebSocket upgrade, the health
// check, and the stats snapshot.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketHandler returns the handler for WebSocket upgrade requests. It
// validates the GET method and the request origin, upgrades the connection,
// and registers a new Client with the hub; the hub launches the pump
// goroutines and greets the connection.
func WebSocketHandler(hub *Hub, policy *originPolicy, cfg *Config) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     policy.check,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		hub.register <- NewClient(conn, hub, r.RemoteAddr, cfg)
	}
}

// HealthHandler provides a simple health check endpoint that returns server status.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Parlor chat server is running!")
}

// StatsHandler reports the connected-user count, room count, and per-room
// member counts as JSON.
func StatsHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.Coordinator().Snapshot()); err != nil {
			log.Printf("Error writing stats response: %v", err)
		}
	}
}
