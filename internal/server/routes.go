// Package server wires HTTP handlers into a ServeMux for the Parlor
// application via routing helpers.
package server

import "net/http"

// SetupRoutes configures and returns an HTTP ServeMux with all application
// routes: health check, WebSocket endpoint, and stats snapshot.
func SetupRoutes(hub *Hub, cfg *Config) *http.ServeMux {
	policy := newOriginPolicy(cfg.AllowedOrigins)

	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/ws", WebSocketHandler(hub, policy, cfg))
	mux.HandleFunc("/stats", StatsHandler(hub))
	return mux
}
