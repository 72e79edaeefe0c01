// Package server defines the wire frame shapes exchanged with clients and
// utility helpers reused across client and hub logic.
package server

import (
	"encoding/json"
	"strings"
)

// eventEnvelope is the outbound frame: a named event with its payload.
type eventEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// inboundFrame is a client request. Data is decoded per event type.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
