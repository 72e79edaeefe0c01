// Package chat defines the record types and wire payload shapes shared by the
// coordinator and the transport layer.
package chat

import "time"

// User binds a display name to one active connection. The ID is the opaque
// connection identifier and stays stable for the connection's lifetime.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	JoinedAt    time.Time `json:"joinedAt"`
	CurrentRoom string    `json:"currentRoom,omitempty"`
}

// Message is a chat message stored in a room's history. The author field
// carries the display name at send time.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	RoomID    string    `json:"roomId"`
}

// PrivateMessage is delivered to at most one connection and never stored.
type PrivateMessage struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomSummary is the catalog entry shape sent in rooms_list and room_joined
// payloads.
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UserCount   int    `json:"userCount"`
}

// RoomStatePayload is the reply for room_joined and session_restored events.
// Room is nil when a session was restored without a room.
type RoomStatePayload struct {
	Room     *RoomSummary `json:"room"`
	Messages []Message    `json:"messages"`
	Users    []string     `json:"users"`
}

// PresencePayload notifies a room's remaining members about a join or leave.
type PresencePayload struct {
	Username     string   `json:"username"`
	UserCount    int      `json:"userCount"`
	UpdatedUsers []string `json:"updatedUsers"`
}

// RoomUpdatePayload carries a room's refreshed member count to all clients.
type RoomUpdatePayload struct {
	RoomID    string `json:"roomId"`
	UserCount int    `json:"userCount"`
}

// ErrorPayload is the shape of join_error, session_restore_failed, and error
// events.
type ErrorPayload struct {
	Message string `json:"message"`
}
