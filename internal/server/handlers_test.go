// Package server tests the HTTP surface and the full WebSocket path from
// upgrade through coordinator-driven event delivery.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parlorchat/parlor/internal/chat"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(chat.NewCoordinator())
	go hub.Run()
	t.Cleanup(func() {
		if err := hub.Shutdown(2 * time.Second); err != nil {
			t.Errorf("hub shutdown: %v", err)
		}
	})
	return hub
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	cfg := NewConfig()
	cfg.AllowedOrigins = []string{"*"}

	hub := newTestHub(t)
	testServer := httptest.NewServer(SetupRoutes(hub, cfg))
	t.Cleanup(testServer.Close)
	return hub, testServer
}

func dialWebSocket(t *testing.T, testServer *httptest.Server) *websocket.Conn {
	t.Helper()
	u, err := url.Parse(testServer.URL)
	if err != nil {
		t.Fatalf("Failed to parse test server URL: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"

	header := http.Header{}
	header.Set("Origin", testServer.URL)

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		_ = resp.Body.Close()
	})
	return conn
}

// wireEvent is the decoded outbound envelope used for assertions.
type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// eventReader splits batched frames: the write pump may coalesce queued
// envelopes into one newline-separated WebSocket message.
type eventReader struct {
	conn    *websocket.Conn
	pending [][]byte
}

func (r *eventReader) next(t *testing.T) wireEvent {
	t.Helper()
	for len(r.pending) == 0 {
		if err := r.conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatalf("Failed to set read deadline: %v", err)
		}
		_, raw, err := r.conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read message: %v", err)
		}
		for _, part := range bytes.Split(raw, []byte{'\n'}) {
			if len(part) > 0 {
				r.pending = append(r.pending, part)
			}
		}
	}

	var event wireEvent
	raw := r.pending[0]
	r.pending = r.pending[1:]
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("Failed to decode envelope %q: %v", raw, err)
	}
	return event
}

// waitFor reads events until the named one arrives, failing after a few
// unrelated events.
func (r *eventReader) waitFor(t *testing.T, name string) wireEvent {
	t.Helper()
	for i := 0; i < 10; i++ {
		event := r.next(t)
		if event.Event == name {
			return event
		}
	}
	t.Fatalf("event %q never arrived", name)
	return wireEvent{}
}

func sendFrame(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal frame data: %v", err)
	}
	frame, err := json.Marshal(inboundFrame{Event: event, Data: payload})
	if err != nil {
		t.Fatalf("Failed to marshal frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}
}

// TestHealthHandler tests the health check endpoint's response.
func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rr := httptest.NewRecorder()

	HealthHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "running") {
		t.Errorf("body = %q, want a running message", rr.Body.String())
	}
}

// TestStatsHandler tests the stats snapshot endpoint.
func TestStatsHandler(t *testing.T) {
	hub := newTestHub(t)

	rr := httptest.NewRecorder()
	StatsHandler(hub)(rr, httptest.NewRequest(http.MethodGet, "/stats", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var stats chat.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.Rooms != 16 {
		t.Errorf("rooms = %d, want 16", stats.Rooms)
	}
	if stats.Users != 0 {
		t.Errorf("users = %d, want 0", stats.Users)
	}
}

// TestWebSocketHandlerRejectsNonGet tests the method restriction on the
// upgrade endpoint.
func TestWebSocketHandlerRejectsNonGet(t *testing.T) {
	_, testServer := newTestServer(t)

	resp, err := http.Post(testServer.URL+"/ws", "application/json", http.NoBody)
	if err != nil {
		t.Fatalf("POST /ws failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

// TestWebSocketChatFlow tests the full path: connect greeting, join, room
// entry, and message fan-out between two real connections.
func TestWebSocketChatFlow(t *testing.T) {
	_, testServer := newTestServer(t)

	alice := &eventReader{conn: dialWebSocket(t, testServer)}
	catalog := alice.waitFor(t, chat.EventRoomsList)

	var summaries []chat.RoomSummary
	if err := json.Unmarshal(catalog.Data, &summaries); err != nil {
		t.Fatalf("Failed to decode rooms_list: %v", err)
	}
	if len(summaries) != 16 {
		t.Fatalf("rooms_list carried %d rooms, want 16", len(summaries))
	}

	sendFrame(t, alice.conn, "join", map[string]string{"username": "Alice"})
	joined := alice.waitFor(t, chat.EventUserJoined)

	var user chat.User
	if err := json.Unmarshal(joined.Data, &user); err != nil {
		t.Fatalf("Failed to decode user_joined: %v", err)
	}
	if user.Username != "Alice" {
		t.Errorf("username = %q, want Alice", user.Username)
	}

	sendFrame(t, alice.conn, "join_room", map[string]string{"roomId": "general"})
	roomJoined := alice.waitFor(t, chat.EventRoomJoined)

	var state chat.RoomStatePayload
	if err := json.Unmarshal(roomJoined.Data, &state); err != nil {
		t.Fatalf("Failed to decode room_joined: %v", err)
	}
	if state.Room == nil || state.Room.ID != "general" {
		t.Fatalf("room_joined room = %+v, want general", state.Room)
	}

	bob := &eventReader{conn: dialWebSocket(t, testServer)}
	bob.waitFor(t, chat.EventRoomsList)
	sendFrame(t, bob.conn, "join", map[string]string{"username": "Bob"})
	bob.waitFor(t, chat.EventUserJoined)
	sendFrame(t, bob.conn, "join_room", map[string]string{"roomId": "general"})
	bob.waitFor(t, chat.EventRoomJoined)

	// Alice sees Bob arrive.
	presence := alice.waitFor(t, chat.EventUserJoinedRoom)
	var presencePayload chat.PresencePayload
	if err := json.Unmarshal(presence.Data, &presencePayload); err != nil {
		t.Fatalf("Failed to decode user_joined_room: %v", err)
	}
	if presencePayload.Username != "Bob" || presencePayload.UserCount != 2 {
		t.Errorf("presence = %+v, want Bob with userCount 2", presencePayload)
	}

	sendFrame(t, alice.conn, "send_message", map[string]string{"content": "hello Bob"})
	delivered := bob.waitFor(t, chat.EventNewMessage)

	var msg chat.Message
	if err := json.Unmarshal(delivered.Data, &msg); err != nil {
		t.Fatalf("Failed to decode new_message: %v", err)
	}
	if msg.Author != "Alice" || msg.Content != "hello Bob" {
		t.Errorf("message = %+v, want hello Bob from Alice", msg)
	}
}

// TestWebSocketDisconnectNotifiesRoom tests that closing a connection drives
// the coordinator's disconnect transition and notifies the remaining member.
func TestWebSocketDisconnectNotifiesRoom(t *testing.T) {
	_, testServer := newTestServer(t)

	alice := &eventReader{conn: dialWebSocket(t, testServer)}
	alice.waitFor(t, chat.EventRoomsList)
	sendFrame(t, alice.conn, "join", map[string]string{"username": "Alice"})
	alice.waitFor(t, chat.EventUserJoined)
	sendFrame(t, alice.conn, "join_room", map[string]string{"roomId": "general"})
	alice.waitFor(t, chat.EventRoomJoined)

	bob := &eventReader{conn: dialWebSocket(t, testServer)}
	bob.waitFor(t, chat.EventRoomsList)
	sendFrame(t, bob.conn, "join", map[string]string{"username": "Bob"})
	bob.waitFor(t, chat.EventUserJoined)
	sendFrame(t, bob.conn, "join_room", map[string]string{"roomId": "general"})
	bob.waitFor(t, chat.EventRoomJoined)
	alice.waitFor(t, chat.EventUserJoinedRoom)

	_ = bob.conn.Close()

	left := alice.waitFor(t, chat.EventUserLeft)
	var payload chat.PresencePayload
	if err := json.Unmarshal(left.Data, &payload); err != nil {
		t.Fatalf("Failed to decode user_left: %v", err)
	}
	if payload.Username != "Bob" || payload.UserCount != 1 {
		t.Errorf("user_left = %+v, want Bob leaving 1 behind", payload)
	}
}
