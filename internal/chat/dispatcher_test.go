// Package chat_test contains unit tests for the coordinator state machine.
//
// Tests drive the coordinator through its public Handle entry point and
// observe deliveries through a capturing dispatcher, so every assertion runs
// against the same boundary the transport layer uses.
package chat_test

import (
	"testing"

	"github.com/parlorchat/parlor/internal/chat"
)

// sentEvent records one dispatcher delivery: its target kind, the resolved
// recipients, and the event payload.
type sentEvent struct {
	kind    string // "to", "many", or "all"
	conn    string
	conns   []string
	event   string
	payload any
}

type captureDispatcher struct {
	events []sentEvent
}

func (d *captureDispatcher) SendTo(connID string, event string, payload any) {
	d.events = append(d.events, sentEvent{kind: "to", conn: connID, event: event, payload: payload})
}

func (d *captureDispatcher) SendToMany(connIDs []string, event string, payload any) {
	d.events = append(d.events, sentEvent{kind: "many", conns: connIDs, event: event, payload: payload})
}

func (d *captureDispatcher) SendToAll(event string, payload any) {
	d.events = append(d.events, sentEvent{kind: "all", event: event, payload: payload})
}

// dispatch runs one command and returns the deliveries it produced.
func dispatch(c *chat.Coordinator, connID string, cmd chat.Command) []sentEvent {
	d := &captureDispatcher{}
	chat.Deliver(d, c.Handle(connID, cmd))
	return d.events
}

// eventsNamed filters deliveries by event name.
func eventsNamed(events []sentEvent, name string) []sentEvent {
	var out []sentEvent
	for _, e := range events {
		if e.event == name {
			out = append(out, e)
		}
	}
	return out
}

// mustJoin identifies a connection and fails the test on any unexpected
// outcome.
func mustJoin(t *testing.T, c *chat.Coordinator, connID, username string) {
	t.Helper()

	events := dispatch(c, connID, chat.Join{Username: username})
	if len(events) != 1 || events[0].event != chat.EventUserJoined {
		t.Fatalf("Join(%q) produced %+v, want a single user_joined", username, events)
	}
}

// mustJoinRoom moves an identified connection into a room.
func mustJoinRoom(t *testing.T, c *chat.Coordinator, connID, roomID string) {
	t.Helper()

	events := dispatch(c, connID, chat.JoinRoom{RoomID: roomID})
	if len(eventsNamed(events, chat.EventRoomJoined)) != 1 {
		t.Fatalf("JoinRoom(%q) produced %+v, want a room_joined reply", roomID, events)
	}
}
