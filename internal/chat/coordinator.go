// Package chat implements the coordinator state machine: join, session
// restore, room switches, and disconnects, together with the notifications
// each transition emits.
package chat

import (
	"log"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

const maxUsernameRunes = 20

// Coordinator owns the identity and room registries. Every transition runs as
// one indivisible step under a single mutex, so no handler ever observes
// partial state from another. Cross-room switches (leave + enter) complete
// under one lock acquisition.
type Coordinator struct {
	mu       sync.Mutex
	identity *identityRegistry
	rooms    *roomRegistry
}

// NewCoordinator builds a coordinator seeded with the built-in room catalog.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		identity: newIdentityRegistry(),
		rooms:    newRoomRegistry(defaultCatalog()),
	}
}

// Handle resolves one inbound command against the registries and returns the
// notifications to deliver, in the order recipients must observe them.
// Commands referencing missing state (unknown room, unidentified connection)
// return nil rather than error notifications.
func (c *Coordinator) Handle(connID string, cmd Command) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd := cmd.(type) {
	case Connect:
		return []Notification{unicast(connID, EventRoomsList, c.rooms.summaries())}
	case Join:
		return c.join(connID, cmd.Username)
	case RestoreSession:
		return c.restoreSession(connID, cmd)
	case JoinRoom:
		return c.joinRoom(connID, cmd.RoomID)
	case SendMessage:
		return c.sendRoomMessage(connID, cmd.Content)
	case SendPrivate:
		return c.sendPrivateMessage(connID, cmd)
	case TypingStart:
		return c.typing(connID, EventUserTyping)
	case TypingStop:
		return c.typing(connID, EventUserStoppedTyping)
	case Disconnect:
		return c.disconnect(connID, cmd.Reason)
	}
	return nil
}

// join moves an anonymous connection to the identified state. Validation
// failures leave the connection anonymous and are reported to the joiner
// only.
func (c *Coordinator) join(connID, rawName string) []Notification {
	if c.identity.byConnection(connID) != nil {
		return nil
	}

	name := strings.TrimSpace(rawName)
	if reason := c.validateUsername(name); reason != "" {
		return []Notification{unicast(connID, EventJoinError, ErrorPayload{Message: reason})}
	}

	user := c.identify(connID, name)
	return []Notification{unicast(connID, EventUserJoined, *user)}
}

// restoreSession is a join that may re-enter a prior room. Failures use a
// distinct event so clients can fall back to a fresh join flow.
func (c *Coordinator) restoreSession(connID string, cmd RestoreSession) []Notification {
	if c.identity.byConnection(connID) != nil {
		return nil
	}

	name := strings.TrimSpace(cmd.Username)
	if reason := c.validateUsername(name); reason != "" {
		return []Notification{unicast(connID, EventSessionRestoreFailed, ErrorPayload{Message: reason})}
	}

	user := c.identify(connID, name)
	notifications := []Notification{unicast(connID, EventUserJoined, *user)}

	if room, ok := c.rooms.get(cmd.RoomID); ok {
		return append(notifications, c.enterRoom(user, room, EventSessionRestored)...)
	}
	return append(notifications, unicast(connID, EventSessionRestored, RoomStatePayload{
		Messages: []Message{},
		Users:    []string{},
	}))
}

func (c *Coordinator) identify(connID, name string) *User {
	user := &User{
		ID:       connID,
		Username: name,
		JoinedAt: time.Now().UTC(),
	}
	c.identity.reserve(name, connID)
	c.identity.bind(user)
	return user
}

func (c *Coordinator) validateUsername(name string) string {
	if name == "" {
		return "Username is required"
	}
	if utf8.RuneCountInString(name) > maxUsernameRunes {
		return "Username must be 20 characters or less"
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "Username contains invalid characters"
		}
	}
	if c.identity.taken(name) {
		return "Username is already taken"
	}
	return ""
}

// joinRoom performs the switch transition. Leaving the old room and entering
// the new one happen under the same lock acquisition, so observers never see
// the user in both rooms or in neither.
func (c *Coordinator) joinRoom(connID, roomID string) []Notification {
	user := c.identity.byConnection(connID)
	if user == nil {
		return nil
	}
	room, ok := c.rooms.get(roomID)
	if !ok {
		return nil
	}

	var notifications []Notification
	if user.CurrentRoom != "" && user.CurrentRoom != room.ID {
		notifications = c.leaveRoom(user)
	}
	return append(notifications, c.enterRoom(user, room, EventRoomJoined)...)
}

// leaveRoom removes the user from the current room and notifies the remaining
// members, then refreshes the count and catalog for everyone.
func (c *Coordinator) leaveRoom(user *User) []Notification {
	room, ok := c.rooms.get(user.CurrentRoom)
	if !ok {
		user.CurrentRoom = ""
		return nil
	}

	room.removeMember(user.ID)
	user.CurrentRoom = ""

	notifications := make([]Notification, 0, 3)
	if remaining := room.memberIDs(""); len(remaining) > 0 {
		notifications = append(notifications, multicast(remaining, EventUserLeft, PresencePayload{
			Username:     user.Username,
			UserCount:    room.memberCount(),
			UpdatedUsers: c.rooms.memberNames(room, c.identity),
		}))
	}
	return append(notifications,
		broadcast(EventRoomUpdated, RoomUpdatePayload{RoomID: room.ID, UserCount: room.memberCount()}),
		broadcast(EventRoomsList, c.rooms.summaries()),
	)
}

// enterRoom adds membership, replies to the joiner with the room state, and
// notifies the other members plus all clients. replyEvent distinguishes a
// live join from a session restore.
func (c *Coordinator) enterRoom(user *User, room *Room, replyEvent string) []Notification {
	room.addMember(user.ID)
	user.CurrentRoom = room.ID

	summary := c.rooms.summary(room)
	names := c.rooms.memberNames(room, c.identity)

	notifications := make([]Notification, 0, 4)
	notifications = append(notifications, unicast(user.ID, replyEvent, RoomStatePayload{
		Room:     &summary,
		Messages: room.recentMessages(historyCompactTo),
		Users:    names,
	}))
	if others := room.memberIDs(user.ID); len(others) > 0 {
		notifications = append(notifications, multicast(others, EventUserJoinedRoom, PresencePayload{
			Username:     user.Username,
			UserCount:    room.memberCount(),
			UpdatedUsers: names,
		}))
	}
	return append(notifications,
		broadcast(EventRoomUpdated, RoomUpdatePayload{RoomID: room.ID, UserCount: room.memberCount()}),
		broadcast(EventRoomsList, c.rooms.summaries()),
	)
}

// disconnect runs the leave transition if needed, then deletes the user
// record and releases the display name for immediate reuse.
func (c *Coordinator) disconnect(connID, reason string) []Notification {
	user := c.identity.byConnection(connID)
	if user == nil {
		return nil
	}

	var notifications []Notification
	if user.CurrentRoom != "" {
		notifications = c.leaveRoom(user)
	}
	c.identity.unbind(connID)
	log.Printf("User %q disconnected (%s)", user.Username, reason)
	return notifications
}
