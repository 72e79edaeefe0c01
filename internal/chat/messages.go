// Package chat validates and routes chat messages, private messages, and
// typing indicators. All entry points here run under the coordinator mutex
// via Handle.
package chat

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxMessageRunes = 1000

const errMessageTooLong = "Message too long (max 1000 characters)"

// sendRoomMessage appends a validated message to the sender's current room
// and fans it out to every member, sender included. Senders with no current
// room and empty messages are dropped silently.
func (c *Coordinator) sendRoomMessage(connID, rawContent string) []Notification {
	user := c.identity.byConnection(connID)
	if user == nil || user.CurrentRoom == "" {
		return nil
	}
	room, ok := c.rooms.get(user.CurrentRoom)
	if !ok {
		return nil
	}

	content := strings.TrimSpace(rawContent)
	if content == "" {
		return nil
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		return []Notification{unicast(connID, EventError, ErrorPayload{Message: errMessageTooLong})}
	}

	msg := Message{
		ID:        uuid.NewString(),
		Author:    user.Username,
		Content:   content,
		Timestamp: time.Now().UTC(),
		RoomID:    room.ID,
	}
	room.appendMessage(msg)

	return []Notification{multicast(room.memberIDs(""), EventNewMessage, msg)}
}

// sendPrivateMessage delivers a direct message to exactly the resolved
// connection. The message is transient: it is never stored.
func (c *Coordinator) sendPrivateMessage(connID string, cmd SendPrivate) []Notification {
	user := c.identity.byConnection(connID)
	if user == nil {
		return nil
	}

	target := strings.TrimSpace(cmd.To)
	content := strings.TrimSpace(cmd.Content)
	if target == "" || content == "" {
		return nil
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		return []Notification{unicast(connID, EventError, ErrorPayload{Message: errMessageTooLong})}
	}

	targetConnID, ok := c.identity.byName(target)
	if !ok {
		return []Notification{unicast(connID, EventError, ErrorPayload{Message: "user not found or offline"})}
	}

	pm := PrivateMessage{
		ID:        cmd.ID,
		From:      user.Username,
		To:        target,
		Content:   content,
		Timestamp: cmd.Timestamp,
	}
	if pm.ID == "" {
		pm.ID = uuid.NewString()
	}
	if pm.Timestamp.IsZero() {
		pm.Timestamp = time.Now().UTC()
	}
	if recipient := c.identity.byConnection(targetConnID); recipient != nil {
		pm.To = recipient.Username
	}

	return []Notification{unicast(targetConnID, EventPrivateMessage, pm)}
}

// typing notifies the other members of the sender's current room. Connections
// that are not in a room are ignored.
func (c *Coordinator) typing(connID, event string) []Notification {
	user := c.identity.byConnection(connID)
	if user == nil || user.CurrentRoom == "" {
		return nil
	}
	room, ok := c.rooms.get(user.CurrentRoom)
	if !ok {
		return nil
	}

	others := room.memberIDs(connID)
	if len(others) == 0 {
		return nil
	}
	return []Notification{multicast(others, event, user.Username)}
}
