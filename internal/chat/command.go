// Package chat defines the commands the coordinator accepts. The transport
// layer translates wire events into these values and feeds them to Handle.
package chat

import "time"

// Command is one inbound client event resolved against the registries as a
// single indivisible step.
type Command interface {
	isCommand()
}

// Connect announces a freshly registered connection. The reply is the current
// room catalog.
type Connect struct{}

// Join requests a display name for an anonymous connection.
type Join struct {
	Username string
}

// RestoreSession is a Join that optionally re-enters a room from a prior
// session.
type RestoreSession struct {
	Username string
	RoomID   string
}

// JoinRoom moves an identified user into a room, leaving the current one
// first if needed.
type JoinRoom struct {
	RoomID string
}

// SendMessage posts a chat message to the sender's current room.
type SendMessage struct {
	Content string
}

// SendPrivate delivers a direct message to another user by display name.
// ID and Timestamp are optional client-supplied values.
type SendPrivate struct {
	To        string
	Content   string
	ID        string
	Timestamp time.Time
}

// TypingStart and TypingStop toggle the sender's typing indicator for the
// other members of the current room.
type TypingStart struct{}

// TypingStop is the counterpart of TypingStart.
type TypingStop struct{}

// Disconnect tears down a connection's session. Reason is informational only.
type Disconnect struct {
	Reason string
}

func (Connect) isCommand()        {}
func (Join) isCommand()           {}
func (RestoreSession) isCommand() {}
func (JoinRoom) isCommand()       {}
func (SendMessage) isCommand()    {}
func (SendPrivate) isCommand()    {}
func (TypingStart) isCommand()    {}
func (TypingStop) isCommand()     {}
func (Disconnect) isCommand()     {}
