// Package chat declares the outbound event names that form the wire contract
// with connected clients.
package chat

// Outbound event names. Field names inside the associated payloads are part of
// the wire contract and must not change.
const (
	EventRoomsList            = "rooms_list"
	EventUserJoined           = "user_joined"
	EventJoinError            = "join_error"
	EventSessionRestored      = "session_restored"
	EventSessionRestoreFailed = "session_restore_failed"
	EventRoomJoined           = "room_joined"
	EventUserJoinedRoom       = "user_joined_room"
	EventUserLeft             = "user_left"
	EventRoomUpdated          = "room_updated"
	EventNewMessage           = "new_message"
	EventPrivateMessage       = "private_message"
	EventUserTyping           = "user_typing"
	EventUserStoppedTyping    = "user_stopped_typing"
	EventError                = "error"
)
