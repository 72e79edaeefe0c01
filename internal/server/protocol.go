// Package server translates inbound wire frames into coordinator commands.
// The transport never interprets chat semantics beyond this mapping.
package server

import (
	"encoding/json"
	"time"

	"github.com/parlorchat/parlor/internal/chat"
)

// decodeCommand maps one inbound frame to a coordinator command. Unknown
// events and malformed payloads yield (nil, false) and are dropped by the
// caller.
func decodeCommand(frame inboundFrame) (chat.Command, bool) {
	switch frame.Event {
	case "join":
		var payload struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return nil, false
		}
		return chat.Join{Username: payload.Username}, true

	case "restore_session":
		var payload struct {
			Username string `json:"username"`
			RoomID   string `json:"roomId"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return nil, false
		}
		return chat.RestoreSession{Username: payload.Username, RoomID: payload.RoomID}, true

	case "join_room":
		var payload struct {
			RoomID string `json:"roomId"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return nil, false
		}
		return chat.JoinRoom{RoomID: payload.RoomID}, true

	case "send_message":
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return nil, false
		}
		return chat.SendMessage{Content: payload.Content}, true

	case "private_message":
		var payload struct {
			To        string    `json:"to"`
			Content   string    `json:"content"`
			ID        string    `json:"id"`
			Timestamp time.Time `json:"timestamp"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return nil, false
		}
		return chat.SendPrivate{
			To:        payload.To,
			Content:   payload.Content,
			ID:        payload.ID,
			Timestamp: payload.Timestamp,
		}, true

	case "typing_start":
		return chat.TypingStart{}, true

	case "typing_stop":
		return chat.TypingStop{}, true
	}

	return nil, false
}
