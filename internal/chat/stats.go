// Package chat exposes the read-only counters consumed by the stats endpoint.
package chat

// Stats is a point-in-time snapshot of coordinator state for external
// reporting.
type Stats struct {
	Users     int            `json:"users"`
	Rooms     int            `json:"rooms"`
	RoomUsers map[string]int `json:"roomUsers"`
}

// Snapshot returns the current connected-user count, room count, and per-room
// member counts.
func (c *Coordinator) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Users:     c.identity.count(),
		Rooms:     len(c.rooms.order),
		RoomUsers: make(map[string]int, len(c.rooms.order)),
	}
	for _, room := range c.rooms.order {
		stats.RoomUsers[room.ID] = room.memberCount()
	}
	return stats
}
