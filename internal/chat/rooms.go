// Package chat holds the fixed room catalog and the per-room dynamic state:
// member sets and bounded message history.
package chat

const (
	// historyLiveCap bounds a room's history on every append.
	historyLiveCap = 100
	// historyCompactTo is the bound enforced by the retention sweep and the
	// window returned in room_joined replies.
	historyCompactTo = 50
)

// Room is one catalog entry. ID, Name, Description, and Category are fixed at
// startup; only the member set and history mutate, always under the
// coordinator mutex.
type Room struct {
	ID          string
	Name        string
	Description string
	Category    string

	members     map[string]struct{}
	memberOrder []string // connection ids in join order
	history     []Message
}

func newRoom(id, name, description, category string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		members:     make(map[string]struct{}),
	}
}

func (r *Room) addMember(connID string) {
	if _, ok := r.members[connID]; ok {
		return
	}
	r.members[connID] = struct{}{}
	r.memberOrder = append(r.memberOrder, connID)
}

func (r *Room) removeMember(connID string) {
	if _, ok := r.members[connID]; !ok {
		return
	}
	delete(r.members, connID)
	for i, id := range r.memberOrder {
		if id == connID {
			r.memberOrder = append(r.memberOrder[:i], r.memberOrder[i+1:]...)
			break
		}
	}
}

func (r *Room) memberCount() int {
	return len(r.members)
}

// memberIDs returns the member connection ids in join order, minus an
// optional excluded connection.
func (r *Room) memberIDs(exclude string) []string {
	ids := make([]string, 0, len(r.memberOrder))
	for _, id := range r.memberOrder {
		if id == exclude {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// appendMessage appends and then trims the history head so it never exceeds
// the live cap.
func (r *Room) appendMessage(msg Message) {
	r.history = append(r.history, msg)
	if len(r.history) > historyLiveCap {
		r.history = r.history[len(r.history)-historyLiveCap:]
	}
}

// recentMessages returns a copy of the newest messages, at most limit of
// them, oldest first.
func (r *Room) recentMessages(limit int) []Message {
	start := 0
	if len(r.history) > limit {
		start = len(r.history) - limit
	}
	out := make([]Message, len(r.history)-start)
	copy(out, r.history[start:])
	return out
}

// compact truncates the history to the given bound and reports how many
// entries were dropped.
func (r *Room) compact(limit int) int {
	if len(r.history) <= limit {
		return 0
	}
	dropped := len(r.history) - limit
	r.history = append([]Message(nil), r.history[dropped:]...)
	return dropped
}

// roomRegistry is the fixed catalog plus lookup by id. Rooms are created once
// at startup and never added or removed afterwards.
type roomRegistry struct {
	order []*Room
	byID  map[string]*Room
}

func newRoomRegistry(catalog []*Room) *roomRegistry {
	reg := &roomRegistry{byID: make(map[string]*Room, len(catalog))}
	for _, room := range catalog {
		reg.order = append(reg.order, room)
		reg.byID[room.ID] = room
	}
	return reg
}

func (reg *roomRegistry) get(roomID string) (*Room, bool) {
	room, ok := reg.byID[roomID]
	return room, ok
}

// summaries snapshots the catalog in insertion order.
func (reg *roomRegistry) summaries() []RoomSummary {
	out := make([]RoomSummary, 0, len(reg.order))
	for _, room := range reg.order {
		out = append(out, reg.summary(room))
	}
	return out
}

func (reg *roomRegistry) summary(room *Room) RoomSummary {
	return RoomSummary{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Category:    room.Category,
		UserCount:   room.memberCount(),
	}
}

// memberNames resolves a room's members to display names in join order,
// silently dropping connection ids that no longer resolve.
func (reg *roomRegistry) memberNames(room *Room, identity *identityRegistry) []string {
	names := make([]string, 0, len(room.memberOrder))
	for _, connID := range room.memberOrder {
		if user := identity.byConnection(connID); user != nil {
			names = append(names, user.Username)
		}
	}
	return names
}
