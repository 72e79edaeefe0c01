// Package chat tracks which display names are in use and which user record
// belongs to each connection.
package chat

import "strings"

// identityRegistry holds the case-insensitive name reservation set and the
// per-connection user records. It carries no lock of its own; the coordinator
// mutex serializes all access.
type identityRegistry struct {
	users map[string]*User  // connection id -> user
	names map[string]string // lower-cased display name -> connection id
}

func newIdentityRegistry() *identityRegistry {
	return &identityRegistry{
		users: make(map[string]*User),
		names: make(map[string]string),
	}
}

func nameKey(name string) string {
	return strings.ToLower(name)
}

// taken reports whether the display name is currently reserved, compared
// case-insensitively.
func (r *identityRegistry) taken(name string) bool {
	_, ok := r.names[nameKey(name)]
	return ok
}

// reserve performs the check-and-insert for a display name. It returns false
// without side effects when the name is already held.
func (r *identityRegistry) reserve(name, connID string) bool {
	key := nameKey(name)
	if _, ok := r.names[key]; ok {
		return false
	}
	r.names[key] = connID
	return true
}

// release frees a display name reservation. Releasing an absent name is a
// no-op.
func (r *identityRegistry) release(name string) {
	delete(r.names, nameKey(name))
}

func (r *identityRegistry) bind(user *User) {
	r.users[user.ID] = user
}

// unbind removes the user record for a connection and releases its name.
func (r *identityRegistry) unbind(connID string) {
	user, ok := r.users[connID]
	if !ok {
		return
	}
	r.release(user.Username)
	delete(r.users, connID)
}

func (r *identityRegistry) byConnection(connID string) *User {
	return r.users[connID]
}

// byName resolves a display name to its connection id, case-insensitively.
func (r *identityRegistry) byName(name string) (string, bool) {
	connID, ok := r.names[nameKey(name)]
	return connID, ok
}

func (r *identityRegistry) count() int {
	return len(r.users)
}
