// Package chat describes outbound notifications and the dispatcher boundary
// through which the transport layer delivers them.
package chat

type targetKind int

const (
	targetConn targetKind = iota
	targetConns
	targetAll
)

// Notification is one outbound event addressed to a single connection, an
// explicit set of connections, or every connected client. Room fan-outs are
// resolved to explicit connection sets while the transition holds the
// coordinator mutex, so late deliveries cannot observe a different membership.
type Notification struct {
	Event   string
	Payload any

	kind    targetKind
	connID  string
	connIDs []string
}

func unicast(connID, event string, payload any) Notification {
	return Notification{Event: event, Payload: payload, kind: targetConn, connID: connID}
}

func multicast(connIDs []string, event string, payload any) Notification {
	return Notification{Event: event, Payload: payload, kind: targetConns, connIDs: connIDs}
}

func broadcast(event string, payload any) Notification {
	return Notification{Event: event, Payload: payload, kind: targetAll}
}

// Dispatcher is the transport boundary. Delivery is best effort; the
// coordinator never waits for confirmation.
type Dispatcher interface {
	SendTo(connID string, event string, payload any)
	SendToMany(connIDs []string, event string, payload any)
	SendToAll(event string, payload any)
}

// Deliver hands each notification to the dispatcher in order. Recipients must
// observe the notifications of a single transition in this order.
func Deliver(d Dispatcher, notifications []Notification) {
	for _, n := range notifications {
		switch n.kind {
		case targetConn:
			d.SendTo(n.connID, n.Event, n.Payload)
		case targetConns:
			d.SendToMany(n.connIDs, n.Event, n.Payload)
		case targetAll:
			d.SendToAll(n.Event, n.Payload)
		}
	}
}
