// Package server coordinates client registration, notification delivery, and
// connection cleanup for the Parlor WebSocket transport via the Hub type.
package server

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/parlorchat/parlor/internal/chat"
)

// Hub manages all WebSocket client connections and delivers the coordinator's
// notifications to them. It implements chat.Dispatcher; the coordinator only
// ever names targets, never sockets.
type Hub struct {
	coordinator *chat.Coordinator
	clients     map[string]*Client
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewHub creates a Hub bound to the given coordinator. The returned Hub is
// ready to manage WebSocket connections once Run is started.
func NewHub(coordinator *chat.Coordinator) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		coordinator: coordinator,
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// Coordinator exposes the hub's coordinator for handlers and tests.
func (h *Hub) Coordinator() *chat.Coordinator {
	return h.coordinator
}

// Run starts the hub's main event loop, handling client registration and
// unregistration. This method should be called in a separate goroutine as it
// runs until Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			if client == nil {
				log.Printf("Received nil client registration; skipping")
				continue
			}

			h.mutex.Lock()
			client.closed = false
			h.clients[client.id] = client
			clientCount := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Client %s registered from %s. Total clients: %d", client.id, client.addr, clientCount)

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

			// Greet the connection with the room catalog.
			chat.Deliver(h, h.coordinator.Handle(client.id, chat.Connect{}))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				client.closed = true
				clientCount := len(h.clients)
				h.mutex.Unlock()
				// Close the channel after releasing the lock.
				close(client.send)
				log.Printf("Client %s unregistered from %s. Total clients: %d", client.id, client.addr, clientCount)
			} else {
				h.mutex.Unlock()
			}

			// The coordinator runs the leave transition and frees the
			// display name; unknown connections are a no-op.
			chat.Deliver(h, h.coordinator.Handle(client.id, chat.Disconnect{Reason: "connection closed"}))
		}
	}
}

// SendTo delivers one event to a single connection. Part of chat.Dispatcher.
func (h *Hub) SendTo(connID string, event string, payload any) {
	data, ok := encodeEvent(event, payload)
	if !ok {
		return
	}

	h.mutex.RLock()
	client := h.clients[connID]
	h.mutex.RUnlock()
	if client == nil {
		return
	}

	if !h.safeSend(client, data) {
		h.removeFailedClients([]*Client{client})
	}
}

// SendToMany delivers one event to an explicit set of connections. Part of
// chat.Dispatcher.
func (h *Hub) SendToMany(connIDs []string, event string, payload any) {
	data, ok := encodeEvent(event, payload)
	if !ok {
		return
	}

	h.mutex.RLock()
	targets := make([]*Client, 0, len(connIDs))
	for _, id := range connIDs {
		if client, exists := h.clients[id]; exists {
			targets = append(targets, client)
		}
	}
	h.mutex.RUnlock()

	h.sendToClients(targets, data)
}

// SendToAll delivers one event to every connected client. Part of
// chat.Dispatcher.
func (h *Hub) SendToAll(event string, payload any) {
	data, ok := encodeEvent(event, payload)
	if !ok {
		return
	}

	h.sendToClients(h.clientSnapshot(), data)
}

func encodeEvent(event string, payload any) ([]byte, bool) {
	data, err := json.Marshal(eventEnvelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return nil, false
	}
	return data, true
}

func (h *Hub) sendToClients(targets []*Client, data []byte) {
	var failed []*Client
	for _, client := range targets {
		if !h.safeSend(client, data) {
			failed = append(failed, client)
		}
	}
	h.removeFailedClients(failed)
}

func (h *Hub) safeSend(client *Client, message []byte) bool {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in safeSend: %v", r)
		}
	}()

	// Hold the lock during the entire send operation to prevent race conditions.
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[client.id]
	if !exists || client.closed {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

// clientSnapshot returns a thread-safe snapshot of all current clients.
func (h *Hub) clientSnapshot() []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

// removeFailedClients drops clients whose send buffers are full and closes
// their channels. Their read pumps will fire the normal unregister path,
// which runs the coordinator's disconnect transition.
func (h *Hub) removeFailedClients(failed []*Client) {
	if len(failed) == 0 {
		return
	}

	h.mutex.Lock()
	var channelsToClose []chan []byte
	for _, client := range failed {
		if _, exists := h.clients[client.id]; exists {
			delete(h.clients, client.id)
			client.closed = true
			channelsToClose = append(channelsToClose, client.send)
			log.Printf("Client %s from %s removed due to full send buffer", client.id, client.addr)
		}
	}
	h.mutex.Unlock()

	// Close channels after releasing the lock.
	for _, ch := range channelsToClose {
		close(ch)
	}
}

// shutdownClients gracefully closes all active client connections.
func (h *Hub) shutdownClients() {
	log.Println("Shutting down all client connections...")

	clients := h.clientSnapshot()
	for _, client := range clients {
		if client.conn != nil {
			if err := client.conn.Close(); err != nil {
				if !isExpectedCloseError(err) {
					log.Printf("Error closing client connection from %s: %v", client.addr, err)
				}
			}
		}
	}

	log.Printf("Closed %d client connections", len(clients))
}

// Shutdown initiates graceful shutdown of the hub and waits for all goroutines
// to complete, or until the timeout is reached.
func (h *Hub) Shutdown(timeout time.Duration) error {
	log.Println("Initiating hub shutdown...")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		log.Println("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
