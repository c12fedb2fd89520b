// Package websocket implements a Hub for broadcasting live RSVP updates.
// When a player responds to a match, everyone watching that match's attendance
// view (coaches chasing stragglers on match week, mostly) should see the count
// move without polling. The Hub groups connected clients by match ID and pushes
// each update to exactly the clients watching that match.
package websocket

import "sync"

// Client represents a single connected client watching one match.
type Client struct {
	MatchID string      // Which match this client is watching
	Send    chan []byte // Buffered channel of outgoing messages; the Hub writes here, the socket writer drains it
}

// Message is a unit of data to broadcast to all clients watching a match.
type Message struct {
	MatchID string
	Data    []byte // JSON-encoded RSVP update
}

// Hub manages all active connections, grouped by match ID. It runs in its own
// goroutine and processes registration, unregistration, and broadcast events
// through channels, which keeps map mutation on a single goroutine.
type Hub struct {
	// clients is matchID -> set of Client pointers. map[*Client]bool as a set.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu lets the broadcast path read the client set while the main loop
	// mutates it. Broadcasts only read, so an RWMutex fits.
	mu sync.RWMutex
}

// NewHub creates an empty Hub. The broadcast channel is buffered so RSVP
// handlers don't block if the Hub goroutine is briefly busy; register and
// unregister are unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's event loop. Call it in a goroutine ("go hub.Run()");
// it blocks forever, processing one event at a time.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.MatchID]
			stalled := []*Client{}
			for client := range clients {
				select {
				case client.Send <- msg.Data:
				default:
					// Full buffer means a client that stopped draining —
					// drop it rather than blocking every other watcher.
					// Can't send to h.unregister from this goroutine (Run is
					// its only reader), so collect and remove directly.
					stalled = append(stalled, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range stalled {
				h.remove(client)
			}
		}
	}
}

// remove deletes a client from its match set and closes its Send channel.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[client.MatchID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send) // Signals the socket writer goroutine to stop
			if len(clients) == 0 {
				delete(h.clients, client.MatchID) // Last watcher left; drop the match entry
			}
		}
	}
}

// BroadcastToMatch sends data to all clients currently watching the given
// match. Handlers call this after recording an RSVP.
func (h *Hub) BroadcastToMatch(matchID string, data []byte) {
	h.broadcast <- &Message{MatchID: matchID, Data: data}
}

// Register adds a client so it starts receiving broadcasts for its match.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
