// Package hub broadcasts watch events to subscribed clients over
// Server-Sent Events.
package hub

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Message is one broadcast payload. Topic is the event kind; clients with
// no topic subscriptions receive everything.
type Message struct {
	Event string
	Topic string
	Data  string
}

// Client represents a subscribed connection
type Client struct {
	ID     string
	Send   chan Message
	topics map[string]bool
	mu     sync.RWMutex
}

// Hub manages client connections and broadcasting
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	logger     *log.Logger
	mu         sync.RWMutex
}

// New creates a hub
func New(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// NewClient creates an unregistered client
func (h *Hub) NewClient() *Client {
	return &Client{
		ID:     uuid.NewString(),
		Send:   make(chan Message, 256),
		topics: make(map[string]bool),
	}
}

// Register registers a client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister unregisters a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a message for all subscribed clients
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		// Broadcast buffer full, drop rather than stall the producer
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run runs the hub's main loop until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			count := len(h.clients)
			h.mu.Unlock()
			h.logf("Client registered: %s (total: %d)", client.ID, count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client.ID]; exists {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logf("Client unregistered: %s", client.ID)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.IsSubscribed(message.Topic) {
					continue
				}
				select {
				case client.Send <- message:
				default:
					// Client buffer full, disconnect slow client
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// IsSubscribed checks if the client is subscribed to a topic
func (c *Client) IsSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// No explicit subscriptions means subscribe to all
	if len(c.topics) == 0 {
		return true
	}

	return c.topics[topic]
}

// Subscribe subscribes the client to a topic
func (c *Client) Subscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics[topic] = true
}

// Unsubscribe unsubscribes the client from a topic
func (c *Client) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.topics, topic)
}

// shutdown closes all client channels
func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[string]*Client)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
