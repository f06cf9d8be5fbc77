package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/logger"
)

type EventType string

const (
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// TypeMatchFound is pushed to a queued user when someone pairs with
	// them, and to the requester on an immediate pairing.
	TypeMatchFound EventType = "match_found"

	// TypeMatchingClosed is pushed to the counterpart when a matching
	// is completed or blocked.
	TypeMatchingClosed EventType = "matching_closed"
)

type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub fans events out to connected users. One user may hold several
// connections (phone + laptop); every one of them gets the event.
type Hub struct {
	clients     map[uuid.UUID]*Client
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client)   { h.register <- client }
func (h *Hub) Unregister(client *Client) { h.unregister <- client }

// SendToUser delivers an event to every connection of the user. Users
// without a connection simply miss the push and learn the news when
// they poll; delivery is best effort.
func (h *Hub) SendToUser(userID uuid.UUID, eventType EventType, data any) {
	event := Event{Type: eventType, Timestamp: time.Now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Error("failed to marshal ws event", "type", eventType, "err", err)
			return
		}
		event.Data = raw
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal ws event", "type", eventType, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("ws send buffer full, dropping event", "user", userID, "type", eventType)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	logger.Debug("ws client registered", "client", client.ID, "user", client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	logger.Debug("ws client unregistered", "client", client.ID, "user", client.UserID)
}
