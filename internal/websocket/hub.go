// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
)

// Message types for WebSocket communication
const (
	MessageTypeDiscovery   = "discovery"
	MessageTypeBadgeEarned = "badge_earned"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until the context is canceled, then closes
// every client and returns the context error. Designed for suture
// supervision: the supervisor restarts the hub on unexpected returns.
//
// Channel handling is priority-ordered so client state is always settled
// before a broadcast is processed: shutdown first, then lifecycle events,
// then broadcasts. Go's select picks randomly among ready channels, so
// each priority gets its own non-blocking check.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnectionsActive.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnectionsActive.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// broadcastToClients fans a message out to every client in ID order.
// Iteration order is made deterministic by sorting on the monotonic client
// ID; map iteration order would make delivery order unreproducible.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			// Channel full or closed, the client is too slow to keep.
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSConnectionsActive.Set(float64(len(h.clients)))
	}
}

// shutdown closes all clients and logs the reason. Context cancellation is
// the normal shutdown path, so it is not logged as an error.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WSConnectionsActive.Set(0)

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// DiscoveryData is sent with discovery messages when an artwork is
// recognized.
type DiscoveryData struct {
	Timestamp string          `json:"timestamp"`
	Username  string          `json:"username"`
	Artwork   *models.Artwork `json:"artwork"`
	NewEntry  bool            `json:"new_entry"`
}

// BroadcastDiscovery notifies all clients that a user recognized an
// artwork.
func (h *Hub) BroadcastDiscovery(username string, artwork *models.Artwork, newEntry bool) {
	h.enqueue(Message{
		Type: MessageTypeDiscovery,
		Data: DiscoveryData{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Username:  username,
			Artwork:   artwork,
			NewEntry:  newEntry,
		},
	})
}

// BadgeEarnedData is sent with badge_earned messages.
type BadgeEarnedData struct {
	Timestamp string `json:"timestamp"`
	Username  string `json:"username"`
	BadgeID   string `json:"badge_id"`
}

// BroadcastBadgeEarned notifies all clients that a user earned a badge.
func (h *Hub) BroadcastBadgeEarned(username, badgeID string) {
	h.enqueue(Message{
		Type: MessageTypeBadgeEarned,
		Data: BadgeEarnedData{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Username:  username,
			BadgeID:   badgeID,
		},
	})
}

// enqueue hands a message to the broadcast loop without blocking. A full
// channel drops the message; live updates are best-effort.
func (h *Hub) enqueue(message Message) {
	select {
	case h.broadcast <- message:
	default:
		metrics.WSBroadcastsDropped.Inc()
		logging.Warn().Str("message_type", message.Type).Msg("broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
