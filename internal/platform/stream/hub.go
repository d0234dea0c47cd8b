package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"rezdyLink/internal/modules/bookings/domain"
)

// Hub fans booking events out to connected websocket clients. Clients with a
// full send buffer are detached rather than allowed to stall the broadcast.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) attach(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("stream client attached", slog.String("clientId", c.id))
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
	slog.Info("stream client detached", slog.String("clientId", c.id))
}

// PublishBookingEvent broadcasts one event to every connected client.
func (h *Hub) PublishBookingEvent(_ context.Context, event domain.Event) {
	if h == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("stream event marshal failed", slog.Any("error", err))
		return
	}

	// Sends stay under the read lock so a concurrent detach cannot close a
	// channel mid-broadcast; they never block thanks to the default case.
	h.mu.RLock()
	var stalled []*Client
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.detach(c)
	}
}
