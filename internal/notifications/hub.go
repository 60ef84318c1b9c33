package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"comunidad/internal/middleware"
	"comunidad/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const maxTotalConns = 10000

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("forum hub is shut down")

// ForumHub tracks websocket clients following the forum feed.
type ForumHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

// NewForumHub creates an empty hub.
func NewForumHub() *ForumHub {
	return &ForumHub{clients: make(map[*Client]struct{})}
}

// Name labels the hub in logs.
func (h *ForumHub) Name() string { return "forum hub" }

// Register adds a connection to the feed.
func (h *ForumHub) Register(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.clients) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	client := NewClient(h, conn)
	h.clients[client] = struct{}{}
	return client, nil
}

// UnregisterClient removes client and closes its send buffer. Calling it twice is safe.
func (h *ForumHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// ClientCount returns the number of registered clients.
func (h *ForumHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every connected client.
func (h *ForumHub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// Deliver broadcasts an encoded ForumEvent and counts it by type.
func (h *ForumHub) Deliver(payload string) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil || envelope.Type == "" {
		middleware.Logger.Warn("dropping malformed forum event", slog.String("payload", payload))
		return
	}
	observability.WebSocketEventsTotal.WithLabelValues(envelope.Type).Inc()
	h.BroadcastAll(payload)
}

// StartWiring subscribes the hub to the notifier's forum channel.
func (h *ForumHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartForumSubscriber(ctx, h.Deliver)
}

// Shutdown closes every client's send buffer; each WritePump then sends a
// going-away close frame and drops its connection.
func (h *ForumHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	for client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[*Client]struct{})
	return nil
}
