package broadcast

import (
	"context"
	"sync"

	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// Message types pushed to (and accepted from) websocket clients.
const (
	MessageTypeAssetReady  = "asset_ready"
	MessageTypeAssetFailed = "asset_failed"
	MessageTypeFollow      = "follow"
	MessageTypeUnfollow    = "unfollow"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// CompletionData is the payload of asset_ready / asset_failed messages.
type CompletionData struct {
	AssetID      string   `json:"asset_id"`
	OwnerID      string   `json:"owner_id"`
	RenditionIDs []string `json:"rendition_ids,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Hub tracks the currently connected clients and fans completion events out
// to the interested ones. Delivery is best-effort: durability stops at the
// job queue, a client that is not connected simply misses the push.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

// compile-time check: *Hub must satisfy port.CompletionBroadcaster
var _ port.CompletionBroadcaster = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	logger.Infof(context.Background(), "websocket client connected for owner %q (%d total)", c.ownerID, total)
}

func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.drop()
	}
	total := len(h.clients)
	h.mu.Unlock()
	logger.Infof(context.Background(), "websocket client disconnected for owner %q (%d total)", c.ownerID, total)
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish fans one completion event out to every client interested in the
// event's owner: the owner's own sessions plus anyone following them. A
// client whose outbound buffer is full is dropped; its pumps notice the
// closed channel and tear the connection down.
func (h *Hub) Publish(event model.CompletionEvent) {
	msg := completionMessage(event)

	h.mu.Lock()
	defer h.mu.Unlock()

	var stalled []*Client
	delivered := 0
	for c := range h.clients {
		if !c.interestedIn(event.OwnerID) {
			continue
		}
		if c.deliver(msg) {
			delivered++
		} else {
			stalled = append(stalled, c)
		}
	}
	for _, c := range stalled {
		delete(h.clients, c)
		c.drop()
		logger.Warnf(context.Background(), "dropping stalled websocket client for owner %q", c.ownerID)
	}

	logger.Infof(context.Background(), "broadcast %s for asset #%s to %d clients", msg.Type, event.AssetID, delivered)
}

// Close tears every client down, used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.drop()
	}
}

func completionMessage(event model.CompletionEvent) Message {
	msgType := MessageTypeAssetReady
	if event.Status == model.CompletionStatusFailed {
		msgType = MessageTypeAssetFailed
	}
	return Message{
		Type: msgType,
		Data: CompletionData{
			AssetID:      event.AssetID.String(),
			OwnerID:      event.OwnerID,
			RenditionIDs: event.RenditionIDs,
			Error:        event.Error,
		},
	}
}
