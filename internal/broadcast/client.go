package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/port"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBufferSize = 64
)

// Client is the middleman between one websocket connection and the hub. Its
// interest set starts as the owner's persisted follow list and is adjusted
// live by inbound follow/unfollow messages.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	ownerID string
	follows port.FollowManager

	mu        sync.RWMutex
	interests map[string]struct{}

	// sendMu guards send against the close in drop: the hub and the read
	// pump both queue messages while the hub may be dropping the client.
	sendMu  sync.Mutex
	dropped bool
	send    chan Message
}

func NewClient(hub *Hub, conn *websocket.Conn, ownerID string, follows port.FollowManager, following []string) *Client {
	interests := make(map[string]struct{}, len(following))
	for _, owner := range following {
		interests[owner] = struct{}{}
	}
	return &Client{
		hub:       hub,
		conn:      conn,
		ownerID:   ownerID,
		follows:   follows,
		interests: interests,
		send:      make(chan Message, sendBufferSize),
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// deliver queues msg for the write pump without blocking. It reports false
// when the outbound buffer is full or the client has already been dropped.
func (c *Client) deliver(msg Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.dropped {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// drop closes the outbound channel exactly once. Further deliver calls are
// no-ops, so a ping racing the hub's stall eviction cannot hit a closed
// channel.
func (c *Client) drop() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.dropped {
		return
	}
	c.dropped = true
	close(c.send)
}

func (c *Client) interestedIn(ownerID string) bool {
	if c.ownerID == ownerID {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.interests[ownerID]
	return ok
}

// readPump consumes inbound frames: follow/unfollow adjust the interest set
// (and persist the edge), ping gets a pong. Everything else is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warnf(context.Background(), "unexpected websocket close for owner %q: %v", c.ownerID, err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeFollow:
			c.handleFollow(msg, true)
		case MessageTypeUnfollow:
			c.handleFollow(msg, false)
		case MessageTypePing:
			c.deliver(Message{Type: MessageTypePong})
		}
	}
}

func (c *Client) handleFollow(msg Message, follow bool) {
	followee, ok := msg.Data.(string)
	if !ok || followee == "" || followee == c.ownerID {
		return
	}

	ctx := context.Background()
	var err error
	if follow {
		err = c.follows.Follow(ctx, c.ownerID, followee)
	} else {
		err = c.follows.Unfollow(ctx, c.ownerID, followee)
	}
	if err != nil {
		logger.Warnf(ctx, "could not persist %s of %q by %q: %v", msg.Type, followee, c.ownerID, err)
		return
	}

	c.mu.Lock()
	if follow {
		c.interests[followee] = struct{}{}
	} else {
		delete(c.interests, followee)
	}
	c.mu.Unlock()
}

// writePump pushes hub messages to the connection and keeps it alive with
// pings. A closed send channel means the hub dropped us.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
