package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is one WebSocket connection. UserID and Role are empty for
// anonymous viewers; authenticated users carry their account ID so a
// reconnect can replace the old connection. ID identifies the connection
// itself in the hub's registry.
type Client struct {
	ID          uuid.UUID
	UserID      string
	Role        string
	ConnectedAt time.Time
	Conn        *websocket.Conn
	Send        chan []byte   // Channel for outgoing messages
	Limiter     *rate.Limiter // Rate limiter to prevent spamming

	hub    *Hub
	closed bool
	mu     sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, role string) *Client {
	return &Client{
		ID:          uuid.New(),
		UserID:      userID,
		Role:        role,
		ConnectedAt: time.Now(),
		Conn:        conn,
		Send:        make(chan []byte, 64),
		Limiter:     rate.NewLimiter(rate.Limit(5), 10),
		hub:         hub,
	}
}

// ReadPump listens for incoming messages from the client and routes them
// through the hub. It owns the connection's read side.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)
		log.Debug().Str("user_id", c.UserID).Msg("websocket connection closed")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", c.UserID).Msg("websocket read error")
			}
			break
		}
		c.hub.HandleMessage(c, message)
	}
}

// WritePump sends outgoing messages and periodic pings to the client. It
// owns the connection's write side.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("user_id", c.UserID).Msg("websocket write error")
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close marks the client closed and closes its send channel exactly once.
func (c *Client) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
	c.mu.Unlock()
	c.Conn.Close()
}

// trySend queues a message without blocking. A client that stopped
// draining its channel misses the message.
func (c *Client) trySend(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- message:
	default:
		log.Warn().Str("user_id", c.UserID).Msg("dropping message for slow websocket client")
	}
}
