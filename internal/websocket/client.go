package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Connection timing. Pings go out before the pong deadline lapses.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// sendBuffer is how many ledger events may queue before a subscriber is
	// treated as stalled
	sendBuffer = 256
)

// Client is one browser or tool following a ledger namespace
type Client struct {
	id        string
	namespace string
	conn      *websocket.Conn
	hub       *Hub
	send      chan []byte
	closed    bool
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection subscribed to namespace
func NewClient(conn *websocket.Conn, namespace string, hub *Hub) *Client {
	return &Client{
		id:        uuid.New().String(),
		namespace: namespace,
		conn:      conn,
		hub:       hub,
		send:      make(chan []byte, sendBuffer),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Namespace returns the ledger namespace the client follows
func (c *Client) Namespace() string {
	return c.namespace
}

// Send queues an encoded event. A closed client or a full queue returns
// ErrClientClosed and the hub drops the subscriber.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrClientClosed
	}
}

// Close is idempotent
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		err = c.conn.Close()
	})
	return err
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ReadPump keeps the read deadline fresh from pongs and discards anything
// the subscriber sends. It returns when the connection drops, unregistering
// the client on the way out.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().
					Err(err).
					Str("subscriber", c.id).
					Str("namespace", c.namespace).
					Msg("Ledger subscriber dropped")
			}
			return
		}
	}
}

// WritePump delivers queued ledger events and keeps the connection alive
// with pings. It returns once the hub closes the queue or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				_ = c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, event); err != nil {
				log.Warn().
					Err(err).
					Str("subscriber", c.id).
					Str("namespace", c.namespace).
					Msg("Failed to deliver ledger event")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
