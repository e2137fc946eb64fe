package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
)

// Client wraps a single websocket connection. Writes go through a buffered
// channel so one slow consumer never blocks a broadcast.
type Client struct {
	conn *websocket.Conn
	user UserSummary
	send chan []byte

	// rooms is guarded by the hub mutex.
	rooms map[string]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewClient registers a connection with the hub. The caller owns the read
// loop and must run WritePump in its own goroutine.
func (h *Hub) NewClient(conn *websocket.Conn, user UserSummary) *Client {
	return &Client{
		conn:  conn,
		user:  user,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
		done:  make(chan struct{}),
	}
}

func (c *Client) User() UserSummary { return c.user }

// Send writes an event to this connection only.
func (c *Client) Send(event string, payload interface{}) {
	b, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		log.Printf("[WS] marshal %s failed: %v", event, err)
		return
	}
	c.enqueue(b)
}

func (c *Client) enqueue(b []byte) {
	select {
	case c.send <- b:
	case <-c.done:
	default:
		// Buffer full: drop the frame. The client converges on its next
		// full reload, losing a broadcast is tolerated.
		log.Printf("[WS] dropping frame for slow client %s", c.user.ID)
	}
}

// WritePump drains the send channel onto the wire until the client closes
// or the context is cancelled.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case b := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, b)
			cancel()
			if err != nil {
				log.Printf("[WS] write to %s failed: %v", c.user.ID, err)
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close(websocket.StatusNormalClosure, "")
		}
	})
}
