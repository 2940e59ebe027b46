package server

import (
	"fmt"
	"sync"
	"time"

	"widget-backend/src/models"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

type Client struct {
	id   string
	hub  *Server
	conn *websocket.Conn
	send chan *models.MLiveUpdate

	mu      sync.Mutex
	widgets map[string]struct{}
}

func newClient(hub *Server, conn *websocket.Conn, id interface{}) *Client {
	return &Client{
		id:      fmt.Sprint(id),
		hub:     hub,
		conn:    conn,
		send:    make(chan *models.MLiveUpdate, sendBuffer),
		widgets: make(map[string]struct{}),
	}
}

// -----------------------------------------------------------------------------

// subscribe adds widgets to the set pushed to this client.
func (c *Client) subscribe(widgets []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range widgets {
		c.widgets[w] = struct{}{}
	}
}

func (c *Client) wants(widget string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.widgets[widget]
	return ok
}

// -----------------------------------------------------------------------------

// trySend queues a direct reply without blocking. It reports false when the
// buffer is full or the hub already closed the channel.
func (c *Client) trySend(update *models.MLiveUpdate) (sent bool) {
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case c.send <- update:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// readPump - handles incoming messages from client
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
		c.hub.Logger.Info("Client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Info("WebSocket error: %v", err)
			}
			break
		}
		c.hub.HandleClientMessage(c, message)
	}
}

// -----------------------------------------------------------------------------
// writePump - sends messages to client
// -----------------------------------------------------------------------------

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.hub.Logger.Info("Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
