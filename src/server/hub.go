package server

import (
	"encoding/json"
	"net/http"
	"time"

	"widget-backend/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	updateInitial = "INITIAL"
	updateUpdate  = "UPDATE"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub owns the client set. It exits when the server shuts down.
func (s *Server) runHub() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.connections.Store(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Store(int32(len(s.clients)))

		case client := <-s.unregister:
			s.drop(client)

		case update := <-s.broadcast:
			for client := range s.clients {
				if !client.wants(update.Widget) {
					continue
				}
				select {
				case client.send <- update:
				default:
					// Slow consumer
					s.Logger.Warning("Dropping slow client %s", client.id)
					s.drop(client)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

func (s *Server) drop(client *Client) {
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
		s.connections.Store(int32(len(s.clients)))
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast stores update as the latest snapshot of its widget and queues it
// for subscribers. A full queue drops the push; the snapshot is kept.
func (s *Server) Broadcast(update *models.MLiveUpdate) {
	if update == nil {
		return
	}
	if update.Type == "" {
		update.Type = updateUpdate
	}
	if update.Timestamp == 0 {
		update.Timestamp = time.Now().Unix()
	}

	s.stateMutex.Lock()
	s.snapshots[update.Widget] = update
	s.stateMutex.Unlock()

	select {
	case s.broadcast <- update:
	case <-s.done:
	default:
		s.Logger.Warning("Broadcast queue full, skipping push of %s", update.Widget)
	}
}

// -----------------------------------------------------------------------------

// Snapshot returns the latest update of widget, if any.
func (s *Server) Snapshot(widget string) (*models.MLiveUpdate, bool) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	snap, ok := s.snapshots[widget]
	return snap, ok
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// -----------------------------------------------------------------------------

func (s *Server) handleWebSocket(c *gin.Context) {
	up := upgrader
	up.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range s.Config.AllowOrigins {
			if o == origin {
				return true
			}
		}
		return false
	}

	conn, err := up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	id, _ := c.Get("request_id")
	client := newClient(s, conn, id)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage applies a subscribe command and answers with the
// snapshots already known for the requested widgets. An empty widget list
// subscribes to every widget.
func (s *Server) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	requested := cmd.Widgets
	if len(requested) == 0 {
		requested = s.Registry.IDs()
	}

	var known []string
	for _, id := range requested {
		if _, ok := s.Registry.Get(id); ok {
			known = append(known, id)
		}
	}
	client.subscribe(known)

	for _, id := range known {
		snap, ok := s.Snapshot(id)
		if !ok {
			continue
		}
		initial := *snap
		initial.Type = updateInitial
		if !client.trySend(&initial) {
			return
		}
	}
}
