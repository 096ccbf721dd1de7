package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/moviegoers/moviegoers-api/internal/models"
	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins (for development)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RotationMessage is pushed to connected clients when the daily movie changes
type RotationMessage struct {
	Type    string          `json:"type"`
	Payload models.TimeInfo `json:"payload"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts rotation events
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound messages for all clients
	broadcast chan []byte

	gameService *services.GameService
	log         *zap.Logger
}

// NewHub creates a new hub
func NewHub(gameService *services.GameService, log *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte),
		gameService: gameService,
		log:         log,
	}
}

// Run starts the hub loop until the context is canceled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// RunRotationNotifier broadcasts a rotation event at each daily boundary so
// connected pages can refetch the movie without polling
func (h *Hub) RunRotationNotifier(ctx context.Context) {
	for {
		now := time.Now()
		next := h.gameService.NextRotation(now)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		rotated := time.Now()
		day := h.gameService.StartOfDay(rotated)
		msg := RotationMessage{
			Type: "rotation",
			Payload: models.TimeInfo{
				Date:         day.Format("2006-01-02"),
				NextRotation: h.gameService.NextRotation(rotated),
				Timezone:     day.Location().String(),
			},
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			h.log.Error("failed to marshal rotation message", zap.Error(err))
			continue
		}

		h.log.Info("daily rotation", zap.String("date", msg.Payload.Date))
		h.broadcast <- payload
	}
}

// ServeWS upgrades an HTTP request to a websocket connection
func ServeWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Error("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 8),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump drains the connection; clients never send application messages,
// the reader only services pongs and close frames
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
