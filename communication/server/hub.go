package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"ringrush/gamemaster"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Spectators may watch from any page
	},
}

// Message is what spectators of a game receive.
type Message struct {
	GameID string             `json:"game_id"`
	Event  string             `json:"event"`
	Update *gamemaster.Update `json:"update,omitempty"`
}

// Client is one spectator connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub fans game updates out to the spectators of each game.
type Hub struct {
	// Registered clients by game ID
	games map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		games:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serves the hub's channels until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ctx.Done():
			for _, clients := range h.games {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Publish queues an update for the spectators of its game. It is a
// gamemaster.Subscriber.
func (h *Hub) Publish(update gamemaster.Update) {
	h.broadcast <- &Message{GameID: update.GameID, Event: "state_update", Update: &update}
}

// ServeWS upgrades the request and registers the spectator for gameID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}
	h.register <- client

	// Tell the spectator it is registered and will see every following ply
	if data, err := json.Marshal(&Message{GameID: gameID, Event: "connected"}); err == nil {
		client.send <- data
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	if h.games[client.gameID] == nil {
		h.games[client.gameID] = make(map[*Client]bool)
	}
	h.games[client.gameID][client] = true

	log.Info().Msgf("spectator joined game %s (total: %d)", client.gameID, len(h.games[client.gameID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.games[client.gameID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.games, client.gameID)
	}

	log.Info().Msgf("spectator left game %s (remaining: %d)", client.gameID, len(clients))
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal broadcast message")
		return
	}

	for client := range h.games[message.GameID] {
		select {
		case client.send <- data:
		default:
			// Slow spectator
			h.unregisterClient(client)
		}
	}
}

// readPump only watches for the connection closing; spectators do not send.
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket error")
			}
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
				// The hub closed the channel
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
