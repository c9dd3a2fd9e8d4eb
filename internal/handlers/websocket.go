package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"solana-casino-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler runs the live settlement feed. Every settled bet is
// pushed to all connected clients with private fields stripped; a
// wallet additionally receives its own pending-round events.
type WebSocketHandler struct {
	hub *wsHub
	log *zap.Logger
}

type wsHub struct {
	clients    map[*wsClient]struct{}
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan wsMessage
}

type wsClient struct {
	wallet string
	conn   *websocket.Conn
	send   chan wsMessage
}

type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
	// wallet restricts delivery to one connection's owner; empty means
	// broadcast.
	wallet string
}

func NewWebSocketHandler(log *zap.Logger) *WebSocketHandler {
	hub := &wsHub{
		clients:    make(map[*wsClient]struct{}),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan wsMessage, 256),
	}
	go hub.run()
	return &WebSocketHandler{hub: hub, log: log}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	wallet := c.GetString("wallet")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		wallet: wallet,
		conn:   conn,
		send:   make(chan wsMessage, 32),
	}
	h.hub.register <- client

	go client.writeLoop()
	client.readLoop(h.hub)
}

// PublishSettled implements services.Feed: the settled bet goes out to
// everyone. Seed material beyond the public hash never appears here.
func (h *WebSocketHandler) PublishSettled(bet models.BetRecord) {
	strike, err := bet.GetStrike()
	if err != nil {
		h.log.Warn("drop feed event with bad strike", zap.String("bet_id", bet.ID), zap.Error(err))
		return
	}
	msg := wsMessage{
		Type: "BET_SETTLED",
		Data: gin.H{
			"bet_id":     bet.ID,
			"wallet":     bet.Wallet,
			"game":       bet.Game,
			"amount":     bet.Amount,
			"multiplier": bet.Multiplier,
			"result":     bet.Result,
			"strike":     strike,
			"settled_at": bet.SettledAt,
		},
	}
	select {
	case h.hub.broadcast <- msg:
	default:
		// Feed full: settlement never waits on subscribers.
	}
}

func (c *wsClient) readLoop(hub *wsHub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(1024)
	for {
		var msg wsMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "PING" {
			select {
			case c.send <- wsMessage{Type: "PONG", Data: gin.H{"timestamp": time.Now().Unix()}}:
			default:
			}
		}
	}
}

func (c *wsClient) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (hub *wsHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = struct{}{}

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.send)
			}

		case msg := <-hub.broadcast:
			for client := range hub.clients {
				if msg.wallet != "" && msg.wallet != client.wallet {
					continue
				}
				select {
				case client.send <- msg:
				default:
					// Slow client: drop the event rather than block the hub.
				}
			}
		}
	}
}
