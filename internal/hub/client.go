package hub

import (
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// joinMessage is the only frame clients send: it (re-)announces which user
// room the session belongs to. Registration is not persisted across
// disconnects, so reconnecting clients send it again.
type joinMessage struct {
	Event  string `json:"event"`
	UserID int64  `json:"userId"`
}

const joinEvent = "join-user-room"

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID reminder.UserID
}

func NewClient(h *Hub, conn *websocket.Conn, userID reminder.UserID) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
}

// Serve registers the client and pumps messages until the connection drops.
// It blocks until the read side finishes.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warning(
					context.Background(),
					"Websocket closed unexpectedly.",
					logging.Entry("userID", c.userID),
					logging.Entry("err", err),
				)
			}
			return
		}

		var join joinMessage
		if err := json.Unmarshal(message, &join); err != nil || join.Event != joinEvent {
			continue
		}
		if userID := reminder.UserID(join.UserID); userID != c.userID {
			c.hub.rejoin(c, userID)
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
