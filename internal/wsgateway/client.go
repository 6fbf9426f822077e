package wsgateway

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/SlotMachine_Go/internal/logger"
)

// client is one browser connection
type client struct {
	id      string
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte
	ctx     context.Context
}

// readPump handles inbound frames until the connection fails
func (c *client) readPump() {
	cfg := c.gateway.cfg
	defer func() {
		c.gateway.unregister(c)
		_ = c.conn.Close()
		c.gateway.wg.Done()
		logger.FromContext(c.ctx).Info(LogMsgClientDisconnected)
	}()

	c.conn.SetReadLimit(cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.FromContext(c.ctx).Warn(LogMsgReadError, "error", err)
			}
			return
		}
		c.gateway.handle(c, data)
	}
}

// writePump drains the send channel and keeps the connection alive with pings
func (c *client) writePump() {
	cfg := c.gateway.cfg
	ticker := time.NewTicker(cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.gateway.wg.Done()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if !ok {
				// Unregistered
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.FromContext(c.ctx).Warn(LogMsgWriteError, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
