package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxInboundMessage bounds what a dashboard client may send; clients are
// expected to send nothing but control frames.
const maxInboundMessage = 4096

type client struct {
	hub         *Hub
	conn        *websocket.Conn
	remote      string
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	connectedAt time.Time
}

func newClient(h *Hub, conn *websocket.Conn) *client {
	return &client{
		hub:         h,
		conn:        conn,
		remote:      conn.RemoteAddr().String(),
		send:        make(chan []byte, h.config.SendBufferSize),
		done:        make(chan struct{}),
		connectedAt: time.Now(),
	}
}

// close stops both loops and closes the connection. Safe to call repeatedly.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writeLoop is the only writer to conn.
func (c *client) writeLoop() {
	defer c.hub.wg.Done()
	defer c.hub.unregister(c)
	defer c.close()

	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-c.hub.ctx.Done():
			deadline := time.Now().Add(time.Second)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.logger.Debug("websocket-write-failed", zap.String("remote", c.remote), zap.Error(err))
				MessagesDroppedTotal.WithLabelValues("write_error").Inc()
				return
			}
			MessagesSentTotal.Inc()
		case <-ticker.C:
			deadline := time.Now().Add(c.hub.config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.hub.logger.Debug("websocket-ping-failed", zap.String("remote", c.remote), zap.Error(err))
				return
			}
		}
	}
}

// readLoop drains inbound frames so pongs and close frames are processed,
// and ends the client when the peer goes away.
func (c *client) readLoop() {
	defer c.hub.wg.Done()
	defer c.close()

	pongWait := 2 * c.hub.config.PingInterval
	c.conn.SetReadLimit(maxInboundMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket-read-error", zap.String("remote", c.remote), zap.Error(err))
			}
			return
		}
	}
}
