// Package transport accepts websocket connections and bridges them to the
// coordinator hub: one read pump per connection feeding the hub, one write
// pump draining a bounded outbound queue.
package transport

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/campblood/server/internal/game"
)

const (
	sendQueueSize = 64
	writeTimeout  = 5 * time.Second
	readLimit     = 64 << 10 // 64 KiB; frames are small JSON objects
)

// Conn wraps one websocket connection. It satisfies game.Conn: Send is
// non-blocking and fire-and-forget, and a closed connection swallows sends.
type Conn struct {
	id     string
	ws     *websocket.Conn
	logger *zap.Logger

	send chan []byte
	done chan struct{}
	once sync.Once
}

func newConn(id string, ws *websocket.Conn, logger *zap.Logger) *Conn {
	return &Conn{
		id:     id,
		ws:     ws,
		logger: logger.With(zap.String("conn", id)),
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// ID returns the connection correlation id used in logs.
func (c *Conn) ID() string { return c.id }

// Send marshals v and enqueues it for delivery. Sends on a closed
// connection are dropped silently; a full queue drops the frame rather than
// block a coordinator turn.
func (c *Conn) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.logger.Warn("outbound queue full, dropping frame")
	}
	return nil
}

// Close shuts the connection down. Safe to call multiple times.
func (c *Conn) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.ws.Close()
}

// writePump drains the outbound queue onto the wire. Runs as its own
// goroutine per connection; exits when the connection closes or a write
// fails.
func (c *Conn) writePump() {
	defer c.ws.Close()
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		}
	}
}

// sink receives inbound frames and connection-loss events from a read pump.
// The hub implements it.
type sink interface {
	HandleMessage(c game.Conn, data []byte)
	HandleClose(c game.Conn)
}

// readPump forwards inbound frames to the hub until the connection drops,
// then reports the close exactly once.
func (c *Conn) readPump(s sink) {
	defer func() {
		_ = c.Close()
		s.HandleClose(c)
	}()
	c.ws.SetReadLimit(readLimit)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", zap.Error(err))
			}
			return
		}
		s.HandleMessage(c, data)
	}
}
