package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bnema/confbot/internal/domain"
)

type client struct {
	id   domain.Identity
	conn *websocket.Conn

	sendMu sync.Mutex
	send   chan frame
	closed bool
}

func newClient(id domain.Identity, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan frame, 16),
	}
}

func (c *client) readLoop(h *Hub) {
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			return
		}

		switch f.Type {
		case "message":
			h.receive(c.id, f.Text)
		case "name":
			h.setFriendName(c.id, f.Name)
		}
	}
}

func (c *client) writeLoop() {
	for f := range c.send {
		if err := c.conn.WriteJSON(f); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}

// enqueue hands a frame to the write loop without ever blocking the dispatch
// goroutine; a stalled client drops frames instead.
func (c *client) enqueue(f frame) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}

	select {
	case c.send <- f:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
