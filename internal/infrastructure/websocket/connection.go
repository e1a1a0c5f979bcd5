package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps a gorilla websocket connection as a FeedConnection. Gorilla
// allows only one concurrent writer, hence the write mutex.
type Conn struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewConn(id string, conn *websocket.Conn) *Conn {
	return &Conn{id: id, conn: conn}
}

func (c *Conn) Send(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) ID() string {
	return c.id
}
