package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sng-lab/domain"
	"sng-lab/errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeBuffer  = 100
	writeTimeout = 5 * time.Second
)

// Connection wraps one participant socket.
// Writes go through a single writer goroutine; gorilla connections allow one concurrent writer only.
type Connection struct {
	conn        *websocket.Conn
	writeCh     chan []byte
	participant domain.Participant
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

func NewConnection(conn *websocket.Conn, participant domain.Participant) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		conn:        conn,
		writeCh:     make(chan []byte, writeBuffer),
		participant: participant,
		ctx:         ctx,
		cancel:      cancel,
	}
	go c.writeLoop()
	return c
}

func (c *Connection) Participant() domain.Participant {
	return c.participant
}

func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *Connection) writeLoop() {
	for {
		select {
		case data := <-c.writeCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				_ = c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				_ = c.Close()
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// WriteJSON queues a frame, waiting at most writeTimeout for room in the buffer.
func (c *Connection) WriteJSON(v any) error {
	select {
	case <-c.ctx.Done():
		return errors.ErrConnectionClosed
	default:
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidFrame, err)
	}

	timer := time.NewTimer(writeTimeout)
	defer timer.Stop()
	select {
	case c.writeCh <- data:
		return nil
	case <-timer.C:
		return errors.ErrWriteTimeout
	case <-c.ctx.Done():
		return errors.ErrConnectionClosed
	}
}

func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}
