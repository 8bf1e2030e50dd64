package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection is one seat's websocket. Table views arrive from the
// runner's subscription; replies to bad requests are queued separately.
type Connection struct {
	conn        *websocket.Conn
	runner      *TableRunner
	seatID      string
	updates     <-chan game.View
	unsubscribe func()
	replies     chan ServerMessage
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// NewConnection subscribes the seat to its table.
func NewConnection(conn *websocket.Conn, runner *TableRunner, seatID string, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	updates, unsubscribe := runner.Subscribe(seatID)
	return &Connection{
		conn:        conn,
		runner:      runner,
		seatID:      seatID,
		updates:     updates,
		unsubscribe: unsubscribe,
		replies:     make(chan ServerMessage, 16),
		logger:      logger.WithPrefix("conn").With("seat", seatID, "table", runner.Name()),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} { return c.ctx.Done() }

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.unsubscribe()
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) reply(msg ServerMessage) {
	select {
	case c.replies <- msg:
	default:
		c.logger.Warn("Reply buffer full, dropping message", "type", msg.Type)
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	write := func(msg ServerMessage) bool {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Debug("Failed to write message", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case v, ok := <-c.updates:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "table closed"))
				return
			}
			if !write(stateMessage(v)) {
				return
			}

		case msg := <-c.replies:
			if !write(msg) {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg ClientMessage) {
	c.logger.Debug("Received message", "type", msg.Type)

	var err error
	switch msg.Type {
	case MessageTypeAction:
		var kind action.Kind
		if kind, err = action.ParseKind(msg.Action); err != nil {
			c.reply(errorMessage("invalid_action", err.Error()))
			return
		}
		_, err = c.runner.Act(c.seatID, action.Action{Kind: kind, Amount: msg.Amount})
	case MessageTypeReveal:
		err = c.runner.Reveal(c.seatID)
	case MessageTypeRebuy:
		_, err = c.runner.Rebuy(c.seatID)
	case MessageTypeNextHand:
		err = c.runner.StartHand()
	default:
		c.reply(errorMessage("unknown_message", "unknown message type "+string(msg.Type)))
		return
	}
	if err != nil {
		c.reply(errorMessage(errorCode(err), err.Error()))
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, ErrTableClosed):
		return "table_closed"
	default:
		return "not_allowed"
	}
}
