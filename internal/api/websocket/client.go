package websocket

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Buffer size for outbound messages
	sendBufferSize = 64
)

// Records fetches raw rows and renders pages from them
type Records interface {
	Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error)
	Render(raw []stats.RawStatRow, state stats.ViewState) service.Page
}

// Client is one portal session. It owns the last fetched row set and the
// view state every re-render starts from.
type Client struct {
	ID   string
	conn *websocket.Conn
	Send chan ServerMessage

	hub     *Hub
	records Records
	logger  *log.Logger
	seq     service.Sequencer

	mu       sync.Mutex
	filter   stats.Filter
	state    stats.ViewState
	lastRows []stats.RawStatRow

	sendMu sync.Mutex
	closed bool
}

// NewClient creates a session on an upgraded connection
func NewClient(id string, conn *websocket.Conn, hub *Hub, records Records, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.Writer(), "[ws] ", log.LstdFlags)
	}
	return &Client{
		ID:      id,
		conn:    conn,
		Send:    make(chan ServerMessage, sendBufferSize),
		hub:     hub,
		records: records,
		logger:  logger,
		state:   stats.ViewState{View: stats.ViewSeason, Page: 1},
	}
}

// ReadPump reads client messages until the connection drops
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Printf("client %s unexpected close: %v", c.ID, err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		c.handleMessage(ctx, msg)
	}
}

// WritePump writes queued messages and keeps the connection alive
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Printf("client %s write error: %v", c.ID, err)
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

// TrySend queues a message without blocking. It returns false when the
// buffer is full or the session is closed.
func (c *Client) TrySend(msg ServerMessage) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// close stops further sends and ends the write pump
func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) handleMessage(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case MessageTypeSearch:
		c.search(ctx, msg)
	case MessageTypeView:
		c.view(msg)
	case MessageTypeHeartbeat:
		c.TrySend(ServerMessage{Type: MessageTypeHeartbeat, Timestamp: time.Now()})
	default:
		c.sendError("unknown_message_type", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

// search starts a fetch under a fresh request id. The fetch runs off the
// read loop so a newer search can supersede it; a superseded result is
// dropped and never rendered.
func (c *Client) search(ctx context.Context, msg ClientMessage) {
	id := c.seq.Next()
	filter := msg.Filter

	go func() {
		rows, err := c.records.Fetch(ctx, filter)

		c.mu.Lock()
		defer c.mu.Unlock()

		if staleErr := c.seq.Check(id); staleErr != nil {
			c.logger.Printf("client %s: request %d: %v", c.ID, id, staleErr)
			return
		}
		if err != nil {
			c.sendError("fetch_failed", err.Error())
			return
		}

		state := filter.ViewState()
		state.PageSize = c.state.PageSize
		if msg.PageSize > 0 {
			state.PageSize = msg.PageSize
		}

		c.filter = filter
		c.lastRows = rows
		c.render(id, state)
	}()
}

// view re-renders the last fetched rows with an updated view state
func (c *Client) view(msg ClientMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	if msg.StatCategory != "" {
		state = state.WithCategory(msg.StatCategory)
	}
	if msg.StatsView != "" {
		state = state.WithView(stats.ParseStatsView(string(msg.StatsView)))
	}
	if msg.Advanced != nil {
		state.ShowAdvanced = *msg.Advanced
	}
	if msg.PageSize > 0 {
		state = state.WithPageSize(msg.PageSize)
	}
	if msg.Page > 0 {
		state.Page = msg.Page
	}
	if msg.Click != "" {
		state = state.Resolve(c.lastRows).Click(msg.Click)
	}

	c.render(0, state)
}

// render must be called with mu held
func (c *Client) render(requestID uint64, state stats.ViewState) {
	page := c.records.Render(c.lastRows, state)
	c.state = page.State

	if !c.TrySend(ServerMessage{
		Type:      MessageTypeRecords,
		RequestID: requestID,
		Payload:   page,
		Timestamp: time.Now(),
	}) {
		c.logger.Printf("⚠️  client %s buffer full, dropping records page", c.ID)
	}
}

func (c *Client) sendError(code, message string) {
	c.TrySend(ServerMessage{
		Type:      MessageTypeError,
		Payload:   ErrorMessage{Code: code, Message: message},
		Timestamp: time.Now(),
	})
}
