package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeTimeout     = 10 * time.Second
	wsReadLimit      = 4096
	clientSendBuffer = 256
	maxConnLifetime  = 4 * time.Hour // safety net; clients reconnect transparently
	pingInterval     = 30 * time.Second
	pingTimeout      = 10 * time.Second
	maxMissedPongs   = int32(2)
)

// PointerHandler receives pointer and control messages from a client. The
// layout service implements this to feed drag, hover, and click events into
// the session's running simulation.
type PointerHandler interface {
	HandlePointer(ctx context.Context, sessionID string, msg InboundMsg)
}

// Client wraps a single WebSocket connection managed by the Hub.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	log         *logrus.Logger
	SessionID   string
	handler     PointerHandler
	closeOnce   sync.Once
	connectedAt time.Time
}

// closeSend safely closes the send channel exactly once.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// NewClient creates a new Client for the given WebSocket connection.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID string, handler PointerHandler) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, clientSendBuffer),
		log:         hub.log,
		SessionID:   sessionID,
		handler:     handler,
		connectedAt: time.Now(),
	}
}

// ReadPump reads messages from the WebSocket connection until it closes.
// Subscribe requests trigger event replay; pointer messages are forwarded to
// the handler.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown
	}()

	c.conn.SetReadLimit(wsReadLimit)

	for {
		_, msgBytes, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				c.log.WithField("status", websocket.CloseStatus(err)).Debug("client disconnected")
			}

			return
		}

		c.handleMessage(ctx, msgBytes)
	}
}

// sendPing sends a WebSocket ping and tracks missed pongs.
// Returns true if the connection should be closed.
func (c *Client) sendPing(ctx context.Context, missedPongs *atomic.Int32) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := c.conn.Ping(pingCtx)
	cancel()

	if err != nil {
		if missedPongs.Add(1) >= maxMissedPongs {
			c.log.Debug("closing: 2 consecutive missed pongs")

			return true
		}

		return false
	}

	missedPongs.Store(0)

	return false
}

// handleMessage processes an incoming client message.
func (c *Client) handleMessage(ctx context.Context, msgBytes []byte) {
	var msg InboundMsg
	if err := json.Unmarshal(msgBytes, &msg); err != nil {
		return
	}

	if msg.Type == MsgSubscribe {
		if !c.hub.ReplayEvents(c, msg.LastEventID) {
			resetMsg, err := json.Marshal(ResetMsg{
				Type:   "reset",
				Reason: "requested events no longer available, perform full refresh",
			})
			if err != nil {
				return
			}
			select {
			case c.send <- resetMsg:
			default:
			}
		}

		return
	}

	if c.handler != nil {
		c.handler.HandlePointer(ctx, c.SessionID, msg)
	}
}

// WritePump writes messages from the send channel to the WebSocket connection.
// It enforces a maximum connection lifetime.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	lifetimeTimer := time.NewTimer(time.Until(c.connectedAt.Add(maxConnLifetime)))
	defer lifetimeTimer.Stop()

	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	var missedPongs atomic.Int32

	for {
		select {
		case <-pingTicker.C:
			if c.sendPing(ctx, &missedPongs) {
				return
			}
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)

			err := c.conn.Write(writeCtx, websocket.MessageText, msg)

			cancel()

			if err != nil {
				c.log.WithError(err).Debug("write failed")

				return
			}
		case <-lifetimeTimer.C:
			c.log.Info("closing WebSocket: max connection lifetime exceeded")
			c.conn.Close(websocket.StatusNormalClosure, "max connection lifetime exceeded") //nolint:errcheck // best-effort

			return
		}
	}
}
