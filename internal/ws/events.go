package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Outbound event types.
const (
	EventLayoutFrame  = "layout.frame"
	EventLayoutIdle   = "layout.idle"
	EventNodeHover    = "node.hover"
	EventNodeSelected = "node.selected"
	EventTransform    = "view.transform"
	EventGraphReady   = "graph.ready"
)

// Inbound message types.
const (
	MsgSubscribe = "subscribe"
	MsgDragStart = "drag.start"
	MsgDragMove  = "drag.move"
	MsgDragEnd   = "drag.end"
	MsgHover     = "hover"
	MsgHoverEnd  = "hover.end"
	MsgClick     = "click"
)

// Event is the structured message sent to WebSocket clients.
type Event struct {
	Type      string          `json:"type"`
	ID        uint64          `json:"id"`
	SessionID string          `json:"-"`
	Data      json.RawMessage `json:"data"`
	Time      time.Time       `json:"time"`
}

// InboundMsg is a pointer or control message sent by the client. NodeID and
// the coordinates are meaningful only for the pointer types.
type InboundMsg struct {
	Type        string  `json:"type"`
	NodeID      string  `json:"node_id,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	LastEventID uint64  `json:"last_event_id,omitempty"`
}

// ResetMsg tells the client to do a full refresh (requested events too old).
type ResetMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// EventSequence tracks monotonic event IDs per session.
type EventSequence struct {
	mu       sync.Mutex
	counters map[string]*atomic.Uint64
}

// NewEventSequence creates a new EventSequence.
func NewEventSequence() *EventSequence {
	return &EventSequence{
		counters: make(map[string]*atomic.Uint64),
	}
}

// Next returns the next sequence number for a session.
func (es *EventSequence) Next(sessionID string) uint64 {
	es.mu.Lock()
	counter, ok := es.counters[sessionID]
	if !ok {
		counter = &atomic.Uint64{}
		es.counters[sessionID] = counter
	}
	es.mu.Unlock()

	return counter.Add(1)
}
