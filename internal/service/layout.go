package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/graph"
	"github.com/goodneighborlab/goodneighbor/internal/metrics"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

// hoverIntentDelay is how long the pointer must rest on a node before a
// hover event fires. Pass-through movement never fires.
const hoverIntentDelay = 300 * time.Millisecond

// Broadcaster is the hub surface the layout service needs.
type Broadcaster interface {
	BroadcastEvent(eventType, sessionID string, data json.RawMessage)
	BroadcastFrame(sessionID string, data json.RawMessage)
}

// LayoutService runs one force simulation per session, streaming position
// frames to the session's WebSocket clients until the simulation cools.
type LayoutService struct {
	mu       sync.Mutex
	runs     map[string]*layoutRun
	hub      Broadcaster
	tracker  *InteractionService
	tickRate int
	log      *logrus.Logger
}

// layoutRun is the per-session simulation state. The engine carries its own
// lock; the run's mutable fields are guarded by the service mutex.
type layoutRun struct {
	engine     *graph.Engine
	transform  *graph.ViewTransform
	hoverTimer *time.Timer
	running    bool
	stop       chan struct{}
}

// NewLayoutService creates a LayoutService. tickRate is frames per second.
func NewLayoutService(hub Broadcaster, tracker *InteractionService, tickRate int, log *logrus.Logger) *LayoutService {
	return &LayoutService{
		runs:     make(map[string]*layoutRun),
		hub:      hub,
		tracker:  tracker,
		tickRate: tickRate,
		log:      log,
	}
}

// framePayload is the body of a layout.frame event.
type framePayload struct {
	Alpha  float64       `json:"alpha"`
	Frames []graph.Frame `json:"frames"`
}

// nodeRef is the body of node.hover and node.selected events.
type nodeRef struct {
	NodeID string `json:"node_id"`
}

// Start replaces the session's simulation with one for the given graph.
// Surviving nodes keep their positions so a rebuild reads as a morph, not a
// reshuffle. The view transform also survives rebuilds.
func (s *LayoutService) Start(sessionID string, result models.BuildResult, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev map[string]graph.Position

	transform := graph.NewViewTransform()

	if run, ok := s.runs[sessionID]; ok {
		prev = run.engine.Positions()
		transform = run.transform

		s.stopRunLocked(run)
	}

	run := &layoutRun{
		engine:    graph.NewEngine(result, graph.DefaultLayoutConfig(width, height), prev, nil),
		transform: transform,
	}
	s.runs[sessionID] = run

	metrics.ActiveLayouts.Set(float64(len(s.runs)))

	s.ensureRunningLocked(sessionID, run)
}

// Resize updates the session's viewport and reheats the simulation.
func (s *LayoutService) Resize(sessionID string, req models.ResizeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[sessionID]
	if !ok {
		return models.ErrNoLayout
	}

	run.engine.Resize(req.Width, req.Height)
	s.ensureRunningLocked(sessionID, run)

	return nil
}

// Reheat warms the session's simulation back up so it resettles.
func (s *LayoutService) Reheat(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[sessionID]
	if !ok {
		return models.ErrNoLayout
	}

	run.engine.Reheat()
	s.ensureRunningLocked(sessionID, run)

	return nil
}

// Positions returns the current node positions for the session.
func (s *LayoutService) Positions(sessionID string) ([]graph.Frame, error) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	s.mu.Unlock()

	if !ok {
		return nil, models.ErrNoLayout
	}

	return run.engine.Snapshot(), nil
}

// Zoom scales the session's view transform about the given point.
func (s *LayoutService) Zoom(sessionID string, factor, px, py float64) (graph.TransformState, error) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	s.mu.Unlock()

	if !ok {
		return graph.TransformState{}, models.ErrNoLayout
	}

	state := run.transform.ScaleBy(factor, px, py)
	s.broadcastTransform(sessionID, state)

	return state, nil
}

// Pan shifts the session's view transform.
func (s *LayoutService) Pan(sessionID string, dx, dy float64) (graph.TransformState, error) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	s.mu.Unlock()

	if !ok {
		return graph.TransformState{}, models.ErrNoLayout
	}

	state := run.transform.TranslateBy(dx, dy)
	s.broadcastTransform(sessionID, state)

	return state, nil
}

// ResetView restores the session's view transform to identity.
func (s *LayoutService) ResetView(sessionID string) (graph.TransformState, error) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	s.mu.Unlock()

	if !ok {
		return graph.TransformState{}, models.ErrNoLayout
	}

	state := run.transform.Reset()
	s.broadcastTransform(sessionID, state)

	return state, nil
}

func (s *LayoutService) broadcastTransform(sessionID string, state graph.TransformState) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}

	s.hub.BroadcastEvent(ws.EventTransform, sessionID, data)
}

// HandlePointer implements ws.PointerHandler: drag messages drive the
// simulation, hover runs through an intent timer, click selects and records
// a view.
func (s *LayoutService) HandlePointer(ctx context.Context, sessionID string, msg ws.InboundMsg) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	s.mu.Unlock()

	if !ok {
		return
	}

	switch msg.Type {
	case ws.MsgDragStart:
		if run.engine.StartDrag(msg.NodeID) {
			s.mu.Lock()
			s.ensureRunningLocked(sessionID, run)
			s.mu.Unlock()
		}
	case ws.MsgDragMove:
		run.engine.MoveDrag(msg.NodeID, msg.X, msg.Y)
	case ws.MsgDragEnd:
		run.engine.EndDrag(msg.NodeID)
	case ws.MsgHover:
		s.armHoverTimer(run, sessionID, msg.NodeID)
	case ws.MsgHoverEnd:
		s.cancelHoverTimer(run)
		s.broadcastNodeRef(ws.EventNodeHover, sessionID, "")
	case ws.MsgClick:
		s.cancelHoverTimer(run)
		s.handleClick(ctx, sessionID, msg.NodeID)
	}
}

// armHoverTimer (re)starts the hover-intent timer for a node. Moving to
// another node rearms the timer, so only a resting pointer fires.
func (s *LayoutService) armHoverTimer(run *layoutRun, sessionID, nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.hoverTimer != nil {
		run.hoverTimer.Stop()
	}

	run.hoverTimer = time.AfterFunc(hoverIntentDelay, func() {
		s.broadcastNodeRef(ws.EventNodeHover, sessionID, nodeID)
	})
}

func (s *LayoutService) cancelHoverTimer(run *layoutRun) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.hoverTimer != nil {
		run.hoverTimer.Stop()
		run.hoverTimer = nil
	}
}

// handleClick selects a node and records the view. An empty id is the
// explicit clear-selection signal: it is broadcast as-is and records
// nothing.
func (s *LayoutService) handleClick(ctx context.Context, sessionID, nodeID string) {
	if nodeID != "" {
		if err := s.tracker.TrackView(ctx, sessionID, nodeID); err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"node_id":    nodeID,
			}).WithError(err).Debug("click on unknown node")

			return
		}
	}

	s.broadcastNodeRef(ws.EventNodeSelected, sessionID, nodeID)
}

func (s *LayoutService) broadcastNodeRef(eventType, sessionID, nodeID string) {
	data, err := json.Marshal(nodeRef{NodeID: nodeID})
	if err != nil {
		return
	}

	s.hub.BroadcastEvent(eventType, sessionID, data)
}

// Stop tears down the session's simulation.
func (s *LayoutService) Stop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[sessionID]
	if !ok {
		return
	}

	s.stopRunLocked(run)
	delete(s.runs, sessionID)
	metrics.ActiveLayouts.Set(float64(len(s.runs)))
}

// StopAll tears down every simulation. Called on shutdown.
func (s *LayoutService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, run := range s.runs {
		s.stopRunLocked(run)
		delete(s.runs, id)
	}

	metrics.ActiveLayouts.Set(0)
}

func (s *LayoutService) stopRunLocked(run *layoutRun) {
	if run.hoverTimer != nil {
		run.hoverTimer.Stop()
		run.hoverTimer = nil
	}

	if run.running {
		close(run.stop)
		run.running = false
	}
}

// ensureRunningLocked spawns the tick loop for a run if it is not already
// live. Caller holds s.mu.
func (s *LayoutService) ensureRunningLocked(sessionID string, run *layoutRun) {
	if run.running {
		return
	}

	run.stop = make(chan struct{})
	run.running = true

	go s.tickLoop(sessionID, run, run.stop)
}

// tickLoop advances the simulation at the configured frame rate, streaming a
// frame per tick. It exits when the simulation cools or the run is stopped;
// a later drag or reheat spawns a fresh loop.
func (s *LayoutService) tickLoop(sessionID string, run *layoutRun, stop chan struct{}) {
	interval := time.Second / time.Duration(s.tickRate)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !run.engine.Tick() {
				s.finishRun(sessionID, run, stop)

				return
			}

			metrics.LayoutTicks.Inc()
			s.broadcastFrame(sessionID, run)
		}
	}
}

// finishRun marks the loop dead and announces settlement, unless the run was
// stopped or replaced while the last tick was in flight.
func (s *LayoutService) finishRun(sessionID string, run *layoutRun, stop chan struct{}) {
	s.mu.Lock()
	if run.stop == stop && run.running {
		run.running = false
	}
	s.mu.Unlock()

	s.broadcastFrame(sessionID, run)

	data, err := json.Marshal(framePayload{Alpha: run.engine.Alpha(), Frames: run.engine.Snapshot()})
	if err != nil {
		return
	}

	s.hub.BroadcastEvent(ws.EventLayoutIdle, sessionID, data)
}

func (s *LayoutService) broadcastFrame(sessionID string, run *layoutRun) {
	data, err := json.Marshal(framePayload{Alpha: run.engine.Alpha(), Frames: run.engine.Snapshot()})
	if err != nil {
		return
	}

	s.hub.BroadcastFrame(sessionID, data)
}
