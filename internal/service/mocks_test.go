package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/session"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// capturedEvent is one broadcast recorded by captureHub.
type capturedEvent struct {
	Type      string
	SessionID string
	Data      json.RawMessage
}

// captureHub records broadcasts instead of delivering them.
type captureHub struct {
	mu     sync.Mutex
	events []capturedEvent
	frames int
}

func (h *captureHub) BroadcastEvent(eventType, sessionID string, data json.RawMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, capturedEvent{Type: eventType, SessionID: sessionID, Data: data})
}

func (h *captureHub) BroadcastFrame(sessionID string, data json.RawMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frames++
	h.events = append(h.events, capturedEvent{Type: "frame", SessionID: sessionID, Data: data})
}

func (h *captureHub) eventsOfType(eventType string) []capturedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []capturedEvent

	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}

	return out
}

func (h *captureHub) frameCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.frames
}

// fakeCatalog serves a fixed dataset as a CatalogSource.
type fakeCatalog struct {
	items []models.Item
	edges []models.NeighborEdge
	err   error
}

func (f *fakeCatalog) Items(context.Context) ([]models.Item, error) {
	return f.items, f.err
}

func (f *fakeCatalog) Edges(context.Context) ([]models.NeighborEdge, error) {
	return f.edges, f.err
}

func testItem(id string) models.Item {
	return models.Item{ID: id, Title: models.FlexList{"Item " + id}}
}

func testEdge(source, target string, score, sText, sDate, sPlace float64) models.NeighborEdge {
	return models.NeighborEdge{
		Source: source,
		Target: target,
		Score:  score,
		SText:  sText,
		SDate:  sDate,
		SPlace: sPlace,
	}
}

// newTestStack wires a dataset, session manager, and interaction service over
// in-memory stores.
func newTestStack(items []models.Item, edges []models.NeighborEdge) (*DatasetService, *InteractionService) {
	log := testLogger()

	store := dataset.NewStore(log)
	store.Load(items, edges)

	data := NewDatasetService(store, nil, log)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), time.Hour, log)

	return data, NewInteractionService(sessions, data, log)
}
