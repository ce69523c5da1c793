package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/config"
	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/service"
	"github.com/goodneighborlab/goodneighbor/internal/session"
	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "3040",
		ListenHost:     "127.0.0.1",
		CORSOrigins:    []string{"http://localhost:3002"},
		DatasetSource:  config.SourceFile,
		SessionTTL:     time.Hour,
		NodeBudget:     100,
		ScoreThreshold: 0.3,
		Weights:        models.DefaultWeights(),

		CommunityIterations: 40,
		LayoutTickRate:      60,
	}
}

func fixtureItems() []models.Item {
	return []models.Item{
		{ID: "A", Title: models.FlexList{"Harbor view"}, Collection: "maps", Country: "Netherlands", PlaceLabel: "Amsterdam"},
		{ID: "B", Title: models.FlexList{"Canal houses"}, Collection: "maps", Country: "Netherlands"},
		{ID: "C", Title: models.FlexList{"Windmill print"}, Collection: "prints", Country: "Belgium"},
	}
}

func fixtureEdges() []models.NeighborEdge {
	return []models.NeighborEdge{
		{Source: "A", Target: "B", Score: 0.8, SText: 0.8, SDate: 0.2, SPlace: 0.1},
		{Source: "A", Target: "C", Score: 0.5, SText: 0.3, SDate: 0.9, SPlace: 0.2},
	}
}

// testEnv wires a full router over in-memory stores.
type testEnv struct {
	router http.Handler
	layout *service.LayoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := testLogger()
	cfg := testConfig()

	store := dataset.NewStore(log)
	store.Load(fixtureItems(), fixtureEdges())

	data := service.NewDatasetService(store, nil, log)
	sessions := session.NewManager(session.NewMemoryStore(cfg.SessionTTL), cfg.SessionTTL, log)
	interactions := service.NewInteractionService(sessions, data, log)
	graphs := service.NewGraphService(data, interactions, service.GraphDefaults{
		NodeBudget:          cfg.NodeBudget,
		ScoreThreshold:      cfg.ScoreThreshold,
		Weights:             cfg.Weights,
		CommunityIterations: cfg.CommunityIterations,
	}, log)

	hub := ws.NewHub(log)
	layout := service.NewLayoutService(hub, interactions, cfg.LayoutTickRate, log)
	t.Cleanup(layout.StopAll)

	router := NewRouter(context.Background(), &RouterDeps{
		Log:          log,
		Cfg:          cfg,
		Hub:          hub,
		Data:         data,
		Loader:       data,
		Interactions: interactions,
		Graph:        graphs,
		Layout:       layout,
		Pointer:      layout,
		Sessions:     sessions,
		Version:      "test",
	})

	return &testEnv{router: router, layout: layout}
}

// do performs a request and decodes the JSON response body into out (when
// out is non-nil).
func (e *testEnv) do(t *testing.T, method, path, sessionID, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if sessionID != "" {
		req.Header.Set(middleware.SessionIDHeader, sessionID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding %s %s response: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}

	return w
}
