package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/graph"
	"github.com/goodneighborlab/goodneighbor/internal/metrics"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// GraphDefaults are the tuning values applied when a build request leaves a
// knob unset.
type GraphDefaults struct {
	NodeBudget          int
	ScoreThreshold      float64
	Weights             models.Weights
	CommunityIterations int
}

// GraphService builds the session-scoped working graph: filter, budget,
// threshold, degree, and community assignment.
type GraphService struct {
	data     *DatasetService
	tracker  *InteractionService
	defaults GraphDefaults
	log      *logrus.Logger

	mu   sync.Mutex
	last map[string]*BuildOutcome
}

// NewGraphService creates a GraphService.
func NewGraphService(data *DatasetService, tracker *InteractionService, defaults GraphDefaults, log *logrus.Logger) *GraphService {
	return &GraphService{
		data:     data,
		tracker:  tracker,
		defaults: defaults,
		log:      log,
		last:     make(map[string]*BuildOutcome),
	}
}

// BuildOutcome is a built graph plus its community count.
type BuildOutcome struct {
	Result   models.BuildResult
	Clusters int
	Weights  models.Weights
}

// Build assembles a working graph for the session. Edge scores are recomposed
// under the request's weights and the session's interaction record before the
// threshold is applied, so weight changes reshape the visible graph. The
// previous build for the session is replaced wholesale by the caller.
func (s *GraphService) Build(ctx context.Context, sessionID string, req models.BuildGraphRequest) (*BuildOutcome, error) {
	if req.NodeBudget == 0 {
		req.NodeBudget = s.defaults.NodeBudget
	}

	if req.ScoreThreshold == 0 {
		req.ScoreThreshold = s.defaults.ScoreThreshold
	}

	weights := s.defaults.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := s.tracker.Snapshot(ctx, sessionID)

	items := s.data.Items(dataset.ItemFilter{
		Collection: req.Collection,
		Country:    req.Country,
		Query:      req.Query,
	})
	edges := s.data.ScoredEdges(weights, rec)

	result := graph.Build(items, edges, req.NodeBudget, req.ScoreThreshold)
	clusters := graph.AssignClusters(&result, graph.CommunityOptions{
		MaxIterations: s.defaults.CommunityIterations,
	})

	metrics.GraphBuilds.Inc()

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"nodes":      len(result.Nodes),
		"edges":      len(result.Edges),
		"clusters":   clusters,
	}).Info("graph built")

	out := &BuildOutcome{Result: result, Clusters: clusters, Weights: weights}

	s.mu.Lock()
	s.last[sessionID] = out
	s.mu.Unlock()

	return out, nil
}

// Last returns the session's most recent build.
func (s *GraphService) Last(sessionID string) (*BuildOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, ok := s.last[sessionID]
	if !ok {
		return nil, models.ErrNoGraph
	}

	return out, nil
}

// ClusterCounts returns the cluster count of every session's last build.
// Used by the stats endpoint.
func (s *GraphService) ClusterCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(s.last))
	for id, out := range s.last {
		counts[id] = out.Clusters
	}

	return counts
}
