package models

import (
	"fmt"
	"math"
)

// GraphNode is the immutable metadata for one node of the working graph.
// Physics state (position, velocity, pin) lives in the layout engine,
// joined by node index (see graph.Engine).
type GraphNode struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Degree  int    `json:"degree"`
	Cluster int    `json:"cluster"`
}

// GraphEdge is one retained edge of the working graph. Weight is the
// recomposed good-neighbor score under the request's weights; Score is
// the precomputed composite used for filtering.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// BuildResult is the filtered node/edge set consumed by community
// detection and layout. Rebuilds replace it wholesale.
type BuildResult struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// BuildGraphRequest is the payload for building a working graph.
type BuildGraphRequest struct {
	NodeBudget     int      `json:"node_budget"`
	ScoreThreshold float64  `json:"score_threshold"`
	Weights        *Weights `json:"weights,omitempty"`
	Collection     string   `json:"collection,omitempty"`
	Country        string   `json:"country,omitempty"`
	Query          string   `json:"q,omitempty"`
}

// Validate checks the build request bounds.
func (r *BuildGraphRequest) Validate() error {
	if r.NodeBudget < 0 {
		return fmt.Errorf("node_budget must be >= 0")
	}

	if r.NodeBudget > MaxNodeBudget {
		return fmt.Errorf("node_budget must be <= %d", MaxNodeBudget)
	}

	if r.ScoreThreshold < 0 || r.ScoreThreshold > 1 || math.IsNaN(r.ScoreThreshold) {
		return fmt.Errorf("score_threshold must be in [0,1]")
	}

	return nil
}

// MaxNodeBudget caps the number of visible nodes a single build may request.
const MaxNodeBudget = 2000

// ResizeRequest carries new viewport dimensions for the layout engine.
type ResizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate checks the resize request bounds.
func (r *ResizeRequest) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}

	if r.Width > 16384 || r.Height > 16384 {
		return fmt.Errorf("width and height must be <= 16384")
	}

	return nil
}
