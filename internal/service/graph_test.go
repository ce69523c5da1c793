package service

import (
	"context"
	"testing"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func testGraphService(items []models.Item, edges []models.NeighborEdge) *GraphService {
	data, tracker := newTestStack(items, edges)

	return NewGraphService(data, tracker, GraphDefaults{
		NodeBudget:          100,
		ScoreThreshold:      0.5,
		Weights:             models.DefaultWeights(),
		CommunityIterations: 40,
	}, testLogger())
}

func TestGraphService_BuildAppliesDefaults(t *testing.T) {
	svc := testGraphService(
		[]models.Item{testItem("A"), testItem("B")},
		[]models.NeighborEdge{testEdge("A", "B", 0.9, 0.9, 0.9, 0.9)},
	)

	out, err := svc.Build(context.Background(), "s1", models.BuildGraphRequest{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(out.Result.Nodes) != 2 || len(out.Result.Edges) != 1 {
		t.Errorf("got %d nodes / %d edges, want 2 / 1",
			len(out.Result.Nodes), len(out.Result.Edges))
	}

	if out.Weights != models.DefaultWeights() {
		t.Errorf("weights = %+v, want defaults", out.Weights)
	}
}

func TestGraphService_WeightsReshapeGraph(t *testing.T) {
	// The A-B edge is a pure text match: it survives the threshold only
	// when text carries the weight.
	svc := testGraphService(
		[]models.Item{testItem("A"), testItem("B")},
		[]models.NeighborEdge{testEdge("A", "B", 0.9, 0.9, 0, 0)},
	)

	textHeavy, err := svc.Build(context.Background(), "s1", models.BuildGraphRequest{
		Weights: &models.Weights{Text: 1},
	})
	if err != nil {
		t.Fatalf("Build(text) error = %v", err)
	}

	if len(textHeavy.Result.Edges) != 1 {
		t.Errorf("text-weighted build kept %d edges, want 1", len(textHeavy.Result.Edges))
	}

	dateHeavy, err := svc.Build(context.Background(), "s1", models.BuildGraphRequest{
		Weights: &models.Weights{Date: 1},
	})
	if err != nil {
		t.Fatalf("Build(date) error = %v", err)
	}

	if len(dateHeavy.Result.Edges) != 0 {
		t.Errorf("date-weighted build kept %d edges, want 0", len(dateHeavy.Result.Edges))
	}
}

func TestGraphService_BuildAssignsClusters(t *testing.T) {
	svc := testGraphService(
		[]models.Item{testItem("A"), testItem("B"), testItem("C"), testItem("D")},
		[]models.NeighborEdge{
			testEdge("A", "B", 0.9, 0.9, 0.9, 0.9),
			testEdge("C", "D", 0.9, 0.9, 0.9, 0.9),
		},
	)

	out, err := svc.Build(context.Background(), "s1", models.BuildGraphRequest{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if out.Clusters != 2 {
		t.Errorf("clusters = %d, want 2", out.Clusters)
	}

	for _, n := range out.Result.Nodes {
		if n.Cluster < 0 || n.Cluster >= out.Clusters {
			t.Errorf("node %s cluster %d outside [0,%d)", n.ID, n.Cluster, out.Clusters)
		}
	}
}

func TestGraphService_BuildRejectsBadRequest(t *testing.T) {
	svc := testGraphService([]models.Item{testItem("A")}, nil)

	tests := []struct {
		name string
		req  models.BuildGraphRequest
	}{
		{"budget over cap", models.BuildGraphRequest{NodeBudget: models.MaxNodeBudget + 1}},
		{"threshold above one", models.BuildGraphRequest{ScoreThreshold: 1.5}},
		{"negative threshold", models.BuildGraphRequest{ScoreThreshold: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Build(context.Background(), "s1", tt.req); err == nil {
				t.Error("Build() succeeded, want validation error")
			}
		})
	}
}

func TestGraphService_BuildHonorsFilter(t *testing.T) {
	a := testItem("A")
	a.Collection = "maps"
	b := testItem("B")
	b.Collection = "prints"

	svc := testGraphService([]models.Item{a, b}, nil)

	out, err := svc.Build(context.Background(), "s1", models.BuildGraphRequest{Collection: "maps"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(out.Result.Nodes) != 1 || out.Result.Nodes[0].ID != "A" {
		t.Errorf("nodes = %+v, want only A", out.Result.Nodes)
	}
}
