package service

import (
	"context"
	"errors"
	"testing"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func TestDatasetService_NeighborsRecomposesUnderWeights(t *testing.T) {
	items := []models.Item{testItem("A"), testItem("B"), testItem("C")}
	edges := []models.NeighborEdge{
		testEdge("A", "B", 0.5, 1.0, 0, 0), // pure text match
		testEdge("A", "C", 0.5, 0, 1.0, 0), // pure date match
	}

	data, _ := newTestStack(items, edges)

	textFirst, err := data.Neighbors("A", models.Weights{Text: 1}, models.NewInteractionRecord())
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	if textFirst[0].Item.ID != "B" || textFirst[0].Score != 1.0 {
		t.Errorf("text-weighted first neighbor = %s (%v), want B (1.0)",
			textFirst[0].Item.ID, textFirst[0].Score)
	}

	dateFirst, err := data.Neighbors("A", models.Weights{Date: 1}, models.NewInteractionRecord())
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	if dateFirst[0].Item.ID != "C" {
		t.Errorf("date-weighted first neighbor = %s, want C", dateFirst[0].Item.ID)
	}
}

func TestDatasetService_NeighborsUsesInteractionRecord(t *testing.T) {
	items := []models.Item{testItem("A"), testItem("B"), testItem("C")}
	edges := []models.NeighborEdge{
		testEdge("A", "B", 0.5, 0, 0, 0),
		testEdge("A", "C", 0.5, 0, 0, 0),
	}

	data, tracker := newTestStack(items, edges)
	ctx := context.Background()

	// Co-bookmarking A and C makes that pair the strongest user signal.
	if _, err := tracker.ToggleBookmark(ctx, "s1", "A"); err != nil {
		t.Fatalf("ToggleBookmark(A) error = %v", err)
	}

	if _, err := tracker.ToggleBookmark(ctx, "s1", "C"); err != nil {
		t.Fatalf("ToggleBookmark(C) error = %v", err)
	}

	neighbors, err := data.Neighbors("A", models.Weights{User: 1}, tracker.Snapshot(ctx, "s1"))
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	if neighbors[0].Item.ID != "C" || neighbors[0].Score <= 0 {
		t.Errorf("user-weighted first neighbor = %s (%v), want C with positive score",
			neighbors[0].Item.ID, neighbors[0].Score)
	}

	if neighbors[1].Score != 0 {
		t.Errorf("non-interacted neighbor score = %v, want 0", neighbors[1].Score)
	}
}

func TestDatasetService_NeighborsUnknownItem(t *testing.T) {
	data, _ := newTestStack([]models.Item{testItem("A")}, nil)

	_, err := data.Neighbors("nope", models.DefaultWeights(), models.NewInteractionRecord())
	if !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("error = %v, want ErrItemNotFound", err)
	}
}

func TestDatasetService_LoadFromCatalog(t *testing.T) {
	log := testLogger()
	store := dataset.NewStore(log)

	catalog := &fakeCatalog{
		items: []models.Item{testItem("A"), testItem("B")},
		edges: []models.NeighborEdge{testEdge("A", "B", 0.7, 0.7, 0, 0)},
	}

	data := NewDatasetService(store, catalog, log)

	if err := data.LoadFromCatalog(context.Background()); err != nil {
		t.Fatalf("LoadFromCatalog() error = %v", err)
	}

	itemCount, edgeCount := data.Counts()
	if itemCount != 2 || edgeCount != 1 {
		t.Errorf("counts = %d items / %d edges, want 2 / 1", itemCount, edgeCount)
	}
}

func TestDatasetService_LoadFromCatalogWithoutCatalog(t *testing.T) {
	data := NewDatasetService(dataset.NewStore(testLogger()), nil, testLogger())

	err := data.LoadFromCatalog(context.Background())
	if !errors.Is(err, models.ErrDatasetUnavailable) {
		t.Errorf("error = %v, want ErrDatasetUnavailable", err)
	}
}

func TestDatasetService_LoadFromCatalogError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	data := NewDatasetService(dataset.NewStore(testLogger()), catalog, testLogger())

	if err := data.LoadFromCatalog(context.Background()); err == nil {
		t.Error("LoadFromCatalog() succeeded, want error")
	}
}
