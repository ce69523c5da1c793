package api

import (
	"context"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/graph"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/service"
)

// DatasetReader is the dataset surface the item and stats handlers depend on.
type DatasetReader interface {
	Items(filter dataset.ItemFilter) []models.Item
	Item(id string) (models.Item, error)
	Neighbors(id string, weights models.Weights, rec *models.InteractionRecord) ([]models.ScoredNeighbor, error)
	Counts() (items, edges int)
}

// DatasetLoader reloads the dataset from its configured source.
type DatasetLoader interface {
	LoadFromFiles(itemsPath, neighborsPath string) error
	LoadFromCatalog(ctx context.Context) error
}

// InteractionAccess is the session interaction surface handlers depend on.
type InteractionAccess interface {
	TrackView(ctx context.Context, sessionID, itemID string) error
	ToggleBookmark(ctx context.Context, sessionID, itemID string) (bool, error)
	Snapshot(ctx context.Context, sessionID string) *models.InteractionRecord
	Reset(ctx context.Context, sessionID string)
}

// GraphBuilder builds and caches per-session working graphs.
type GraphBuilder interface {
	Build(ctx context.Context, sessionID string, req models.BuildGraphRequest) (*service.BuildOutcome, error)
	Last(sessionID string) (*service.BuildOutcome, error)
	ClusterCounts() map[string]int
}

// LayoutController drives per-session force simulations.
type LayoutController interface {
	Start(sessionID string, result models.BuildResult, width, height float64)
	Resize(sessionID string, req models.ResizeRequest) error
	Reheat(sessionID string) error
	Stop(sessionID string)
	Positions(sessionID string) ([]graph.Frame, error)
	Zoom(sessionID string, factor, px, py float64) (graph.TransformState, error)
	Pan(sessionID string, dx, dy float64) (graph.TransformState, error)
	ResetView(sessionID string) (graph.TransformState, error)
}
