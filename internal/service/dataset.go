// Package service provides business logic between API handlers and the
// dataset, session, and layout layers.
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/metrics"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/similarity"
)

// CatalogSource loads the dataset from the Postgres catalog.
type CatalogSource interface {
	Items(ctx context.Context) ([]models.Item, error)
	Edges(ctx context.Context) ([]models.NeighborEdge, error)
}

// DatasetService owns the in-memory dataset and per-request scoring.
type DatasetService struct {
	store   *dataset.Store
	catalog CatalogSource
	log     *logrus.Logger
}

// NewDatasetService creates a DatasetService. catalog may be nil when the
// dataset is file-sourced.
func NewDatasetService(store *dataset.Store, catalog CatalogSource, log *logrus.Logger) *DatasetService {
	return &DatasetService{store: store, catalog: catalog, log: log}
}

// LoadFromFiles loads the dataset from the harvest pipeline's JSON output.
func (s *DatasetService) LoadFromFiles(itemsPath, neighborsPath string) error {
	if err := s.store.LoadFiles(itemsPath, neighborsPath); err != nil {
		return fmt.Errorf("loading dataset files: %w", err)
	}

	s.observeLoad()

	return nil
}

// LoadFromCatalog loads the dataset from the Postgres catalog.
func (s *DatasetService) LoadFromCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return models.ErrDatasetUnavailable
	}

	items, err := s.catalog.Items(ctx)
	if err != nil {
		return fmt.Errorf("loading items from catalog: %w", err)
	}

	edges, err := s.catalog.Edges(ctx)
	if err != nil {
		return fmt.Errorf("loading edges from catalog: %w", err)
	}

	s.store.Load(items, edges)
	s.observeLoad()

	return nil
}

func (s *DatasetService) observeLoad() {
	metrics.DatasetItems.Set(float64(s.store.Len()))
	metrics.DatasetEdges.Set(float64(s.store.EdgeCount()))

	s.log.WithFields(logrus.Fields{
		"items": s.store.Len(),
		"edges": s.store.EdgeCount(),
	}).Info("dataset loaded")
}

// Items returns the items matching the filter, in import order.
func (s *DatasetService) Items(filter dataset.ItemFilter) []models.Item {
	return s.store.Items(filter)
}

// Item returns a single item by ID.
func (s *DatasetService) Item(id string) (models.Item, error) {
	item, ok := s.store.ByID(id)
	if !ok {
		return models.Item{}, models.ErrItemNotFound
	}

	return item, nil
}

// Counts returns the loaded item and edge counts.
func (s *DatasetService) Counts() (items, edges int) {
	return s.store.Len(), s.store.EdgeCount()
}

// Neighbors returns the neighbors of an item scored under the given weights
// and the session's interaction record, sorted by composite score descending.
func (s *DatasetService) Neighbors(id string, weights models.Weights, rec *models.InteractionRecord) ([]models.ScoredNeighbor, error) {
	if _, ok := s.store.ByID(id); !ok {
		return nil, models.ErrItemNotFound
	}

	userScores := similarity.DeriveUser(rec)
	neighbors := s.store.NeighborsOf(id)

	for i := range neighbors {
		neighbors[i].Score = similarity.ComposeEdge(neighbors[i].Edge, weights, userScores)
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}

		return neighbors[i].Item.ID < neighbors[j].Item.ID
	})

	return neighbors, nil
}

// ScoredEdges returns every dataset edge recomposed under the given weights
// and interaction record. Used by the graph builder so the visible graph
// reflects the caller's current weight mix.
func (s *DatasetService) ScoredEdges(weights models.Weights, rec *models.InteractionRecord) []models.NeighborEdge {
	userScores := similarity.DeriveUser(rec)
	edges := s.store.Edges()

	for i := range edges {
		edges[i].Score = similarity.ComposeEdge(edges[i], weights, userScores)
	}

	return edges
}
