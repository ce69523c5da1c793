// Package catalog provides the Postgres-backed dataset catalog.
//
// The offline harvest pipeline writes its items and neighbor edges into the
// catalog tables, and the service loads them wholesale at startup when
// configured with a postgres dataset source. The catalog is a loading and
// import layer only: per-request reads go through the in-memory dataset store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// Store is the catalog data access layer.
type Store struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// NewStore creates a catalog store over the given pool.
func NewStore(pool *dbpool.Pool, log *logrus.Logger) *Store {
	return &Store{Pool: pool, Log: log}
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// Items loads every catalog item in import order.
func (s *Store) Items(ctx context.Context) ([]models.Item, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT payload
		FROM items
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []models.Item

	for rows.Next() {
		var payload []byte

		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		var item models.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decoding item payload: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// Edges loads every neighbor edge in the catalog.
func (s *Store) Edges(ctx context.Context) ([]models.NeighborEdge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT source, target, score, s_text, s_date, s_place
		FROM neighbor_edges
	`)
	if err != nil {
		return nil, fmt.Errorf("querying neighbor edges: %w", err)
	}
	defer rows.Close()

	var edges []models.NeighborEdge

	for rows.Next() {
		var e models.NeighborEdge

		if err := rows.Scan(&e.Source, &e.Target, &e.Score, &e.SText, &e.SDate, &e.SPlace); err != nil {
			return nil, fmt.Errorf("scanning neighbor edge: %w", err)
		}

		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating neighbor edges: %w", err)
	}

	return edges, nil
}

// ImportItems replaces the item catalog with the given items, preserving their
// order. The swap is transactional so readers never see a partial catalog.
func (s *Store) ImportItems(ctx context.Context, items []models.Item) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning item import: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx, "DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clearing items: %w", err)
	}

	batch := &pgx.Batch{}

	for pos, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return 0, fmt.Errorf("encoding item %q: %w", item.ID, err)
		}

		batch.Queue(`
			INSERT INTO items (id, position, collection, country, payload)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				position   = EXCLUDED.position,
				collection = EXCLUDED.collection,
				country    = EXCLUDED.country,
				payload    = EXCLUDED.payload
		`, item.ID, pos, item.Collection, item.Country, payload)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("inserting items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing item import: %w", err)
	}

	return len(items), nil
}

// ImportEdges replaces the neighbor edge catalog with the given edges.
func (s *Store) ImportEdges(ctx context.Context, edges []models.NeighborEdge) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning edge import: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx, "DELETE FROM neighbor_edges"); err != nil {
		return 0, fmt.Errorf("clearing neighbor edges: %w", err)
	}

	batch := &pgx.Batch{}

	for _, e := range edges {
		batch.Queue(`
			INSERT INTO neighbor_edges (source, target, score, s_text, s_date, s_place)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (source, target) DO UPDATE SET
				score   = EXCLUDED.score,
				s_text  = EXCLUDED.s_text,
				s_date  = EXCLUDED.s_date,
				s_place = EXCLUDED.s_place
		`, e.Source, e.Target, e.Score, e.SText, e.SDate, e.SPlace)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("inserting neighbor edges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing edge import: %w", err)
	}

	return len(edges), nil
}

// Counts returns the item and edge counts in the catalog.
func (s *Store) Counts(ctx context.Context) (items, edges int, err error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err = s.Pool.QueryRow(ctx,
		"SELECT (SELECT count(*) FROM items), (SELECT count(*) FROM neighbor_edges)",
	).Scan(&items, &edges)
	if err != nil {
		return 0, 0, fmt.Errorf("counting catalog rows: %w", err)
	}

	return items, edges, nil
}
