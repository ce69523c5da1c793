// Package dbpool provides PostgreSQL connection pool management.
package dbpool

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps a pgxpool.Pool. The underlying pool is unexported so callers go
// through the catalog's timeout-wrapped methods.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool creates a connection pool sized for the catalog workload: bulk
// reads at startup and reload, bulk writes during import, otherwise idle.
func NewPool(ctx context.Context, databaseURL string) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	// Imports replace whole tables in one transaction; give them room.
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "60000"

	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 10 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Query executes a query that returns rows.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// QueryRow executes a query that returns at most one row.
func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction.
func (p *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.pool.Begin(ctx)
}

// HealthCheck verifies database connectivity by executing a simple query.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var result int

	err := p.pool.QueryRow(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("health check query: %w", err)
	}

	return nil
}

// ConnString returns the connection string used to create the pool.
func (p *Pool) ConnString() string {
	return p.pool.Config().ConnString()
}

// Close closes the connection pool.
func (p *Pool) Close() {
	p.pool.Close()
}
