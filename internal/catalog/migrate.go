// Migration runner using goose (github.com/pressly/goose/v3).
//
// Migration files live in internal/catalog/migrations/ and are embedded via
// //go:embed. On startup with a postgres dataset source, RunMigrations applies
// all pending migrations automatically.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
)

// RunMigrations applies all pending migrations from the provided filesystem.
// The fsys should contain goose-annotated SQL files (e.g. "0001_catalog.sql").
func RunMigrations(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger, fsys fs.FS) error {
	// goose requires a *sql.DB; wrap the pool's connection string via the pgx
	// stdlib driver.
	sqlDB, err := sql.Open("pgx", pool.ConnString())
	if err != nil {
		return fmt.Errorf("opening sql.DB for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}

		log.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"file":     r.Source.Path,
			"duration": r.Duration,
		}).Info("migration applied")
	}

	if len(results) == 0 {
		log.Debug("all migrations already applied")
	}

	return nil
}
