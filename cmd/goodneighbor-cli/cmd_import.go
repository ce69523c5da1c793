package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goodneighborlab/goodneighbor/internal/catalog"
	"github.com/goodneighborlab/goodneighbor/internal/catalog/migrations"
	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// newImportCmd loads harvest output into the catalog database directly,
// bypassing the API. Run it wherever the database is reachable, then hit
// the server's dataset reload endpoint.
func newImportCmd() *cobra.Command {
	var itemsPath, neighborsPath, databaseURL string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import harvest JSON files into the catalog database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			if itemsPath == "" {
				return fmt.Errorf("--items is required")
			}
			return runImport(cmd.Context(), itemsPath, neighborsPath, databaseURL)
		},
	}
	cmd.Flags().StringVar(&itemsPath, "items", "", "Path to the items JSON file")
	cmd.Flags().StringVar(&neighborsPath, "neighbors", "", "Path to the neighbors JSON file")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Catalog database URL (env: DATABASE_URL)")
	return cmd
}

func runImport(ctx context.Context, itemsPath, neighborsPath, databaseURL string) error {
	itemData, err := os.ReadFile(itemsPath)
	if err != nil {
		return fmt.Errorf("reading items file: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal(itemData, &items); err != nil {
		return fmt.Errorf("parsing items file: %w", err)
	}

	var edges []models.NeighborEdge
	if neighborsPath != "" {
		edgeData, err := os.ReadFile(neighborsPath)
		if err != nil {
			return fmt.Errorf("reading neighbors file: %w", err)
		}
		edges = dataset.NormalizeEdges(edgeData)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	pool, err := dbpool.NewPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := catalog.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	store := catalog.NewStore(pool, log)

	nItems, err := store.ImportItems(ctx, items)
	if err != nil {
		return err
	}

	nEdges, err := store.ImportEdges(ctx, edges)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d items, %d edges\n", nItems, nEdges)
	return nil
}
