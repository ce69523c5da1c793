package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// LoadFiles reads the item list and neighbor map produced by the offline
// pipeline and loads them into the store. The neighbor file may use any
// of the accepted shapes; an unreadable or malformed neighbor file
// degrades to an empty edge set rather than failing the load.
func (s *Store) LoadFiles(itemsPath, neighborsPath string) error {
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
			s.log.WithError(err).Warn("neighbors file unreadable, loading without edges")
		} else {
			edges = NormalizeEdges(edgeData)
		}
	}

	s.Load(items, edges)

	return nil
}
