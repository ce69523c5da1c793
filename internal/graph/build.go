// Package graph builds the working node/edge subset, detects
// communities over it, and runs the force-directed layout simulation.
package graph

import "github.com/goodneighborlab/goodneighbor/internal/models"

// Build filters the item list and edge set down to the working graph:
// the first nodeBudget items (in the given upstream order) become the
// visible node set, and only edges with both endpoints visible and a
// score at or above scoreThreshold survive. Degrees count retained
// incident edges. The result never contains a dangling edge.
//
// Every call is a full recomputation; layout continuity across rebuilds
// relies on stable node ids, not on this function.
func Build(items []models.Item, edges []models.NeighborEdge, nodeBudget int, scoreThreshold float64) models.BuildResult {
	if nodeBudget > len(items) || nodeBudget < 0 {
		nodeBudget = len(items)
	}

	visible := make(map[string]int, nodeBudget)
	nodes := make([]models.GraphNode, 0, nodeBudget)

	for i := 0; i < nodeBudget; i++ {
		it := &items[i]
		if _, dup := visible[it.ID]; dup {
			continue
		}

		visible[it.ID] = len(nodes)
		nodes = append(nodes, models.GraphNode{
			ID:    it.ID,
			Title: it.DisplayTitle(),
		})
	}

	kept := make([]models.GraphEdge, 0, len(edges))

	for _, e := range edges {
		if e.Score < scoreThreshold {
			continue
		}

		si, sok := visible[e.Source]
		ti, tok := visible[e.Target]
		if !sok || !tok {
			continue
		}

		kept = append(kept, models.GraphEdge{
			Source: e.Source,
			Target: e.Target,
			Score:  e.Score,
			Weight: e.Score,
		})

		nodes[si].Degree++
		nodes[ti].Degree++
	}

	return models.BuildResult{Nodes: nodes, Edges: kept}
}
