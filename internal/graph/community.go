package graph

import (
	"math/rand"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// DefaultCommunityIterations bounds label propagation when the partition
// does not converge earlier.
const DefaultCommunityIterations = 40

// CommunityOptions tunes community detection. The random source drives
// the per-iteration visit order; tests inject a seeded source for
// deterministic runs, production uses a time-seeded one and accepts
// different (equally valid) partitions across rebuilds.
type CommunityOptions struct {
	MaxIterations int
	Rand          *rand.Rand
}

// DetectCommunities runs synchronous weighted label propagation over the
// working graph and returns the final label per node id.
//
// Every node starts with its own id as label. Each iteration visits the
// nodes in shuffled order; a node adopts the label with the largest
// summed incident edge weight, ties broken by the lexicographically
// smaller label. Detection stops early on an iteration with zero label
// changes, otherwise at the iteration cap with the best-effort partition.
// Isolated nodes keep their own id.
func DetectCommunities(nodes []models.GraphNode, edges []models.GraphEdge, opts CommunityOptions) map[string]string {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultCommunityIterations
	}

	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // layout randomness, not crypto.
	}

	labels := make(map[string]string, len(nodes))
	for i := range nodes {
		labels[nodes[i].ID] = nodes[i].ID
	}

	// Incidence lists: node id -> (neighbor id, weight).
	adj := make(map[string][]incidence, len(nodes))
	for i := range edges {
		e := &edges[i]

		w := e.Weight
		if w <= 0 {
			w = e.Score
		}

		adj[e.Source] = append(adj[e.Source], incidence{neighbor: e.Target, weight: w})
		adj[e.Target] = append(adj[e.Target], incidence{neighbor: e.Source, weight: w})
	}

	order := make([]string, 0, len(nodes))
	for i := range nodes {
		order = append(order, nodes[i].ID)
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		opts.Rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		changes := 0

		for _, id := range order {
			best := dominantLabel(adj[id], labels)
			if best == "" {
				continue
			}

			if best != labels[id] {
				labels[id] = best
				changes++
			}
		}

		if changes == 0 {
			break
		}
	}

	return labels
}

// incidence is one weighted adjacency entry.
type incidence struct {
	neighbor string
	weight   float64
}

// dominantLabel sums incident weight per neighbor label and returns the
// heaviest one, preferring the lexicographically smaller label on ties.
func dominantLabel(incident []incidence, labels map[string]string) string {
	if len(incident) == 0 {
		return ""
	}

	totals := make(map[string]float64, len(incident))
	for _, in := range incident {
		totals[labels[in.neighbor]] += in.weight
	}

	best := ""
	bestWeight := 0.0

	for label, w := range totals {
		if w > bestWeight || (w == bestWeight && (best == "" || label < best)) {
			best = label
			bestWeight = w
		}
	}

	return best
}

// CompactLabels maps the raw labels to dense zero-based cluster indices
// in first-seen node order, the form the renderer colors by.
func CompactLabels(nodes []models.GraphNode, labels map[string]string) map[string]int {
	clusters := make(map[string]int, len(nodes))
	next := 0

	indexOf := map[string]int{}

	for i := range nodes {
		label := labels[nodes[i].ID]

		idx, ok := indexOf[label]
		if !ok {
			idx = next
			indexOf[label] = idx
			next++
		}

		clusters[nodes[i].ID] = idx
	}

	return clusters
}

// AssignClusters runs detection plus compaction and writes the cluster
// index onto each node, returning the number of distinct clusters.
func AssignClusters(result *models.BuildResult, opts CommunityOptions) int {
	labels := DetectCommunities(result.Nodes, result.Edges, opts)
	clusters := CompactLabels(result.Nodes, labels)

	max := -1

	for i := range result.Nodes {
		c := clusters[result.Nodes[i].ID]
		result.Nodes[i].Cluster = c

		if c > max {
			max = c
		}
	}

	return max + 1
}
