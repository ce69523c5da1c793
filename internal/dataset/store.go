// Package dataset holds the in-memory similarity store: the loaded item
// list, the precomputed neighbor edges, and the id-indexed lookups the
// rest of the core resolves through.
//
// Edge endpoints are kept as string ids and resolved via the byID table
// on read; edge records never embed item references.
package dataset

import (
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// Store is the working dataset. Load replaces all state atomically;
// reads see either the old or the new dataset, never a mix.
type Store struct {
	mu    sync.RWMutex
	items []models.Item
	byID  map[string]int
	edges []models.NeighborEdge
	adj   map[string][]int // item id -> indices into edges
	log   *logrus.Logger
}

// NewStore creates an empty Store.
func NewStore(log *logrus.Logger) *Store {
	return &Store{
		byID: map[string]int{},
		adj:  map[string][]int{},
		log:  log,
	}
}

// Load replaces the working dataset with the given items and edges.
// Items missing an id are dropped; later duplicates of an id are ignored.
func (s *Store) Load(items []models.Item, edges []models.NeighborEdge) {
	byID := make(map[string]int, len(items))
	kept := make([]models.Item, 0, len(items))

	for _, it := range items {
		if it.ID == "" {
			continue
		}

		if _, dup := byID[it.ID]; dup {
			continue
		}

		byID[it.ID] = len(kept)
		kept = append(kept, it)
	}

	adj := make(map[string][]int, len(byID))
	for i, e := range edges {
		adj[e.Source] = append(adj[e.Source], i)
		adj[e.Target] = append(adj[e.Target], i)
	}

	s.mu.Lock()
	s.items = kept
	s.byID = byID
	s.edges = edges
	s.adj = adj
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"items": len(kept),
		"edges": len(edges),
	}).Info("dataset loaded")
}

// ByID returns the item with the given id.
func (s *Store) ByID(id string) (models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.Item{}, false
	}

	return s.items[i], true
}

// Len returns the number of loaded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// EdgeCount returns the number of loaded neighbor edges.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.edges)
}

// ItemFilter narrows the item listing. Zero values match everything.
type ItemFilter struct {
	Collection string
	Country    string
	Query      string
}

func (f *ItemFilter) match(it *models.Item) bool {
	if f.Collection != "" && it.Collection != f.Collection {
		return false
	}

	if f.Country != "" && it.Country != f.Country {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(it.DisplayTitle()), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) &&
			!strings.Contains(strings.ToLower(it.Concepts.Join()), q) {
			return false
		}
	}

	return true
}

// Items returns the matching items in bulk-import order. This order is
// the upstream ordering the graph builder's node budget truncates.
func (s *Store) Items(filter ItemFilter) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0, len(s.items))
	for i := range s.items {
		if filter.match(&s.items[i]) {
			out = append(out, s.items[i])
		}
	}

	return out
}

// Edges returns all loaded neighbor edges.
func (s *Store) Edges() []models.NeighborEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.NeighborEdge{}, s.edges...)
}

// NeighborsOf returns every edge touching id resolved to the other
// endpoint's item, sorted descending by precomputed score. Edges whose
// other endpoint cannot be resolved are dropped silently.
func (s *Store) NeighborsOf(id string) []models.ScoredNeighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indices := s.adj[id]
	out := make([]models.ScoredNeighbor, 0, len(indices))

	for _, ei := range indices {
		e := s.edges[ei]

		otherID, ok := e.Other(id)
		if !ok {
			continue
		}

		ii, ok := s.byID[otherID]
		if !ok {
			continue
		}

		out = append(out, models.ScoredNeighbor{
			Item:  s.items[ii],
			Edge:  e,
			Score: e.Score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
