package dataset

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func newTestStore() *Store {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewStore(log)
}

func item(id string) models.Item {
	return models.Item{ID: id, Title: models.FlexList{"Title " + id}}
}

func TestStore_LoadReplacesDataset(t *testing.T) {
	s := newTestStore()
	s.Load([]models.Item{item("A"), item("B")}, []models.NeighborEdge{
		{Source: "A", Target: "B", Score: 0.5},
	})

	if s.Len() != 2 || s.EdgeCount() != 1 {
		t.Fatalf("got %d items / %d edges, want 2 / 1", s.Len(), s.EdgeCount())
	}

	s.Load([]models.Item{item("C")}, nil)

	if s.Len() != 1 || s.EdgeCount() != 0 {
		t.Fatalf("after reload: got %d items / %d edges, want 1 / 0", s.Len(), s.EdgeCount())
	}

	if _, ok := s.ByID("A"); ok {
		t.Error("item A should be gone after reload")
	}
}

func TestStore_LoadDropsInvalidItems(t *testing.T) {
	s := newTestStore()
	s.Load([]models.Item{item(""), item("A"), item("A")}, nil)

	if s.Len() != 1 {
		t.Fatalf("got %d items, want 1", s.Len())
	}
}

func TestStore_NeighborsOfSortedDescending(t *testing.T) {
	s := newTestStore()
	s.Load(
		[]models.Item{item("A"), item("B"), item("C"), item("D")},
		[]models.NeighborEdge{
			{Source: "A", Target: "B", Score: 0.2},
			{Source: "C", Target: "A", Score: 0.9},
			{Source: "A", Target: "D", Score: 0.5},
		},
	)

	got := s.NeighborsOf("A")
	if len(got) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(got))
	}

	wantOrder := []string{"C", "D", "B"}
	for i, w := range wantOrder {
		if got[i].Item.ID != w {
			t.Errorf("neighbor %d = %s, want %s", i, got[i].Item.ID, w)
		}
	}
}

func TestStore_NeighborsOfDropsUnresolvable(t *testing.T) {
	s := newTestStore()
	s.Load(
		[]models.Item{item("A"), item("B")},
		[]models.NeighborEdge{
			{Source: "A", Target: "B", Score: 0.4},
			{Source: "A", Target: "ghost", Score: 0.9},
		},
	)

	got := s.NeighborsOf("A")
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1 (ghost dropped)", len(got))
	}

	if got[0].Item.ID != "B" {
		t.Errorf("neighbor = %s, want B", got[0].Item.ID)
	}
}

func TestStore_NeighborsOfUnknownID(t *testing.T) {
	s := newTestStore()
	s.Load([]models.Item{item("A")}, nil)

	if got := s.NeighborsOf("nope"); len(got) != 0 {
		t.Errorf("got %d neighbors for unknown id, want 0", len(got))
	}
}

func TestStore_ItemsFilter(t *testing.T) {
	s := newTestStore()
	a := item("A")
	a.Collection = "maps"
	b := item("B")
	b.Collection = "art"
	b.Country = "Spain"
	s.Load([]models.Item{a, b}, nil)

	if got := s.Items(ItemFilter{Collection: "maps"}); len(got) != 1 || got[0].ID != "A" {
		t.Errorf("collection filter: got %+v", got)
	}

	if got := s.Items(ItemFilter{Country: "Spain"}); len(got) != 1 || got[0].ID != "B" {
		t.Errorf("country filter: got %+v", got)
	}

	if got := s.Items(ItemFilter{Query: "title b"}); len(got) != 1 || got[0].ID != "B" {
		t.Errorf("query filter: got %+v", got)
	}

	if got := s.Items(ItemFilter{}); len(got) != 2 {
		t.Errorf("empty filter: got %d items, want 2", len(got))
	}
}
