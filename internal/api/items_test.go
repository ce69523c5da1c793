package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestItems_List(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total   int  `json:"total"`
		HasMore bool `json:"has_more"`
	}

	w := env.do(t, http.MethodGet, "/api/v1/items", "", "", &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if resp.Total != 3 || len(resp.Items) != 3 || resp.HasMore {
		t.Errorf("got total=%d items=%d has_more=%v, want 3/3/false",
			resp.Total, len(resp.Items), resp.HasMore)
	}

	// Import order is preserved.
	if resp.Items[0].ID != "A" || resp.Items[2].ID != "C" {
		t.Errorf("items out of import order: %+v", resp.Items)
	}
}

func TestItems_ListFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total   int  `json:"total"`
		HasMore bool `json:"has_more"`
	}

	env.do(t, http.MethodGet, "/api/v1/items?collection=maps&limit=1", "", "", &resp)

	if resp.Total != 2 || len(resp.Items) != 1 || !resp.HasMore {
		t.Errorf("got total=%d items=%d has_more=%v, want 2/1/true",
			resp.Total, len(resp.Items), resp.HasMore)
	}

	env.do(t, http.MethodGet, "/api/v1/items?collection=maps&limit=1&offset=1", "", "", &resp)

	if len(resp.Items) != 1 || resp.Items[0].ID != "B" || resp.HasMore {
		t.Errorf("second page = %+v has_more=%v, want [B]/false", resp.Items, resp.HasMore)
	}
}

func TestItems_ListTextQuery(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}

	env.do(t, http.MethodGet, "/api/v1/items?q=windmill", "", "", &resp)

	if len(resp.Items) != 1 || resp.Items[0].ID != "C" {
		t.Errorf("query matched %+v, want only C", resp.Items)
	}
}

func TestItems_Get(t *testing.T) {
	env := newTestEnv(t)

	var item struct {
		ID         string `json:"id"`
		PlaceLabel string `json:"place_label"`
	}

	w := env.do(t, http.MethodGet, "/api/v1/items/A", "", "", &item)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if item.ID != "A" || item.PlaceLabel != "Amsterdam" {
		t.Errorf("item = %+v, want A in Amsterdam", item)
	}
}

func TestItems_GetNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/items/nope", "", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestItems_NeighborsDefaultWeights(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Neighbors []struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
			Score float64 `json:"score"`
		} `json:"neighbors"`
	}

	env.do(t, http.MethodGet, "/api/v1/items/A/neighbors", "", "", &resp)

	if len(resp.Neighbors) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(resp.Neighbors))
	}

	// Under 0.5/0.2/0.2/0.1 the text-heavy A-B edge outranks the
	// date-heavy A-C edge.
	if resp.Neighbors[0].Item.ID != "B" {
		t.Errorf("top neighbor = %s, want B", resp.Neighbors[0].Item.ID)
	}
}

func TestItems_NeighborsWeightOverride(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Neighbors []struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"neighbors"`
	}

	env.do(t, http.MethodGet, "/api/v1/items/A/neighbors?wtext=0&wdate=1&wplace=0&wuser=0", "", "", &resp)

	if len(resp.Neighbors) != 2 || resp.Neighbors[0].Item.ID != "C" {
		t.Errorf("date-weighted top neighbor = %+v, want C", resp.Neighbors)
	}
}

func TestItems_NeighborsUseSessionInteractions(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	// Co-bookmark A and C so the pair carries user similarity.
	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/A", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/C", sid, "", nil)

	var resp struct {
		Neighbors []struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
			Score float64 `json:"score"`
		} `json:"neighbors"`
	}

	env.do(t, http.MethodGet, "/api/v1/items/A/neighbors?wtext=0&wdate=0&wplace=0&wuser=1", sid, "", &resp)

	if resp.Neighbors[0].Item.ID != "C" || resp.Neighbors[0].Score <= 0 {
		t.Errorf("user-weighted top = %+v, want C with positive score", resp.Neighbors[0])
	}

	// A different session sees no user signal.
	env.do(t, http.MethodGet, "/api/v1/items/A/neighbors?wtext=0&wdate=0&wplace=0&wuser=1", uuid.New().String(), "", &resp)

	for _, n := range resp.Neighbors {
		if n.Score != 0 {
			t.Errorf("fresh session neighbor %s score = %v, want 0", n.Item.ID, n.Score)
		}
	}
}
