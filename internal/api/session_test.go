package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/goodneighborlab/goodneighbor/internal/middleware"
)

func TestSession_AssignsIDWhenMissing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/session", "", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if _, err := uuid.Parse(w.Header().Get(middleware.SessionIDHeader)); err != nil {
		t.Errorf("assigned session id %q is not a UUID", w.Header().Get(middleware.SessionIDHeader))
	}
}

func TestSession_ViewAppearsInSnapshot(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	w := env.do(t, http.MethodPost, "/api/v1/session/views/A", sid, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d, want 200", w.Code)
	}

	var resp struct {
		Record struct {
			Views     []string `json:"views"`
			Bookmarks []string `json:"bookmarks"`
		} `json:"record"`
	}

	env.do(t, http.MethodGet, "/api/v1/session", sid, "", &resp)

	if len(resp.Record.Views) != 1 || resp.Record.Views[0] != "A" {
		t.Errorf("views = %v, want [A]", resp.Record.Views)
	}
}

func TestSession_ViewUnknownItem(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/session/views/nope", uuid.New().String(), "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSession_BookmarkToggle(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	var resp struct {
		Bookmarked bool `json:"bookmarked"`
	}

	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/A", sid, "", &resp)
	if !resp.Bookmarked {
		t.Error("first toggle should bookmark")
	}

	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/A", sid, "", &resp)
	if resp.Bookmarked {
		t.Error("second toggle should unbookmark")
	}
}

func TestSession_Reset(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/session/views/A", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/B", sid, "", nil)

	w := env.do(t, http.MethodDelete, "/api/v1/session", sid, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", w.Code)
	}

	var resp struct {
		Record struct {
			Views     []string `json:"views"`
			Bookmarks []string `json:"bookmarks"`
		} `json:"record"`
	}

	env.do(t, http.MethodGet, "/api/v1/session", sid, "", &resp)

	if len(resp.Record.Views) != 0 || len(resp.Record.Bookmarks) != 0 {
		t.Errorf("record after reset = %+v, want empty", resp.Record)
	}
}

func TestSession_SimilarityPairs(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/A", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/session/bookmarks/C", sid, "", nil)

	var resp struct {
		Pairs []struct {
			Source string  `json:"source"`
			Target string  `json:"target"`
			SUser  float64 `json:"s_user"`
		} `json:"pairs"`
	}

	env.do(t, http.MethodGet, "/api/v1/session/similarity", sid, "", &resp)

	if len(resp.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(resp.Pairs))
	}

	p := resp.Pairs[0]
	if p.Source != "A" || p.Target != "C" || p.SUser <= 0 {
		t.Errorf("pair = %+v, want A-C with positive score", p)
	}
}

func TestSession_IsolatedBetweenSessions(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/session/views/A", uuid.New().String(), "", nil)

	var resp struct {
		Record struct {
			Views []string `json:"views"`
		} `json:"record"`
	}

	env.do(t, http.MethodGet, "/api/v1/session", uuid.New().String(), "", &resp)

	if len(resp.Record.Views) != 0 {
		t.Errorf("fresh session sees views %v, want none", resp.Record.Views)
	}
}
