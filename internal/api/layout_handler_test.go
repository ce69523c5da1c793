package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestLayout_StartRequiresBuild(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/graph/layout/start", uuid.New().String(), "", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestLayout_StartAfterBuild(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)

	var resp struct {
		SessionID string `json:"session_id"`
		Nodes     int    `json:"nodes"`
		Running   bool   `json:"running"`
	}

	w := env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid,
		`{"width":800,"height":600}`, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}

	if !resp.Running || resp.Nodes != 3 {
		t.Errorf("got running=%v nodes=%d, want true/3", resp.Running, resp.Nodes)
	}
}

func TestLayout_StartRejectsBadViewport(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)

	w := env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid,
		`{"width":-1,"height":600}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLayout_PositionsReturnFrames(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid, "", nil)

	var resp struct {
		Frames []struct {
			ID string `json:"id"`
		} `json:"frames"`
	}

	w := env.do(t, http.MethodGet, "/api/v1/graph/layout/positions", sid, "", &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if len(resp.Frames) != 3 {
		t.Errorf("got %d frames, want 3", len(resp.Frames))
	}
}

func TestLayout_ZoomPanReset(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid, "", nil)

	var state struct {
		Scale      float64 `json:"scale"`
		TranslateX float64 `json:"translate_x"`
	}

	env.do(t, http.MethodPost, "/api/v1/graph/layout/zoom", sid, `{"factor":2,"px":0,"py":0}`, &state)
	if state.Scale != 2 {
		t.Errorf("scale after zoom = %v, want 2", state.Scale)
	}

	env.do(t, http.MethodPost, "/api/v1/graph/layout/pan", sid, `{"dx":15,"dy":0}`, &state)
	if state.TranslateX != 15 {
		t.Errorf("translate_x after pan = %v, want 15", state.TranslateX)
	}

	env.do(t, http.MethodPost, "/api/v1/graph/layout/zoom/reset", sid, "", &state)
	if state.Scale != 1 || state.TranslateX != 0 {
		t.Errorf("state after reset = %+v, want identity", state)
	}
}

func TestLayout_ZoomRejectsNonPositiveFactor(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid, "", nil)

	w := env.do(t, http.MethodPost, "/api/v1/graph/layout/zoom", sid, `{"factor":0}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLayout_OpsWithoutLayoutConflict(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	paths := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/v1/graph/layout/reheat", ""},
		{http.MethodPost, "/api/v1/graph/layout/resize", `{"width":800,"height":600}`},
		{http.MethodGet, "/api/v1/graph/layout/positions", ""},
		{http.MethodPost, "/api/v1/graph/layout/zoom", `{"factor":2}`},
		{http.MethodPost, "/api/v1/graph/layout/pan", `{"dx":1,"dy":1}`},
	}

	for _, p := range paths {
		w := env.do(t, p.method, p.path, sid, p.body, nil)
		if w.Code != http.StatusConflict {
			t.Errorf("%s %s status = %d, want 409", p.method, p.path, w.Code)
		}
	}
}

func TestLayout_StopIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	sid := uuid.New().String()

	env.do(t, http.MethodPost, "/api/v1/graph/build", sid, "", nil)
	env.do(t, http.MethodPost, "/api/v1/graph/layout/start", sid, "", nil)

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/api/v1/graph/layout/stop", sid, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("stop #%d status = %d, want 200", i+1, w.Code)
		}
	}
}
