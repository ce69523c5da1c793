package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goodneighborlab/goodneighbor/internal/middleware"
)

func sessionRouter(captured *string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.SessionID())
	r.GET("/test", func(c *gin.Context) {
		*captured = middleware.SessionFromContext(c)
		c.Status(http.StatusOK)
	})

	return r
}

func TestSessionID_AssignsFreshUUID(t *testing.T) {
	var got string
	r := sessionRouter(&got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("context session id %q is not a UUID: %v", got, err)
	}

	if echoed := w.Header().Get(middleware.SessionIDHeader); echoed != got {
		t.Errorf("echoed header %q != context id %q", echoed, got)
	}
}

func TestSessionID_HonorsWellFormedClientID(t *testing.T) {
	var got string
	r := sessionRouter(&got)

	id := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.SessionIDHeader, id)
	r.ServeHTTP(w, req)

	if got != id {
		t.Errorf("session id = %q, want client-provided %q", got, id)
	}
}

func TestSessionID_RejectsMalformedClientID(t *testing.T) {
	var got string
	r := sessionRouter(&got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.SessionIDHeader, "../../etc/passwd")
	r.ServeHTTP(w, req)

	if got == "../../etc/passwd" {
		t.Error("malformed client session id must be replaced")
	}

	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("replacement id %q is not a UUID: %v", got, err)
	}
}
