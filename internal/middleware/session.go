package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDKey is the gin context key for the session ID.
	SessionIDKey = "session_id"

	// SessionIDHeader carries the caller's session ID. Interaction state is
	// keyed by this value, so a client keeps it for the lifetime of a visit.
	SessionIDHeader = "X-Session-ID"
)

// SessionID resolves the caller's session. A well-formed client-provided ID is
// honored so a visit survives reconnects; anything else gets a fresh UUID. The
// resolved ID is echoed back so clients can adopt it.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Set(SessionIDKey, id)
		c.Header(SessionIDHeader, id)
		c.Next()
	}
}

// SessionFromContext returns the session ID resolved by SessionID.
func SessionFromContext(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
