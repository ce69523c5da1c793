package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns a fresh server-side UUID to every request. Unlike the
// session ID, a client-supplied X-Request-ID is never adopted; it is kept
// in the log fields so a browser trace can still be correlated.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			c.Set("client_request_id", clientID)
			log.WithFields(logrus.Fields{
				"request_id":        id,
				"client_request_id": clientID,
			}).Debug("correlating client request id")
		}

		c.Next()
	}
}
