// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// ErrorBody is the JSON shape of every error response the API emits.
// The client SDK decodes the same struct, so the two sides stay in sync.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondError writes a standardized JSON error response and aborts the request.
func RespondError(c *gin.Context, status int, code, message string) {
	body := ErrorBody{Code: code, Message: message}
	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok {
			body.RequestID = s
		}
	}

	c.AbortWithStatusJSON(status, body)
}
