// Package middleware carries the request plumbing shared by every route:
// request IDs, structured request logs, CORS, and panic recovery.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestId"

// RequestID attaches a request ID to the context and response header. An ID
// supplied by the client on X-Request-Id is kept so callers can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) (id string) {
	if c == nil {
		return id
	}
	val, _ := c.Get(requestIDKey)
	if s, ok := val.(string); ok {
		id = s
	}
	return id
}
