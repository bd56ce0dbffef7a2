package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"instafolio/pkg/server/respond"
)

// Recovery recovers from panics and returns a standardized error response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", RequestIDFromContext(c)).
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "unexpected server error", nil)
			}
		}()
		c.Next()
	}
}
