package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rumonkh0/quizbackend/internal/infra/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID threads a correlation identifier through the request context and
// the response header. Caller-supplied identifiers are honored only when they
// parse as UUIDs; anything else is replaced, so log fields stay well-formed.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, reqID)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey{}, reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
