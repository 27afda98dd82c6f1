package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// traceIDKey is the context key the response envelope reads the request's
// trace id from; traceIDHeader echoes it back to the caller.
const (
	traceIDKey    = "trace_id"
	traceIDHeader = "X-Trace-ID"
)

func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()
		c.Set(traceIDKey, traceID)
		c.Writer.Header().Set(traceIDHeader, traceID)
		c.Next()
	}
}
