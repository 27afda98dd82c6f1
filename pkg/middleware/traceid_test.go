package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTraceIDMiddlewareTagsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	TraceIDMiddleware()(c)

	fromCtx, ok := c.Get(traceIDKey)
	if !ok || fromCtx == "" {
		t.Fatal("trace id missing from request context")
	}
	if got := w.Header().Get(traceIDHeader); got != fromCtx {
		t.Errorf("response header trace id %q does not match context value %v", got, fromCtx)
	}
}
