package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/foodgram/backend/internal/middleware"
)

func TestRateLimitMiddlewareNilLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var limiter *middleware.RateLimiter
	router := gin.New()
	router.POST("/write", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	// Without Redis the limiter is disabled rather than failing closed.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/write", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
