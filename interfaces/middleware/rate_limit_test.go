package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comment-insights/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCounter struct {
	count   int64
	err     error
	lastKey string
}

func (s *stubCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.lastKey = key
	return s.count, s.err
}

func performRequest(counter middleware.Counter, setUser bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if setUser {
		router.Use(func(ctx *gin.Context) {
			ctx.Set("user_id", "user-1")
		})
	}
	router.Use(middleware.RateLimit(counter))
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	t.Run("passes requests under the limit", func(t *testing.T) {
		counter := &stubCounter{count: 1}
		w := performRequest(counter, true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user:user-1", counter.lastKey)
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		counter := &stubCounter{count: 101}
		w := performRequest(counter, true)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "rate limit exceeded")
	})

	t.Run("falls back to the client ip without a user", func(t *testing.T) {
		counter := &stubCounter{count: 1}
		w := performRequest(counter, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, counter.lastKey, "ip:")
	})

	t.Run("fails open when the counter is down", func(t *testing.T) {
		counter := &stubCounter{err: errors.New("redis unavailable")}
		w := performRequest(counter, true)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
