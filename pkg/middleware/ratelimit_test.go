package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/marketplace/pkg/config"
	"github.com/wyfcoding/marketplace/pkg/ratelimit"
)

type fakeLimiter struct {
	keys    []string
	allowed bool
	err     error
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit ratelimit.Limit) (*ratelimit.Result, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return &ratelimit.Result{Allowed: f.allowed, Remaining: 1}, nil
}

func newLimitedEngine(limiter ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimitMiddleware(limiter, config.RateLimitConfig{Enabled: true, QPS: 10, Burst: 20}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func TestRateLimitKeyedByUser(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	engine := newLimitedEngine(limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?user_id=u1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "ratelimit:catalog:u1" {
		t.Errorf("keys = %v, want user-scoped key", limiter.keys)
	}
}

func TestRateLimitAnonymousKeyedByIP(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	engine := newLimitedEngine(limiter)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	engine.ServeHTTP(w, req)
	if len(limiter.keys) != 1 || limiter.keys[0] != "ratelimit:catalog:10.1.2.3" {
		t.Errorf("keys = %v, want ip-scoped key", limiter.keys)
	}
}

func TestRateLimitRejects(t *testing.T) {
	engine := newLimitedEngine(&fakeLimiter{allowed: false})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	engine := newLimitedEngine(&fakeLimiter{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when limiter is unavailable", w.Code)
	}
}
