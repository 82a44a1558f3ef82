package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/pkg/response"
)

func limiterRouter(l *ClientLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(l.Middleware())
	router.POST("/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func postFrom(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", nil)
	req.RemoteAddr = ip + ":12345"
	router.ServeHTTP(w, req)
	return w
}

func TestClientLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewClientLimiter(&config.RateLimitConfig{AuthRPS: 10, AuthBurst: 10})
	router := limiterRouter(l)

	if w := postFrom(router, "192.168.1.1"); w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestClientLimiter_BlocksOverBurst(t *testing.T) {
	l := NewClientLimiter(&config.RateLimitConfig{AuthRPS: 1, AuthBurst: 2, IdleTTLMinutes: 1})
	router := limiterRouter(l)

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = postFrom(router, "10.0.0.1")
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d after burst exceeded, got %d", http.StatusTooManyRequests, last.Code)
	}

	var resp response.Response
	if err := json.Unmarshal(last.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Code != http.StatusTooManyRequests {
		t.Errorf("envelope code = %d, expected 429", resp.Code)
	}
}

func TestClientLimiter_SeparateBucketsPerIP(t *testing.T) {
	l := NewClientLimiter(&config.RateLimitConfig{AuthRPS: 1, AuthBurst: 1})
	router := limiterRouter(l)

	// Exhaust the first IP's burst
	postFrom(router, "10.0.0.2")

	// A different IP still has its own burst available
	if w := postFrom(router, "10.0.0.3"); w.Code != http.StatusOK {
		t.Errorf("second IP should not be limited, got %d", w.Code)
	}
}

func TestClientLimiter_ConfigDefaults(t *testing.T) {
	l := NewClientLimiter(nil)
	if l.limit != defaultAuthRPS || l.burst != defaultAuthBurst || l.idleTTL != defaultIdleTTL {
		t.Errorf("defaults not applied: %v/%d/%v", l.limit, l.burst, l.idleTTL)
	}

	l = NewClientLimiter(&config.RateLimitConfig{AuthRPS: 2, AuthBurst: 4, IdleTTLMinutes: 10})
	if l.limit != 2 || l.burst != 4 || l.idleTTL != 10*time.Minute {
		t.Errorf("config not applied: %v/%d/%v", l.limit, l.burst, l.idleTTL)
	}
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	l := NewClientLimiter(&config.RateLimitConfig{AuthRPS: 1, AuthBurst: 1, IdleTTLMinutes: 1})

	l.allow("10.0.0.4")
	l.allow("10.0.0.5")

	l.evictIdle(time.Now().Add(2 * time.Minute))

	l.mu.Lock()
	remaining := len(l.clients)
	l.mu.Unlock()
	if remaining != 0 {
		t.Errorf("idle clients not evicted, %d remain", remaining)
	}
}
