package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCooldownLimiter_Check(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewCooldownLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Check("k", time.Minute).Allowed)

	now = now.Add(20 * time.Second)
	res := l.Check("k", time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 40*time.Second, res.RetryAfter)

	// 其他 key 不受影响
	assert.True(t, l.Check("other", time.Minute).Allowed)

	now = now.Add(41 * time.Second)
	assert.True(t, l.Check("k", time.Minute).Allowed)
}

func TestCooldownLimiter_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewCooldownLimiter()
	l.now = func() time.Time { return now }

	l.Check("old", time.Minute)
	now = now.Add(2 * time.Hour)
	l.Check("fresh", time.Minute)

	assert.Equal(t, 1, l.Sweep(time.Hour))
	assert.True(t, l.Check("old", time.Minute).Allowed)
	assert.False(t, l.Check("fresh", time.Minute).Allowed)
}

func TestCooldown_Middleware(t *testing.T) {
	l := NewCooldownLimiter()
	r := gin.New()
	r.POST("/form", Cooldown(l, ScopeInquiry, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200})
	})
	r.POST("/free", Cooldown(l, ScopeInquiry, 0), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200})
	})

	do := func(path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("/form", "10.0.0.1").Code)
	w := do("/form", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "retry_after")

	assert.Equal(t, http.StatusOK, do("/form", "10.0.0.2").Code)
	assert.Equal(t, http.StatusOK, do("/free", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("/free", "10.0.0.1").Code)
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "잠시 후 다시 시도해 주세요 (5초)", formatRetryMessage(4500*time.Millisecond))
	assert.Equal(t, "잠시 후 다시 시도해 주세요 (2분)", formatRetryMessage(2*time.Minute))
	assert.Equal(t, "잠시 후 다시 시도해 주세요 (1분 30초)", formatRetryMessage(90*time.Second))
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	entries := logs.FilterMessage("request").All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
}
