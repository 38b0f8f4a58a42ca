package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/common/logger"
	"storefront-service/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := do(r, http.MethodGet, "/", nil)

	rid := w.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err)
	assert.Equal(t, rid, seen)
}

func TestRequestID_Propagated(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/", map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORS_PreflightEchoesOrigin(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.POST("/api/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := do(r, http.MethodOptions, "/api/orders", map[string]string{
		"Origin":                        "https://shop.example.com",
		"Access-Control-Request-Method": "POST",
	})

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.NotEqual(t, "*", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS_PreflightEchoesRequestedHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.POST("/api/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := do(r, http.MethodOptions, "/api/orders", map[string]string{
		"Origin":                         "https://shop.example.com",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "content-type,x-cart-token",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "content-type,x-cart-token", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_SimpleRequest(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/", map[string]string{"Origin": "http://localhost:5173"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)

	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"detail"`)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(0))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(1), 1, time.Nanosecond)
	rl.GetLimiter("10.0.0.1")
	require.Equal(t, 1, rl.Len())

	time.Sleep(time.Millisecond)
	rl.Cleanup()
	assert.Equal(t, 0, rl.Len())
}

func TestTimeout_SetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Timeout(time.Second))
	var hasDeadline bool
	r.GET("/", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	do(r, http.MethodGet, "/", nil)
	assert.True(t, hasDeadline)
}

func TestMetrics_NilClientPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Metrics(nil, "storefront-service"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	assert.Equal(t, http.StatusTeapot, do(r, http.MethodGet, "/", nil).Code)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	do(r, http.MethodGet, "/ok", nil)
	do(r, http.MethodGet, "/missing", nil)
	do(r, http.MethodGet, "/broken", nil)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
