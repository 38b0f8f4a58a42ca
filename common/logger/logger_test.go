package logger_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestInitialize_TeesToSink(t *testing.T) {
	var sink bytes.Buffer
	log, err := logger.Initialize("production", &sink)
	require.NoError(t, err)

	log.Info("hello sink")
	assert.Contains(t, sink.String(), `"msg":"hello sink"`)
	assert.Same(t, log, logger.Log)
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "unknown", logger.RequestID(context.Background()))

	ctx := logger.WithRequestID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", logger.RequestID(ctx))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(logger.RequestIDKey, "from-gin")
	assert.Equal(t, "from-gin", logger.RequestID(c))
}

func TestFromContext_AttachesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.WithRequestID(context.Background(), "req-9")

	logger.FromContext(ctx, zap.New(core)).Info("order placed")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
}
