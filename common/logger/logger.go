package logger

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance
	Log = zap.NewNop()
)

// RequestIDKey is the key used to store the request ID on the gin context
const RequestIDKey = "request_id"

type requestIDKey struct{}

// Initialize builds the global logger for env. "production" selects JSON
// output; anything else the colored development console. Each extra sink
// (e.g. a CloudWatch Logs writer) receives the same entries JSON-encoded.
func Initialize(env string, sinks ...io.Writer) (*zap.Logger, error) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := config.Build()
	if err != nil {
		return nil, err
	}

	if len(sinks) > 0 {
		jsonConfig := config.EncoderConfig
		jsonConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cores := []zapcore.Core{base.Core()}
		for _, w := range sinks {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(jsonConfig),
				zapcore.AddSync(w),
				config.Level,
			))
		}
		base = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	Log = base
	zap.ReplaceGlobals(base)
	return base, nil
}

// Sync flushes the global logger.
func Sync() {
	_ = Log.Sync()
}

// FromContext returns log annotated with the request ID carried by ctx.
func FromContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	if log == nil {
		log = Log
	}
	return log.With(zap.String("request_id", RequestID(ctx)))
}

// RequestID extracts the request ID from a gin context or a request context.
func RequestID(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if rid := ginCtx.GetString(RequestIDKey); rid != "" {
			return rid
		}
		ctx = ginCtx.Request.Context()
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return "unknown"
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
