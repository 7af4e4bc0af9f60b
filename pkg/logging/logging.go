package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process logger and installs it as the zap global, so
// packages can log through zap.S(). Unknown levels fall back to info.
func Init(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID tags the context so log lines from one request share an id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// For retrieves the global sugared logger, annotated with the context's
// request id when present.
func For(ctx context.Context) *zap.SugaredLogger {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return zap.S().With("request_id", reqID)
	}
	return zap.S()
}
