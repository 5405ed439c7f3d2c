package log

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

// CorrelationIDKey is the context key under which the per-request
// correlation ID is stored.
const CorrelationIDKey contextKey = "correlation_id"

// LoggerContextKey is the context key under which a request-scoped logger
// is stored by the router middleware.
const LoggerContextKey contextKey = "logger"

// Logger wraps slog.Logger so call sites depend on this package rather
// than on the logging backend directly.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a JSON logger writing to stdout. The minimum level is
// taken from LOG_LEVEL (debug, info, warn, error); unset or unknown values
// default to info.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})

	return &Logger{Logger: slog.New(handler)}
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithCorrelationID returns a logger that tags every record with the
// correlation ID found in ctx, generating one when absent.
func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.Logger.With(string(CorrelationIDKey), CorrelationIDFromContext(ctx)),
	}
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, or a
// freshly generated one when the context carries none.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(CorrelationIDKey).(string); ok && id != "" {
			return id
		}
	}

	return NewCorrelationID()
}

// NewCorrelationID generates a random correlation ID.
func NewCorrelationID() string {
	return uuid.New().String()
}

// FromContext returns the request-scoped logger stored in ctx by the router
// middleware, falling back to the provided logger (correlated with ctx) and
// finally to a fresh logger.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
			return l
		}

		if fallback != nil {
			return fallback.WithCorrelationID(ctx)
		}

		return NewLogger().WithCorrelationID(ctx)
	}

	if fallback != nil {
		return fallback
	}

	return NewLogger()
}
