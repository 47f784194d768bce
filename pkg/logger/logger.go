package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// log is the process-wide logger. It discards everything until Init runs,
// which keeps packages usable from tests without setup.
var log = zerolog.Nop()

// ctxKey for storing logger in context
type ctxKey struct{}

// Init initializes the global logger
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout

	// Pretty console output for development
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.SetGlobalLevel(ParseLevel(logLevel))

	log = zerolog.New(output).
		With().
		Timestamp().
		Str("service", "lapak-storefront").
		Logger()
}

// ParseLevel maps LOG_LEVEL values to zerolog levels, defaulting to info.
func ParseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request-scoped logger, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
			return l
		}
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID adds a request ID to the logger
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// WithShopper tags a logger with the cart owner.
func WithShopper(l *zerolog.Logger, shopperKey string) zerolog.Logger {
	return l.With().Str("shopper", shopperKey).Logger()
}

// Info logs an info message
func Info() *zerolog.Event {
	return log.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// RemoteCall logs a request made to the remote service.
func RemoteCall(ctx context.Context, method, path string, status int, duration time.Duration, err error) {
	l := WithContext(ctx)
	event := l.Debug()
	if err != nil {
		event = l.Warn().Err(err)
	}
	event.
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration_ms", duration).
		Msg("Remote call")
}
