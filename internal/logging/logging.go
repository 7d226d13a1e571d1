// Package logging provides structured logging functionality.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
// Console output goes to stderr so that command output on stdout stays
// machine-readable.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					switch ll {
					case "debug":
						return "\033[36mDBG\033[0m"
					case "info":
						return "\033[32mINF\033[0m"
					case "warn":
						return "\033[33mWRN\033[0m"
					case "error":
						return "\033[31mERR\033[0m"
					default:
						return ll
					}
				}
				return "???"
			},
		}
		writers = append(writers, consoleWriter)
	}

	// File writer with rotation
	if cfg.File && cfg.FilePath != "" {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			})
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(writer).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a config level name onto a zerolog level. Unknown names
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{}

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, or fallback when there is none.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return fallback
	}
	if logger, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return logger
	}
	return fallback
}

// WithRequestID tags a logger with a request id.
func WithRequestID(logger zerolog.Logger, id string) zerolog.Logger {
	return logger.With().Str("request_id", id).Logger()
}

// LogTrade logs a trade journal mutation ("saved", "updated", "deleted").
func LogTrade(logger zerolog.Logger, action, id, symbol, status string, pnl float64) {
	logger.Info().
		Str("event", "trade").
		Str("action", action).
		Str("trade_id", id).
		Str("symbol", symbol).
		Str("status", status).
		Float64("pnl", pnl).
		Msg("Trade " + action)
}

// LogStrategy logs a playbook mutation.
func LogStrategy(logger zerolog.Logger, action, id, title string) {
	logger.Info().
		Str("event", "strategy").
		Str("action", action).
		Str("strategy_id", id).
		Str("title", title).
		Msg("Strategy " + action)
}

// LogPersistence logs a failed or degraded key-value operation. Persistence
// is best-effort, so these are warnings rather than errors.
func LogPersistence(logger zerolog.Logger, op, key string, err error) {
	logger.Warn().
		Str("event", "persistence").
		Str("op", op).
		Str("key", key).
		Err(err).
		Msg("Persistence degraded")
}

// LogAPICall logs an API call.
func LogAPICall(logger zerolog.Logger, method, endpoint string, status int, duration time.Duration) {
	event := logger.Debug()
	if status >= 500 {
		event = logger.Error()
	}
	event.
		Str("event", "api_call").
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", status).
		Dur("duration", duration).
		Msg("API call completed")
}
