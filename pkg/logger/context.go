package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	checkIDKey   contextKey = "check_id"
	attemptIDKey contextKey = "attempt_id"
	channelKey   contextKey = "channel"
	loggerKey    contextKey = "logger"
)

// WithCheckID adds a poll-cycle check ID to context
func WithCheckID(ctx context.Context, checkID string) context.Context {
	return context.WithValue(ctx, checkIDKey, checkID)
}

// WithAttemptID adds a booking attempt ID to context
func WithAttemptID(ctx context.Context, attemptID string) context.Context {
	return context.WithValue(ctx, attemptIDKey, attemptID)
}

// WithChannel adds a notification channel name to context
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, channelKey, channel)
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts a logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}

	l := Logger
	if l == nil {
		l, _ = zap.NewProduction()
	}

	var fields []zap.Field

	if checkID, ok := ctx.Value(checkIDKey).(string); ok && checkID != "" {
		fields = append(fields, zap.String("check_id", checkID))
	}

	if attemptID, ok := ctx.Value(attemptIDKey).(string); ok && attemptID != "" {
		fields = append(fields, zap.String("attempt_id", attemptID))
	}

	if channel, ok := ctx.Value(channelKey).(string); ok && channel != "" {
		fields = append(fields, zap.String("channel", channel))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}

	return l
}

// WithAttempt creates a logger with a booking attempt field
func WithAttempt(logger *zap.Logger, attemptID string) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.String("attempt_id", attemptID))
}

// Common field helpers

// ErrorField returns a zap field for errors
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// LocationField returns a zap field for a consulate location
func LocationField(location string) zap.Field {
	return zap.String("location", location)
}

// SlotCountField returns a zap field for a slot count
func SlotCountField(count int) zap.Field {
	return zap.Int("slot_count", count)
}

// CycleField returns a zap field for a poll cycle number
func CycleField(cycle int) zap.Field {
	return zap.Int("cycle", cycle)
}

// Dynamic log level management

var currentLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// SetLogLevel dynamically changes the log level
func SetLogLevel(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	currentLevel.SetLevel(zapLevel)
	SetLevel(zapLevel)
	return nil
}

// GetLogLevel returns the current log level
func GetLogLevel() string {
	return currentLevel.Level().String()
}
