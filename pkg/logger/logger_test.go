package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_IsIdempotent(t *testing.T) {
	Init("development")
	first := GetLogger()
	require.NotNil(t, first)

	Init("production")
	assert.Same(t, first, GetLogger(), "Init must only build the logger once")
}

func TestWithContext(t *testing.T) {
	Init("development")

	base := GetLogger()
	assert.Same(t, base, WithContext(context.Background()), "no request id, no extra fields")
	assert.Same(t, base, WithContext(nil))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	assert.NotSame(t, base, WithContext(ctx), "request id must enrich the logger")
}

func TestLoggingHelpers(t *testing.T) {
	Init("development")
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")

	// Must not panic with or without fields.
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Error(ctx, "error message")
	Debug(ctx, "debug message")
	LogRequest(ctx, "GET", "/api/v1/health", 200, 3*time.Millisecond, "127.0.0.1")
}
