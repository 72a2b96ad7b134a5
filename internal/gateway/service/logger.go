package service

import (
	"context"
	"log/slog"

	"github.com/GoSim-25-26J-441/chat-gateway/internal/api/http/middleware"
)

// Logger is the sink the gateway reports each stage of a request to.
// Implementations must be safe for concurrent use.
type Logger interface {
	LogInfo(ctx context.Context, operation, message string, attrs ...any)
	LogWarn(ctx context.Context, operation, message string, attrs ...any)
	LogError(ctx context.Context, operation string, err error, attrs ...any)
}

// SlogLogger writes to a *slog.Logger and tags every record with the
// request ID carried by the context.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l. A nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{l: l}
}

func (s *SlogLogger) LogInfo(ctx context.Context, operation, message string, attrs ...any) {
	s.l.InfoContext(ctx, message, s.with(ctx, operation, attrs)...)
}

func (s *SlogLogger) LogWarn(ctx context.Context, operation, message string, attrs ...any) {
	s.l.WarnContext(ctx, message, s.with(ctx, operation, attrs)...)
}

func (s *SlogLogger) LogError(ctx context.Context, operation string, err error, attrs ...any) {
	s.l.ErrorContext(ctx, operation+" failed", s.with(ctx, operation, append(attrs, "error", err))...)
}

func (s *SlogLogger) with(ctx context.Context, operation string, attrs []any) []any {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return append([]any{"request_id", requestID, "operation", operation}, attrs...)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogInfo(context.Context, string, string, ...any) {}
func (NopLogger) LogWarn(context.Context, string, string, ...any) {}
func (NopLogger) LogError(context.Context, string, error, ...any) {}
