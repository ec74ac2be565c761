package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Proton-105/signalfi-bot/pkg/logger"
	"github.com/Proton-105/signalfi-bot/pkg/metrics"
)

// Handler logs and counts errors, and picks the text shown to the user. High and critical
// errors reach Sentry through their Error-level log record.
type Handler struct {
	log *slog.Logger
}

func NewHandler(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// Handle records err and returns the message to show the user. Errors without a user surface
// return the generic internal message.
func (h *Handler) Handle(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}

	if ctx == nil {
		ctx = context.Background()
	}

	log := slog.Default()
	if h != nil && h.log != nil {
		log = h.log
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr == nil {
		appErr = NewInternalError(err)
	}

	attrs := []any{
		slog.String("code", appErr.Code),
		slog.String("severity", string(appErr.Severity)),
		slog.Any("error", err),
	}
	if appErr.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status", appErr.StatusCode))
	}
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		attrs = append(attrs, slog.String("correlation_id", correlationID))
	}

	log.Log(ctx, levelFor(appErr.Severity), "application error", attrs...)
	metrics.RecordError(appErr.Code, string(appErr.Severity))

	if appErr.UserMessage == "" {
		return MsgInternal
	}
	return appErr.UserMessage
}

func levelFor(severity Severity) slog.Level {
	switch severity {
	case SeverityLow:
		return slog.LevelInfo
	case SeverityMedium:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
