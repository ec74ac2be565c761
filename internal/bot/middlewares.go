package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	errors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/pkg/logger"
)

// RecoveryMiddleware catches panics, reports them via the error reporter, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, reporter handlers.ErrorReporter) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg domain.InboundMessage, out handlers.Outbox) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered in handler", slog.Any("panic", rec), slog.String("stack", string(debug.Stack())))

					userMsg := errors.MsgInternal
					if reporter != nil {
						userMsg = reporter.Handle(ctx, errors.NewInternalError(fmt.Errorf("panic recovered: %v", rec)))
					}

					if out != nil {
						if sendErr := out.Send(ctx, domain.OutboundMessage{ChatID: msg.ChatID, Text: userMsg}); sendErr != nil {
							log.Error("failed to notify user about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(ctx, msg, out)
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg domain.InboundMessage, out handlers.Outbox) error {
			start := time.Now()
			attrs := []any{
				slog.String("chat_id", msg.ChatID.String()),
				slog.String("user_id", msg.SenderID),
				slog.String("command", handlers.CommandFromContext(ctx)),
				slog.String("correlation_id", logger.CorrelationIDFromContext(ctx)),
			}

			log.Info("handling update", attrs...)
			err := next(ctx, msg, out)
			log.Info("handled update", append(attrs,
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)...)

			return err
		}
	}
}
