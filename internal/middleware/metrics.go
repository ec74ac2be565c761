package middleware

import (
	"context"
	"time"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	"github.com/Proton-105/signalfi-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus
// under the route name stored in the context.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(ctx context.Context, msg domain.InboundMessage, out handlers.Outbox) error {
		start := time.Now()
		err := next(ctx, msg, out)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCommand(handlers.CommandFromContext(ctx), status, time.Since(start))

		return err
	}
}
