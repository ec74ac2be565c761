package handlers

import (
	"context"
	"log/slog"

	"github.com/Proton-105/signalfi-bot/internal/domain"
	errors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/internal/responder"
)

// BalanceFetcher looks up a user's balance in the backend.
type BalanceFetcher interface {
	Balance(ctx context.Context, userID string) (*domain.BalanceQueryResult, error)
}

// ErrorReporter records an error and returns the text to show the user.
type ErrorReporter interface {
	Handle(ctx context.Context, err error) string
}

// NewBalanceHandler answers /balance: an interim reply, one backend call, then exactly one final reply.
// A message without a sender gets the identification error and no backend call.
func NewBalanceHandler(fetcher BalanceFetcher, resp *responder.Responder, reporter ErrorReporter, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}
	if reporter == nil {
		reporter = errors.NewHandler(log)
	}

	return func(ctx context.Context, msg domain.InboundMessage, out Outbox) error {
		if !msg.HasSender() {
			userMsg := reporter.Handle(ctx, errors.NewIdentityError())
			return out.Send(ctx, resp.Text(msg.ChatID, userMsg))
		}

		if err := out.Send(ctx, resp.Fetching(msg.ChatID)); err != nil {
			log.Warn("failed to send interim balance reply",
				slog.String("chat_id", msg.ChatID.String()),
				slog.Any("error", err),
			)
		}

		result, err := fetcher.Balance(ctx, msg.SenderID)
		if err != nil {
			userMsg := reporter.Handle(ctx, err)
			return out.Send(ctx, resp.Text(msg.ChatID, userMsg))
		}

		return out.Send(ctx, resp.Balance(msg.ChatID, *result))
	}
}
