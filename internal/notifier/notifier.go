// Package notifier pushes messages to chats outside the command flow.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/Proton-105/signalfi-bot/internal/domain"
	errors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/pkg/metrics"
)

// Sender delivers one outbound message.
type Sender interface {
	Send(ctx context.Context, msg domain.OutboundMessage) error
}

// Reporter records delivery failures.
type Reporter interface {
	Handle(ctx context.Context, err error) string
}

// Notifier sends fire-and-forget messages. SendNotification never reports failure to its caller:
// delivery errors and panics are logged and counted, nothing else.
type Notifier struct {
	sender   Sender
	reporter Reporter
	log      *slog.Logger
}

// New builds a Notifier on top of sender.
func New(sender Sender, reporter Reporter, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}

	return &Notifier{
		sender:   sender,
		reporter: reporter,
		log:      log,
	}
}

// SendNotification sends message to the chat identified by to.
func (n *Notifier) SendNotification(ctx context.Context, to domain.ChatID, message string) {
	if n == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if rec := recover(); rec != nil {
			n.log.Error("panic while sending notification",
				slog.String("recipient", to.String()),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			n.fail(ctx, to, fmt.Errorf("panic: %v", rec))
		}
	}()

	if n.sender == nil {
		n.fail(ctx, to, fmt.Errorf("no sender configured"))
		return
	}

	if err := n.sender.Send(ctx, domain.OutboundMessage{ChatID: to, Text: message}); err != nil {
		n.fail(ctx, to, err)
		return
	}

	metrics.RecordNotification("sent")
}

func (n *Notifier) fail(ctx context.Context, to domain.ChatID, cause error) {
	metrics.RecordNotification("failed")

	err := errors.NewDeliveryError(to.String(), cause)
	if n.reporter != nil {
		_ = n.reporter.Handle(ctx, err)
		return
	}

	n.log.Warn("failed to send notification", slog.String("recipient", to.String()), slog.Any("error", err))
}
