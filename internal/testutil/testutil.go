// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Proton-105/signalfi-bot/internal/domain"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Outbox records outbound messages in send order.
type Outbox struct {
	mu   sync.Mutex
	sent []domain.OutboundMessage
	// Err, when set, is returned by every Send after the message is recorded as attempted.
	Err error
	// Panic, when non-nil, is raised by Send.
	Panic any
	// OnSend runs before Send returns, e.g. to observe ordering against other calls.
	OnSend func(domain.OutboundMessage)
}

// Send records msg.
func (o *Outbox) Send(_ context.Context, msg domain.OutboundMessage) error {
	if o.Panic != nil {
		panic(o.Panic)
	}

	o.mu.Lock()
	o.sent = append(o.sent, msg)
	onSend := o.OnSend
	err := o.Err
	o.mu.Unlock()

	if onSend != nil {
		onSend(msg)
	}

	return err
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []domain.OutboundMessage {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]domain.OutboundMessage, len(o.sent))
	copy(out, o.sent)
	return out
}

// Texts returns the text of every sent message.
func (o *Outbox) Texts() []string {
	msgs := o.Messages()
	texts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		texts = append(texts, msg.Text)
	}
	return texts
}
