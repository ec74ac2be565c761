package handlers

import (
	"context"

	"github.com/Proton-105/signalfi-bot/internal/domain"
)

// Outbox delivers outbound messages. Send returns after the transport accepted or rejected the message.
type Outbox interface {
	Send(ctx context.Context, msg domain.OutboundMessage) error
}

// Handler processes one inbound message, emitting replies through out.
type Handler func(ctx context.Context, msg domain.InboundMessage, out Outbox) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler

type commandKey struct{}

// WithCommand stores the matched route name in ctx.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey{}, command)
}

// CommandFromContext returns the route name stored by WithCommand.
func CommandFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	command, _ := ctx.Value(commandKey{}).(string)
	return command
}
