package handlers

import (
	"context"
	"strings"

	"github.com/Proton-105/signalfi-bot/internal/domain"
	"github.com/Proton-105/signalfi-bot/internal/responder"
)

// CommandPrefix starts every bot command.
const CommandPrefix = "/"

// NewFallbackHandler echoes free text and points the user to the commands.
// Empty text and unrecognized commands get no reply.
func NewFallbackHandler(resp *responder.Responder) Handler {
	return func(ctx context.Context, msg domain.InboundMessage, out Outbox) error {
		if msg.Text == "" || strings.HasPrefix(msg.Text, CommandPrefix) {
			return nil
		}
		return out.Send(ctx, resp.Fallback(msg.ChatID, msg.Text))
	}
}
