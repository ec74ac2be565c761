package handlers

import (
	"context"

	"github.com/Proton-105/signalfi-bot/internal/domain"
)

// Reply renders a fixed reply for a chat.
type Reply func(chatID domain.ChatID) domain.OutboundMessage

// NewStaticHandler sends exactly one reply produced by render.
func NewStaticHandler(render Reply) Handler {
	return func(ctx context.Context, msg domain.InboundMessage, out Outbox) error {
		return out.Send(ctx, render(msg.ChatID))
	}
}
