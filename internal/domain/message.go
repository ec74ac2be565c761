package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ChatID identifies a Telegram chat: a numeric id or an @channel username.
type ChatID string

// ChatIDFromInt converts a numeric Telegram id.
func ChatIDFromInt(id int64) ChatID {
	return ChatID(strconv.FormatInt(id, 10))
}

// Recipient satisfies telebot.Recipient.
func (id ChatID) Recipient() string {
	return string(id)
}

func (id ChatID) String() string {
	return string(id)
}

// InboundMessage is a received chat message normalized by the transport.
type InboundMessage struct {
	ChatID ChatID
	// SenderID is empty when the platform did not identify the author.
	SenderID string
	Text     string
}

// HasSender reports whether the message carries a sender identity.
func (m InboundMessage) HasSender() bool {
	return m.SenderID != ""
}

// OutboundMessage is a plain-text message to deliver to a chat.
type OutboundMessage struct {
	ChatID ChatID
	Text   string
}

// BalanceQueryResult is the decoded body of the backend balance endpoint.
type BalanceQueryResult struct {
	// Balance holds whatever the backend sent; numbers arrive as json.Number.
	Balance any `json:"balance"`
}

// FormattedBalance renders Balance for display without reinterpreting it. Numbers keep their
// exact JSON text, so 4.50 stays "4.50" and 1e3 stays "1e3" rather than being normalized. Strings
// are shown as sent. A missing or null balance field renders "n/a".
func (r BalanceQueryResult) FormattedBalance() string {
	switch v := r.Balance.(type) {
	case nil:
		return "n/a"
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
