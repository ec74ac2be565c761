// Package responder renders the bot's static replies.
package responder

import (
	"fmt"

	"github.com/Proton-105/signalfi-bot/internal/domain"
)

const (
	welcomeText = "Welcome to Signalfi Trader! I can help you with deposits, balance checks, and more.\n\n" +
		"Here are the available commands:\n\n" +
		"/deposit - Get a link to deposit funds.\n" +
		"/balance - Check your current balance.\n" +
		"/follow - Authorize copy-trading.\n" +
		"/withdraw - Request a withdrawal."
	depositFormat  = "To make a deposit, please visit our secure dApp:\n%s"
	followFormat   = "To authorize copy-trading, you need to sign a gasless message in our dApp:\n%s"
	withdrawFormat = "Withdrawals are processed through our secure dApp. Please visit:\n%s"
	fetchingText   = "⏳ Fetching your balance, please wait..."
	balanceFormat  = "✅ Your current balance is: %s tokens."
	fallbackFormat = "I received: \"%s\".\n\nPlease use one of the available commands by typing / or using the menu."
)

// Responder builds replies around the configured dApp URL. It has no I/O.
type Responder struct {
	dappURL string
}

// New returns a Responder linking to dappURL.
func New(dappURL string) *Responder {
	return &Responder{dappURL: dappURL}
}

func (r *Responder) Welcome(chatID domain.ChatID) domain.OutboundMessage {
	return reply(chatID, welcomeText)
}

func (r *Responder) Deposit(chatID domain.ChatID) domain.OutboundMessage {
	return reply(chatID, fmt.Sprintf(depositFormat, r.dappURL))
}

func (r *Responder) Follow(chatID domain.ChatID) domain.OutboundMessage {
	return reply(chatID, fmt.Sprintf(followFormat, r.dappURL))
}

func (r *Responder) Withdraw(chatID domain.ChatID) domain.OutboundMessage {
	return reply(chatID, fmt.Sprintf(withdrawFormat, r.dappURL))
}

// Fetching is the interim reply sent before the balance lookup.
func (r *Responder) Fetching(chatID domain.ChatID) domain.OutboundMessage {
	return reply(chatID, fetchingText)
}

func (r *Responder) Balance(chatID domain.ChatID, result domain.BalanceQueryResult) domain.OutboundMessage {
	return reply(chatID, fmt.Sprintf(balanceFormat, result.FormattedBalance()))
}

// Fallback echoes free text back with a hint to use commands.
func (r *Responder) Fallback(chatID domain.ChatID, text string) domain.OutboundMessage {
	return reply(chatID, fmt.Sprintf(fallbackFormat, text))
}

// Text wraps an arbitrary message, e.g. an error text picked by the error handler.
func (r *Responder) Text(chatID domain.ChatID, text string) domain.OutboundMessage {
	return reply(chatID, text)
}

func reply(chatID domain.ChatID, text string) domain.OutboundMessage {
	return domain.OutboundMessage{ChatID: chatID, Text: text}
}
