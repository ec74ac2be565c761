package bot

import telebot "gopkg.in/telebot.v3"

// Command constants for Telegram bot commands, in matching order.
const (
	CommandStart    = "/start"
	CommandDeposit  = "/deposit"
	CommandFollow   = "/follow"
	CommandWithdraw = "/withdraw"
	CommandBalance  = "/balance"
)

// Route names used for logging and metrics when no command matched.
const (
	RouteFallback = "fallback"
	RouteIgnored  = "ignored"
)

// menuCommands is the command list published to the Telegram client menu.
var menuCommands = []telebot.Command{
	{Text: "start", Description: "Show the welcome message"},
	{Text: "deposit", Description: "Get a link to deposit funds"},
	{Text: "balance", Description: "Check your current balance"},
	{Text: "follow", Description: "Authorize copy-trading"},
	{Text: "withdraw", Description: "Request a withdrawal"},
}
