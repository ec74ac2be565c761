package bot

import (
	"log/slog"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/middleware"
	"github.com/Proton-105/signalfi-bot/internal/responder"
)

// RouteDeps carries what the command handlers need.
type RouteDeps struct {
	Responder *responder.Responder
	Balance   handlers.BalanceFetcher
	Errors    handlers.ErrorReporter
	Log       *slog.Logger
}

// NewCommandRouter builds the router with the full command table and middleware chain.
func NewCommandRouter(deps RouteDeps) *Router {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := NewRouter(log)

	r.Use(RecoveryMiddleware(log, deps.Errors))
	r.Use(LoggingMiddleware(log))
	r.Use(middleware.Metrics)

	resp := deps.Responder
	r.RegisterCommand(CommandStart, handlers.NewStaticHandler(resp.Welcome))
	r.RegisterCommand(CommandDeposit, handlers.NewStaticHandler(resp.Deposit))
	r.RegisterCommand(CommandFollow, handlers.NewStaticHandler(resp.Follow))
	r.RegisterCommand(CommandWithdraw, handlers.NewStaticHandler(resp.Withdraw))
	r.RegisterCommand(CommandBalance, handlers.NewBalanceHandler(deps.Balance, resp, deps.Errors, log))
	r.SetDefault(handlers.NewFallbackHandler(resp))

	return r
}
