package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Proton-105/signalfi-bot/internal/balance"
	"github.com/Proton-105/signalfi-bot/internal/bot"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	apperrors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/internal/health"
	"github.com/Proton-105/signalfi-bot/internal/lifecycle"
	"github.com/Proton-105/signalfi-bot/internal/middleware"
	"github.com/Proton-105/signalfi-bot/internal/notifier"
	"github.com/Proton-105/signalfi-bot/internal/responder"
	"github.com/Proton-105/signalfi-bot/pkg/config"
	"github.com/Proton-105/signalfi-bot/pkg/graceful"
	"github.com/Proton-105/signalfi-bot/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const healthCheckTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "signalfi-bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sentryHandler, flushSentry, err := logger.InitSentry(cfg.Sentry, cfg.AppEnv, version)
	if err != nil {
		return err
	}

	var extra []slog.Handler
	if sentryHandler != nil {
		extra = append(extra, sentryHandler)
	}
	log, level := logger.New(cfg.Log, cfg.AppEnv, logger.Options{Extra: extra})
	slog.SetDefault(log)

	log.Info("starting Signalfi Trader bot",
		slog.String("env", cfg.AppEnv),
		slog.String("version", version),
		slog.String("mode", cfg.Bot.Mode),
		slog.String("log_level", cfg.Log.Level),
	)

	config.Watch(v, log, func(updated *config.Config) {
		level.Set(logger.ParseLevel(updated.Log.Level))
	})

	errHandler := apperrors.NewHandler(log)

	tb, err := bot.NewTelebot(cfg.Bot, log)
	if err != nil {
		return err
	}

	router := bot.NewCommandRouter(bot.RouteDeps{
		Responder: responder.New(cfg.DApp.URL),
		Balance:   balance.NewClient(cfg.BalanceBaseURL(), log),
		Errors:    errHandler,
		Log:       log,
	})
	b := bot.New(tb, router, log)
	if err := b.PublishCommands(); err != nil {
		log.Warn("failed to publish command menu", slog.Any("error", err))
	}

	notify := notifier.New(b.Outbox(), errHandler, log)

	checker := health.NewChecker(log)
	checker.AddCheck("telegram", health.NewTelegramChecker(tb))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", checker.Handler(healthCheckTimeout))

	opsServer := graceful.NewServer(log, &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           logger.Middleware(middleware.New(log)(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}, cfg.Server.ShutdownTimeout)

	serverCtx, cancelServer := context.WithCancel(context.Background())
	defer cancelServer()

	opsDone := make(chan struct{})
	var opsErr error
	go func() {
		defer close(opsDone)
		opsErr = opsServer.ListenAndServe(serverCtx)
	}()

	go b.Start()
	announce(ctx, notify, cfg.Notify, "🟢 Signalfi Trader bot started.")

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case <-opsDone:
		log.Error("ops server stopped unexpectedly", slog.Any("error", opsErr))
	}

	shutdown := lifecycle.NewShutdown(log)
	shutdown.Register("telegram", func(hookCtx context.Context) error {
		stopped := make(chan struct{})
		go func() {
			b.Stop()
			close(stopped)
		}()

		select {
		case <-stopped:
			return nil
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	})
	shutdown.Register("ops-server", func(hookCtx context.Context) error {
		cancelServer()
		select {
		case <-opsDone:
			return opsErr
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	})
	shutdown.Register("admin-notification", func(hookCtx context.Context) error {
		announce(hookCtx, notify, cfg.Notify, "🔴 Signalfi Trader bot is shutting down.")
		return nil
	})

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	shutdownErr := shutdown.Execute(shutdownCtx)
	flushSentry()

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	log.Info("Signalfi Trader bot stopped.")
	return nil
}

func announce(ctx context.Context, n *notifier.Notifier, cfg config.NotifyConfig, message string) {
	if cfg.AdminChatID == "" {
		return
	}
	n.SendNotification(ctx, domain.ChatID(cfg.AdminChatID), message)
}
