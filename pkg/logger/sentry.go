package logger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	slogsentry "github.com/samber/slog-sentry/v2"

	"github.com/Proton-105/signalfi-bot/pkg/config"
)

const sentryFlushTimeout = 2 * time.Second

// InitSentry initializes the Sentry client and returns a handler forwarding error records to it
// along with a flush function for shutdown. It returns a nil handler when Sentry is disabled.
func InitSentry(cfg config.SentryConfig, env, release string) (slog.Handler, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		Release:     release,
	}); err != nil {
		return nil, func() {}, fmt.Errorf("init sentry: %w", err)
	}

	handler := slogsentry.Option{Level: slog.LevelError, AddSource: true}.NewSentryHandler()
	flush := func() {
		sentry.Flush(sentryFlushTimeout)
	}

	return handler, flush, nil
}
