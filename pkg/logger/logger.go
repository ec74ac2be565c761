// Package logger builds the application's structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Proton-105/signalfi-bot/pkg/config"
)

// Options tune how New assembles the handler chain.
type Options struct {
	// Writer overrides stdout, mostly for tests.
	Writer io.Writer
	// Extra handlers receive every record that passes masking, e.g. the Sentry handler.
	Extra []slog.Handler
}

// New creates a slog.Logger configured from cfg together with the level variable that controls it.
func New(cfg config.LogConfig, env string, opts Options) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level))

	var out io.Writer = os.Stdout
	if opts.Writer != nil {
		out = opts.Writer
	}
	if cfg.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	format := strings.ToLower(cfg.Format)
	if format == "json" || (format == "" && strings.EqualFold(env, "production")) {
		base = slog.NewJSONHandler(out, handlerOpts)
	} else {
		base = slog.NewTextHandler(out, handlerOpts)
	}

	var handler slog.Handler = base
	if len(opts.Extra) > 0 {
		handler = slogmulti.Fanout(append([]slog.Handler{base}, opts.Extra...)...)
	}

	return slog.New(NewMaskingHandler(handler)), level
}

// ParseLevel maps a textual level to slog.Level, defaulting to Info.
func ParseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
