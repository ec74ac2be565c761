// Package config provides configuration loading and validation utilities.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConfigDir = "./configs"

// Variable names shared with the rest of the Signalfi deployment.
var envBindings = map[string]string{
	"bot.token":        "TELEGRAM_BOT_TOKEN",
	"backend.base_url": "BACKEND_API_URL",
	"dapp.url":         "DAPP_URL",
}

var defaults = map[string]any{
	"bot.token":               "",
	"bot.mode":                "polling",
	"bot.timeout":             10 * time.Second,
	"bot.webhook_listen":      ":8443",
	"bot.webhook_url":         "",
	"backend.base_url":        "",
	"dapp.url":                "",
	"log.level":               "info",
	"log.format":              "",
	"log.file":                "",
	"log.max_size_mb":         100,
	"log.max_backups":         3,
	"log.max_age_days":        28,
	"server.addr":             ":9090",
	"server.shutdown_timeout": 10 * time.Second,
	"sentry.enabled":          false,
	"sentry.dsn":              "",
	"notify.admin_chat_id":    "",
}

// Load reads configuration from YAML files and environment variables, validates it, and returns the resulting Config.
func Load() (*Config, *viper.Viper, error) {
	return LoadFromDir(defaultConfigDir)
}

// LoadFromDir behaves like Load but looks for {APP_ENV}.yaml inside dir.
func LoadFromDir(dir string) (*Config, *viper.Viper, error) {
	// .env files are optional and never override variables already set.
	for _, file := range []string{".env.local", ".env"} {
		_ = godotenv.Load(file)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return nil, nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	cfg.AppEnv = env

	return cfg, v, nil
}

// Watch re-decodes the configuration whenever the backing file changes and hands valid results to onChange.
// It is a no-op when no config file was loaded.
func Watch(v *viper.Viper, log *slog.Logger, onChange func(*Config)) {
	if v == nil || onChange == nil || v.ConfigFileUsed() == "" {
		return
	}
	if log == nil {
		log = slog.Default()
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg, err := decode(v)
		if err != nil {
			log.Warn("ignoring invalid config change", slog.String("file", e.Name), slog.Any("error", err))
			return
		}

		log.Info("config reloaded", slog.String("file", e.Name))
		onChange(cfg)
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
