package config

import (
	"strings"
	"time"
)

// Config holds runtime configuration for the Signalfi Trader bot.
type Config struct {
	AppEnv  string        `mapstructure:"app_env"`
	Bot     BotConfig     `mapstructure:"bot"`
	Backend BackendConfig `mapstructure:"backend"`
	DApp    DAppConfig    `mapstructure:"dapp"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token         string        `mapstructure:"token" validate:"required"`
	Mode          string        `mapstructure:"mode" validate:"oneof=polling webhook"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	WebhookListen string        `mapstructure:"webhook_listen"`
	WebhookURL    string        `mapstructure:"webhook_url" validate:"required_if=Mode webhook"`
}

// BackendConfig points at the balance service.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// DAppConfig points at the web application users are sent to.
type DAppConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LogConfig controls log level, encoding and optional file rotation.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// ServerConfig configures the ops HTTP server exposing metrics and health.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// SentryConfig toggles error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}

// NotifyConfig holds the optional operator chat that receives lifecycle notifications.
type NotifyConfig struct {
	AdminChatID string `mapstructure:"admin_chat_id"`
}

// IsProduction reports whether the bot runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// BalanceBaseURL returns the backend base URL without a trailing slash.
func (c *Config) BalanceBaseURL() string {
	return strings.TrimRight(c.Backend.BaseURL, "/")
}
