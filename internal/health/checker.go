package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"
)

const statusOK = "OK"

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function to Checkable.
type CheckFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f CheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	mu     sync.RWMutex
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}

	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Check runs all registered health checks and returns their statuses.
func (c *Checker) Check(ctx context.Context) map[string]string {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)

	results := make(map[string]string, len(names))
	for _, name := range names {
		c.mu.RLock()
		check := c.checks[name]
		c.mu.RUnlock()

		if err := check.HealthCheck(ctx); err != nil {
			results[name] = err.Error()
			c.log.Error("health check failed", slog.String("component", name), slog.Any("error", err))
			continue
		}

		results[name] = statusOK
	}

	return results
}

// Handler serves the check results as JSON with 200 when every component is healthy and 503 otherwise.
func (c *Checker) Handler(timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		results := c.Check(ctx)

		status := http.StatusOK
		for _, result := range results {
			if result != statusOK {
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	})
}

// TelegramAPI is the part of telebot.Bot used to reach the Bot API.
type TelegramAPI interface {
	Raw(method string, payload interface{}) ([]byte, error)
}

// TelegramChecker verifies that the Telegram bot API is reachable.
type TelegramChecker struct {
	api TelegramAPI
}

// NewTelegramChecker constructs a TelegramChecker. A *telebot.Bot satisfies TelegramAPI.
func NewTelegramChecker(api TelegramAPI) *TelegramChecker {
	return &TelegramChecker{api: api}
}

// HealthCheck calls getMe and fails when the call errors or outlives ctx.
func (c *TelegramChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errors.New("telegram bot is not initialized")
	}

	// telebot has no context-aware requests, so the call is abandoned rather than cancelled.
	done := make(chan error, 1)
	go func() {
		_, err := c.api.Raw("getMe", map[string]string{})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram getMe: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram getMe: %w", ctx.Err())
	}
}
