// Package balance talks to the backend balance service.
package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/Proton-105/signalfi-bot/internal/domain"
	errors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/pkg/logger"
	"github.com/Proton-105/signalfi-bot/pkg/metrics"
)

const balancePath = "/api/balance/"

// Client queries GET {baseURL}/api/balance/{userID}. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient builds a Client for baseURL. Request timeouts are left to the transport.
func NewClient(baseURL string, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: cleanhttp.DefaultPooledClient(),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Balance fetches the balance of userID. Failures are *errors.AppError values:
// E301 for non-2xx statuses, E300 for transport, body or JSON problems.
func (c *Client) Balance(ctx context.Context, userID string) (*domain.BalanceQueryResult, error) {
	start := time.Now()

	result, outcome, err := c.fetch(ctx, userID)
	metrics.RecordBackendRequest(outcome, time.Since(start))
	if err != nil {
		c.log.Debug("balance request failed",
			slog.String("user_id", userID),
			slog.String("outcome", outcome),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	return result, nil
}

func (c *Client) fetch(ctx context.Context, userID string) (*domain.BalanceQueryResult, string, error) {
	endpoint := c.baseURL + balancePath + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, metrics.OutcomeTransportError, errors.NewBackendTransportError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(logger.CorrelationIDHeader, correlationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.OutcomeTransportError, errors.NewBackendTransportError(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, metrics.OutcomeHTTPError, errors.NewBackendStatusError(resp.StatusCode)
	}

	result, err := decodeBalance(resp.Body)
	if err != nil {
		return nil, metrics.OutcomeTransportError, errors.NewBackendTransportError(fmt.Errorf("decode balance response: %w", err))
	}

	return result, metrics.OutcomeOK, nil
}

// decodeBalance accepts exactly one JSON object. A null body or anything after the object is
// malformed.
func decodeBalance(body io.Reader) (*domain.BalanceQueryResult, error) {
	var result *domain.BalanceQueryResult
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("null body")
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("trailing data: %w", err)
		}
		return nil, fmt.Errorf("trailing data: unexpected %v", tok)
	}

	return result, nil
}
