package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	"github.com/Proton-105/signalfi-bot/internal/testutil"
	"github.com/Proton-105/signalfi-bot/pkg/logger"
)

func commandCount(t *testing.T, command, status string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "bot_commands_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["command"] == command && labels["status"] == status {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_RecordsRouteName(t *testing.T) {
	before := commandCount(t, "withdraw", "error")

	handler := Metrics(func(context.Context, domain.InboundMessage, handlers.Outbox) error {
		return errors.New("send failed")
	})

	ctx := handlers.WithCommand(context.Background(), "withdraw")
	err := handler(ctx, domain.InboundMessage{ChatID: "1", Text: "/withdraw"}, &testutil.Outbox{})

	assert.Error(t, err)
	assert.Equal(t, before+1, commandCount(t, "withdraw", "error"))
}

func TestMetrics_NilHandler(t *testing.T) {
	assert.Nil(t, Metrics(nil))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := logger.Middleware(New(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", rec.Body.String())
	assert.Contains(t, buf.String(), "status=503")
	assert.Contains(t, buf.String(), "path=/healthz")
	assert.Contains(t, buf.String(), "correlation_id=")
}
