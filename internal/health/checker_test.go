package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/signalfi-bot/internal/testutil"
)

func TestChecker_Check(t *testing.T) {
	checker := NewChecker(testutil.Logger())
	checker.AddCheck("telegram", CheckFunc(func(context.Context) error { return nil }))
	checker.AddCheck("ignored", nil)

	results := checker.Check(context.Background())

	assert.Equal(t, map[string]string{"telegram": "OK"}, results)
}

func TestChecker_Handler(t *testing.T) {
	testCases := []struct {
		name       string
		checkErr   error
		wantStatus int
		wantResult string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantResult: "OK"},
		{name: "unhealthy", checkErr: errors.New("telegram bot is not initialized or disconnected"), wantStatus: http.StatusServiceUnavailable, wantResult: "telegram bot is not initialized or disconnected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checker := NewChecker(testutil.Logger())
			checker.AddCheck("telegram", CheckFunc(func(context.Context) error { return tc.checkErr }))

			rec := httptest.NewRecorder()
			checker.Handler(time.Second).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantResult, body["telegram"])
		})
	}
}

type fakeTelegramAPI struct {
	err     error
	delay   time.Duration
	methods chan string
}

func (f *fakeTelegramAPI) Raw(method string, _ interface{}) ([]byte, error) {
	f.methods <- method
	time.Sleep(f.delay)
	return []byte(`{"ok":true}`), f.err
}

func TestTelegramChecker_HealthCheck(t *testing.T) {
	apiErr := errors.New("telegram: Unauthorized (401)")

	testCases := []struct {
		name    string
		api     *fakeTelegramAPI
		timeout time.Duration
		wantErr error
	}{
		{name: "reachable", api: &fakeTelegramAPI{}, timeout: time.Second},
		{name: "api error", api: &fakeTelegramAPI{err: apiErr}, timeout: time.Second, wantErr: apiErr},
		{name: "slower than deadline", api: &fakeTelegramAPI{delay: time.Second}, timeout: 20 * time.Millisecond, wantErr: context.DeadlineExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.api.methods = make(chan string, 1)
			ctx, cancel := context.WithTimeout(context.Background(), tc.timeout)
			defer cancel()

			start := time.Now()
			err := NewTelegramChecker(tc.api).HealthCheck(ctx)

			assert.Equal(t, "getMe", <-tc.api.methods)
			assert.Less(t, time.Since(start), 500*time.Millisecond+tc.timeout)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTelegramChecker_Uninitialized(t *testing.T) {
	assert.Error(t, NewTelegramChecker(nil).HealthCheck(context.Background()))
}
