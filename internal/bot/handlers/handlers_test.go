package handlers_test

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	errors "github.com/Proton-105/signalfi-bot/internal/errors"
	"github.com/Proton-105/signalfi-bot/internal/responder"
	"github.com/Proton-105/signalfi-bot/internal/testutil"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Balance(ctx context.Context, userID string) (*domain.BalanceQueryResult, error) {
	args := m.Called(ctx, userID)
	result, _ := args.Get(0).(*domain.BalanceQueryResult)
	return result, args.Error(1)
}

func newBalanceHandler(f handlers.BalanceFetcher) handlers.Handler {
	log := testutil.Logger()
	return handlers.NewBalanceHandler(f, responder.New("https://app.signalfi.test"), errors.NewHandler(log), log)
}

func TestBalanceHandler(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		msg        domain.InboundMessage
		setupMocks func(f *mockFetcher)
		wantTexts  []string
	}{
		{
			name: "success",
			msg:  domain.InboundMessage{ChatID: "10", SenderID: "20", Text: "/balance"},
			setupMocks: func(f *mockFetcher) {
				f.On("Balance", mock.Anything, "20").
					Return(&domain.BalanceQueryResult{Balance: json.Number("42")}, nil).Once()
			},
			wantTexts: []string{
				"⏳ Fetching your balance, please wait...",
				"✅ Your current balance is: 42 tokens.",
			},
		},
		{
			name:       "missing sender",
			msg:        domain.InboundMessage{ChatID: "10", Text: "/balance"},
			setupMocks: func(*mockFetcher) {},
			wantTexts:  []string{errors.MsgIdentityMissing},
		},
		{
			name: "backend status failure",
			msg:  domain.InboundMessage{ChatID: "10", SenderID: "20", Text: "/balance"},
			setupMocks: func(f *mockFetcher) {
				f.On("Balance", mock.Anything, "20").
					Return((*domain.BalanceQueryResult)(nil), errors.NewBackendStatusError(500)).Once()
			},
			wantTexts: []string{"⏳ Fetching your balance, please wait...", errors.MsgBackendDown},
		},
		{
			name: "transport failure",
			msg:  domain.InboundMessage{ChatID: "10", SenderID: "20", Text: "/balance"},
			setupMocks: func(f *mockFetcher) {
				f.On("Balance", mock.Anything, "20").
					Return((*domain.BalanceQueryResult)(nil), errors.NewBackendTransportError(stdErrors.New("reset"))).Once()
			},
			wantTexts: []string{"⏳ Fetching your balance, please wait...", errors.MsgBalanceFetchFailed},
		},
		{
			name: "untyped failure",
			msg:  domain.InboundMessage{ChatID: "10", SenderID: "20", Text: "/balance"},
			setupMocks: func(f *mockFetcher) {
				f.On("Balance", mock.Anything, "20").
					Return((*domain.BalanceQueryResult)(nil), stdErrors.New("boom")).Once()
			},
			wantTexts: []string{"⏳ Fetching your balance, please wait...", errors.MsgInternal},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &mockFetcher{}
			tc.setupMocks(fetcher)
			out := &testutil.Outbox{}

			err := newBalanceHandler(fetcher)(ctx, tc.msg, out)

			require.NoError(t, err)
			assert.Equal(t, tc.wantTexts, out.Texts())
			for _, sent := range out.Messages() {
				assert.Equal(t, tc.msg.ChatID, sent.ChatID)
			}
			fetcher.AssertExpectations(t)
			if !tc.msg.HasSender() {
				fetcher.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestBalanceHandler_InterimFailureStillFetches(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("Balance", mock.Anything, "20").
		Return(&domain.BalanceQueryResult{Balance: "5"}, nil).Once()
	out := &testutil.Outbox{Err: stdErrors.New("telegram: too many requests")}

	err := newBalanceHandler(fetcher)(context.Background(), domain.InboundMessage{ChatID: "1", SenderID: "20"}, out)

	assert.Error(t, err)
	assert.Len(t, out.Messages(), 2)
	fetcher.AssertExpectations(t)
}

func TestStaticHandler(t *testing.T) {
	resp := responder.New("https://app.signalfi.test")
	out := &testutil.Outbox{}

	err := handlers.NewStaticHandler(resp.Deposit)(context.Background(), domain.InboundMessage{ChatID: "5", Text: "/deposit"}, out)

	require.NoError(t, err)
	require.Len(t, out.Messages(), 1)
	assert.Contains(t, out.Texts()[0], "https://app.signalfi.test")
}

func TestFallbackHandler(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCount int
	}{
		{name: "free text", text: "hello", wantCount: 1},
		{name: "empty", text: "", wantCount: 0},
		{name: "unknown command", text: "/unknown", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &testutil.Outbox{}
			handler := handlers.NewFallbackHandler(responder.New("https://app.signalfi.test"))

			require.NoError(t, handler(context.Background(), domain.InboundMessage{ChatID: "5", Text: tt.text}, out))
			assert.Len(t, out.Messages(), tt.wantCount)
		})
	}
}

func TestCommandContext(t *testing.T) {
	ctx := handlers.WithCommand(context.Background(), "balance")
	assert.Equal(t, "balance", handlers.CommandFromContext(ctx))
	assert.Empty(t, handlers.CommandFromContext(context.Background()))
}
