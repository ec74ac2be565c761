package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIDFromInt(t *testing.T) {
	assert.Equal(t, ChatID("-1001234"), ChatIDFromInt(-1001234))
	assert.Equal(t, "42", ChatIDFromInt(42).Recipient())
}

func TestBalanceQueryResult_FormattedBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance any
		want    string
	}{
		{name: "missing", balance: nil, want: "n/a"},
		{name: "integer number", balance: json.Number("42"), want: "42"},
		{name: "precise decimal", balance: json.Number("1234.500000000000000001"), want: "1234.500000000000000001"},
		{name: "trailing zero kept", balance: json.Number("4.50"), want: "4.50"},
		{name: "exponent kept", balance: json.Number("1e3"), want: "1e3"},
		{name: "string", balance: "17.25", want: "17.25"},
		{name: "bool", balance: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BalanceQueryResult{Balance: tt.balance}.FormattedBalance())
		})
	}
}
