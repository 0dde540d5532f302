package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeeRate(t *testing.T) {
	tests := []struct {
		name string
		tier string
		want string
	}{
		{name: "basic tier pays 3 percent", tier: "basic", want: "0.03"},
		{name: "plus tier pays 1.5 percent", tier: "plus", want: "0.015"},
		{name: "pro tier pays nothing", tier: "pro", want: "0"},
		{name: "unknown tier falls back to basic rate", tier: "platinum", want: "0.03"},
		{name: "empty tier falls back to basic rate", tier: "", want: "0.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeeRate(tt.tier)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"FeeRate(%q) = %s, want %s", tt.tier, got, tt.want)
		})
	}
}

func TestEarlyWithdrawalFee(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		tier   string
		want   string
	}{
		{name: "basic fee on 100", amount: "100", tier: "basic", want: "3"},
		{name: "plus fee on 100", amount: "100", tier: "plus", want: "1.5"},
		{name: "pro fee on 100", amount: "100", tier: "pro", want: "0"},
		{name: "fee rounds to pence", amount: "33.33", tier: "basic", want: "1"},
		{name: "plus fee rounds to pence", amount: "99.99", tier: "plus", want: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EarlyWithdrawalFee(decimal.RequireFromString(tt.amount), tt.tier)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"EarlyWithdrawalFee(%s, %q) = %s, want %s", tt.amount, tt.tier, got, tt.want)
		})
	}
}
