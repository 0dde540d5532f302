// Package valueobject defines immutable domain values shared across use cases.
package valueobject

import "github.com/shopspring/decimal"

// Early-withdrawal fee rates per subscription tier.
var (
	feeRateBasic = decimal.NewFromFloat(0.03)
	feeRatePlus  = decimal.NewFromFloat(0.015)
	feeRatePro   = decimal.Zero
)

// FeeRate returns the early-withdrawal fee rate for a subscription tier.
// Unknown tiers fall back to the basic rate: charging the highest fee on an
// unrecognised tier is the documented fail-safe policy.
func FeeRate(tier string) decimal.Decimal {
	switch tier {
	case "basic":
		return feeRateBasic
	case "plus":
		return feeRatePlus
	case "pro":
		return feeRatePro
	default:
		return feeRateBasic
	}
}

// EarlyWithdrawalFee computes the fee charged on a gross withdrawal amount
// for the given tier, rounded to pence.
func EarlyWithdrawalFee(amount decimal.Decimal, tier string) decimal.Decimal {
	return amount.Mul(FeeRate(tier)).Round(2)
}
