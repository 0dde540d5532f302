// Package valueobject defines immutable domain values shared across use cases.
package valueobject

import "github.com/shopspring/decimal"

// PrizeTier is a fixed-amount tier filled in order after the grand prize.
// Count entrants (at most) each receive Amount.
type PrizeTier struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PrizeStructure is the quota table for one draw: a single grand prize taking
// a share of the pool, followed by fixed-amount tiers. It is stored on each
// draw so that structures can vary without touching the selection algorithm.
type PrizeStructure struct {
	GrandPrizeShare decimal.Decimal `json:"grand_prize_share"`
	Tiers           []PrizeTier     `json:"tiers"`
}

// GrandPrizeAmount returns the grand prize for a given pool, rounded to pence.
func (s PrizeStructure) GrandPrizeAmount(pool decimal.Decimal) decimal.Decimal {
	return pool.Mul(s.GrandPrizeShare).Round(2)
}

// TotalQuota returns the maximum number of winners the structure can fill,
// including the grand prize.
func (s PrizeStructure) TotalQuota() int {
	total := 1
	for _, t := range s.Tiers {
		total += t.Count
	}
	return total
}

// StructureForKind returns the default prize structure for a draw kind.
func StructureForKind(kind string) PrizeStructure {
	switch kind {
	case "monthly":
		return PrizeStructure{
			GrandPrizeShare: decimal.NewFromFloat(0.60),
			Tiers: []PrizeTier{
				{Label: "runner_up", Count: 5, Amount: decimal.NewFromInt(200)},
				{Label: "special", Count: 3, Amount: decimal.NewFromInt(1000)},
			},
		}
	case "goal_completion":
		return PrizeStructure{
			GrandPrizeShare: decimal.NewFromInt(1),
		}
	default: // weekly
		return PrizeStructure{
			GrandPrizeShare: decimal.NewFromFloat(0.50),
			Tiers: []PrizeTier{
				{Label: "runner_up", Count: 10, Amount: decimal.NewFromInt(50)},
				{Label: "consolation", Count: 100, Amount: decimal.NewFromInt(5)},
			},
		}
	}
}
