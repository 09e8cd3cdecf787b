// Package pricing - Tiered event-volume pricing
// Volumes are monthly events expressed in millions. Amounts use exact decimal
// arithmetic; rounding belongs to the presentation layer.
package pricing

import "github.com/shopspring/decimal"

// NoTier is the label returned for non-positive volumes
const NoTier = "N/A"

// Tier is one contiguous volume range of a schedule
type Tier struct {
	// Label is the tier reported by the calculator
	Label string `json:"label"`

	// ReferenceLabel is the label shown in the reference price table.
	// It may differ from Label: the published table numbers its rows A-F
	// while the calculator reports A-E.
	ReferenceLabel string `json:"reference_label"`

	// LowerBound is where overage starts counting (0 for the first tier)
	LowerBound decimal.Decimal `json:"lower_bound"`

	// UpperBound is the inclusive end of the range; nil means unbounded
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`

	// BaseCost is the cost at LowerBound
	BaseCost decimal.Decimal `json:"base_cost"`

	// OverageRate is charged per million events above LowerBound
	OverageRate decimal.Decimal `json:"overage_rate"`
}

// Unbounded reports whether the tier has no upper bound
func (t Tier) Unbounded() bool {
	return t.UpperBound == nil
}

// Flat reports whether the tier charges only its base cost
func (t Tier) Flat() bool {
	return t.OverageRate.IsZero()
}

// Contains reports whether events falls at or below the tier's upper bound
func (t Tier) Contains(events decimal.Decimal) bool {
	return t.Unbounded() || events.LessThanOrEqual(*t.UpperBound)
}

// Cost returns BaseCost + (events - LowerBound) * OverageRate
func (t Tier) Cost(events decimal.Decimal) decimal.Decimal {
	if t.Flat() {
		return t.BaseCost
	}
	return t.BaseCost.Add(events.Sub(t.LowerBound).Mul(t.OverageRate))
}

// Result is the outcome of pricing one monthly volume
type Result struct {
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	TierLabel   string          `json:"tier"`
}

// Priced reports whether a tier was selected
func (r Result) Priced() bool {
	return r.TierLabel != NoTier
}
