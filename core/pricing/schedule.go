package pricing

import (
	"github.com/shopspring/decimal"

	"eventcost/internal/errors"
)

// Schedule is an ordered, validated set of tiers. A Schedule is never
// mutated after construction and is safe for concurrent use.
type Schedule struct {
	name     string
	currency string
	tiers    []Tier
}

// NewSchedule validates tiers and returns a schedule.
//
// The tiers must be ordered by ascending bound, the first must start at 0,
// each must start where the previous one ends, only the last may be
// unbounded, rates must be non-negative, and each base cost must equal the
// previous tier's cost at its upper bound so the price has no jumps.
func NewSchedule(name, currency string, tiers []Tier) (*Schedule, error) {
	if len(tiers) == 0 {
		return nil, errors.Schedule("schedule has no tiers")
	}

	for i, t := range tiers {
		if t.Label == "" {
			return nil, errors.Newf(errors.TypeSchedule, "tier %d has no label", i)
		}
		if t.OverageRate.IsNegative() {
			return nil, errors.Newf(errors.TypeSchedule, "tier %d (%s) has a negative overage rate", i, t.Label)
		}
		if t.BaseCost.IsNegative() {
			return nil, errors.Newf(errors.TypeSchedule, "tier %d (%s) has a negative base cost", i, t.Label)
		}
		if t.Unbounded() && i != len(tiers)-1 {
			return nil, errors.Newf(errors.TypeSchedule, "tier %d (%s) is unbounded but not last", i, t.Label)
		}
		if !t.Unbounded() && !t.UpperBound.GreaterThan(t.LowerBound) {
			return nil, errors.Newf(errors.TypeSchedule, "tier %d (%s) has an empty range", i, t.Label)
		}

		if i == 0 {
			if !t.LowerBound.IsZero() {
				return nil, errors.Newf(errors.TypeSchedule, "first tier (%s) must start at 0", t.Label)
			}
			continue
		}

		prev := tiers[i-1]
		if !t.LowerBound.Equal(*prev.UpperBound) {
			return nil, errors.Newf(errors.TypeSchedule,
				"tier %d (%s) starts at %s but tier %d ends at %s", i, t.Label, t.LowerBound, i-1, prev.UpperBound)
		}
		if carried := prev.Cost(*prev.UpperBound); !t.BaseCost.Equal(carried) {
			return nil, errors.Newf(errors.TypeSchedule,
				"tier %d (%s) base cost %s does not continue previous tier cost %s", i, t.Label, t.BaseCost, carried).
				WithContext("expected", carried.String())
		}
	}

	if !tiers[len(tiers)-1].Unbounded() {
		return nil, errors.Schedule("last tier must be unbounded")
	}

	owned := cloneTiers(tiers)
	for i := range owned {
		if owned[i].ReferenceLabel == "" {
			owned[i].ReferenceLabel = owned[i].Label
		}
	}

	return &Schedule{name: name, currency: currency, tiers: owned}, nil
}

// MustSchedule is NewSchedule that panics on invalid tiers
func MustSchedule(name, currency string, tiers []Tier) *Schedule {
	s, err := NewSchedule(name, currency, tiers)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schedule name
func (s *Schedule) Name() string { return s.name }

// Currency returns the ISO code amounts are expressed in
func (s *Schedule) Currency() string { return s.currency }

// Tiers returns a copy of the tiers in ascending order
func (s *Schedule) Tiers() []Tier {
	return cloneTiers(s.tiers)
}

func cloneTiers(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	for i := range out {
		if out[i].UpperBound != nil {
			ub := *out[i].UpperBound
			out[i].UpperBound = &ub
		}
	}
	return out
}

// Compute prices a monthly volume in millions of events.
// Non-positive volumes return a zero cost and NoTier without any lookup.
func (s *Schedule) Compute(events decimal.Decimal) Result {
	if !events.IsPositive() {
		return Result{MonthlyCost: decimal.Zero, TierLabel: NoTier}
	}

	for _, t := range s.tiers {
		if t.Contains(events) {
			return Result{MonthlyCost: t.Cost(events), TierLabel: t.Label}
		}
	}

	// unreachable: the last tier is unbounded
	last := s.tiers[len(s.tiers)-1]
	return Result{MonthlyCost: last.Cost(events), TierLabel: last.Label}
}

// Compute prices a monthly volume against the default schedule
func Compute(events decimal.Decimal) Result {
	return Default().Compute(events)
}
