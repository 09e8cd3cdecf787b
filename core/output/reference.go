package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"eventcost/core/currency"
	"eventcost/core/pricing"
)

// ReferenceRow is one line of the published price table
type ReferenceRow struct {
	Label   string `json:"label"`
	Range   string `json:"range"`
	Rate    string `json:"rate"`
	Formula string `json:"formula"`
}

// ReferenceTable describes every tier of s. It does not depend on any
// computed estimate.
func ReferenceTable(s *pricing.Schedule, c currency.Config) []ReferenceRow {
	tiers := s.Tiers()
	rows := make([]ReferenceRow, 0, len(tiers))
	for _, t := range tiers {
		row := ReferenceRow{Label: t.ReferenceLabel}

		if t.Unbounded() {
			row.Range = "> " + volume(t.LowerBound, c)
		} else {
			row.Range = volume(t.LowerBound, c) + "-" + volume(*t.UpperBound, c)
		}

		if t.Flat() {
			row.Rate = "-"
			row.Formula = "Fixed " + currency.Format(t.BaseCost, c)
		} else {
			row.Rate = currency.Format(t.OverageRate, c)
			row.Formula = fmt.Sprintf("%s + (events - %sM) * %s",
				currency.Format(t.BaseCost, c), volume(t.LowerBound, c), row.Rate)
		}

		rows = append(rows, row)
	}
	return rows
}

// Summary is the one-line explanation shown under an estimate
func Summary(events decimal.Decimal, tier string, c currency.Config) string {
	if !events.IsPositive() || tier == pricing.NoTier {
		return "Enter a monthly event volume greater than zero to calculate."
	}
	return fmt.Sprintf("For %s million events, the investment is calculated using tier %s.",
		currency.FormatNumber(events, c, 0), tier)
}

func volume(d decimal.Decimal, c currency.Config) string {
	var places int32
	if exp := d.Exponent(); exp < 0 && !d.IsInteger() {
		places = -exp
	}
	return currency.FormatNumber(d, c, places)
}
