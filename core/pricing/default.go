package pricing

import "github.com/shopspring/decimal"

// DefaultName identifies the built-in schedule
const DefaultName = "analytics-360-discounted"

var defaultSchedule = MustSchedule(DefaultName, "BRL", []Tier{
	{Label: "A", ReferenceLabel: "A", LowerBound: dec("0"), UpperBound: bound("25"), BaseCost: dec("12525.09")},
	{Label: "A", ReferenceLabel: "B", LowerBound: dec("25"), UpperBound: bound("500"), BaseCost: dec("12525.09"), OverageRate: dec("52.73")},
	{Label: "B", ReferenceLabel: "C", LowerBound: dec("500"), UpperBound: bound("2500"), BaseCost: dec("37571.84"), OverageRate: dec("11.44")},
	{Label: "C", ReferenceLabel: "D", LowerBound: dec("2500"), UpperBound: bound("10000"), BaseCost: dec("60451.84"), OverageRate: dec("3.22")},
	{Label: "D", ReferenceLabel: "E", LowerBound: dec("10000"), UpperBound: bound("25000"), BaseCost: dec("84601.84"), OverageRate: dec("2.45")},
	{Label: "E", ReferenceLabel: "F", LowerBound: dec("25000"), BaseCost: dec("121351.84"), OverageRate: dec("2.45")},
})

// Default returns the built-in discounted proposal schedule
func Default() *Schedule {
	return defaultSchedule
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bound(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
