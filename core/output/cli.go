package output

import (
	"io"

	"eventcost/core/currency"
	"eventcost/core/ui"
)

// CLIFormatter renders for a terminal
type CLIFormatter struct {
	Currency currency.Config
	NoColor  bool

	// Verbose adds unrounded figures to the report
	Verbose bool
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	uw := ui.NewWriter(w, f.NoColor)
	if f.Verbose {
		uw.SetVerbosity(2)
	}

	if est := report.Estimate; est != nil {
		uw.Header("Estimated Investment")
		if est.Priced() {
			v := NewEstimateView(est, f.Currency)
			uw.Metrics(
				ui.Metric{Label: "Reference tier", Value: v.Tier},
				ui.Metric{Label: "Monthly estimate", Value: v.MonthlyFormatted},
				ui.Metric{Label: "Annual estimate", Value: v.AnnualFormatted},
			)
			uw.Info("%s", v.Summary)
			uw.Debug("schedule %s, %s million events, monthly %s unrounded", v.Schedule, v.Events, v.MonthlyCost)
		} else {
			uw.Warning("%s", Summary(est.Events, est.Tier, f.Currency))
		}
	}

	if len(report.Reference) > 0 {
		uw.Header("Price Table")
		uw.SubHeader("Monthly cost is the previous tier's fixed cost plus the excess millions of events at the tier rate.")
		uw.Line("")
		table := uw.NewTable("Tier", "Range (millions)", "Rate per excess million", "Monthly investment")
		for _, r := range report.Reference {
			table.AddRow(r.Label, r.Range, r.Rate, r.Formula)
		}
		table.Render()
	}

	return nil
}
