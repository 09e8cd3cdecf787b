// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"

	"eventcost/core/currency"
	"eventcost/core/estimate"
	"eventcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is what a formatter renders. Either part may be absent.
type Report struct {
	// Estimate is the priced volume
	Estimate *estimate.Estimate

	// Reference is the price table
	Reference []ReferenceRow
}

// EstimateView is an estimate with display strings attached
type EstimateView struct {
	Events           string `json:"events"`
	Tier             string `json:"tier"`
	MonthlyCost      string `json:"monthly_cost"`
	AnnualCost       string `json:"annual_cost"`
	MonthlyFormatted string `json:"monthly_formatted"`
	AnnualFormatted  string `json:"annual_formatted"`
	Currency         string `json:"currency"`
	Schedule         string `json:"schedule"`
	Summary          string `json:"summary"`
}

// NewEstimateView formats est with c
func NewEstimateView(est *estimate.Estimate, c currency.Config) EstimateView {
	return EstimateView{
		Events:           est.Events.String(),
		Tier:             est.Tier,
		MonthlyCost:      est.MonthlyCost.String(),
		AnnualCost:       est.AnnualCost.String(),
		MonthlyFormatted: currency.Format(est.MonthlyCost, c),
		AnnualFormatted:  currency.Format(est.AnnualCost, c),
		Currency:         est.Currency,
		Schedule:         est.Schedule,
		Summary:          Summary(est.Events, est.Tier, c),
	}
}

// New returns the formatter for f
func New(f Format, c currency.Config, noColor bool) (Formatter, error) {
	switch f {
	case FormatCLI:
		return &CLIFormatter{Currency: c, NoColor: noColor}, nil
	case FormatJSON:
		return &JSONFormatter{Currency: c, Indent: true}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{Currency: c}, nil
	default:
		return nil, errors.Newf(errors.TypeNotSupported, "unknown output format %q", f)
	}
}
