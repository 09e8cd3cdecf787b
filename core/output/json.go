package output

import (
	"encoding/json"
	"io"

	"eventcost/core/currency"
)

// JSONFormatter renders machine-readable output
type JSONFormatter struct {
	Currency currency.Config
	Indent   bool
}

type jsonReport struct {
	Estimate  *EstimateView  `json:"estimate,omitempty"`
	Reference []ReferenceRow `json:"reference,omitempty"`
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	out := jsonReport{Reference: report.Reference}
	if report.Estimate != nil {
		v := NewEstimateView(report.Estimate, f.Currency)
		out.Estimate = &v
	}

	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
