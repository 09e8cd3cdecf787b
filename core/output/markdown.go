package output

import (
	"fmt"
	"io"
	"strings"

	"eventcost/core/currency"
)

// MarkdownFormatter renders a report suitable for docs or PR comments
type MarkdownFormatter struct {
	Currency currency.Config
}

// Format implements Formatter
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder

	if est := report.Estimate; est != nil {
		v := NewEstimateView(est, f.Currency)
		b.WriteString("## Estimated Investment\n\n")
		if est.Priced() {
			b.WriteString("| Reference tier | Monthly estimate | Annual estimate |\n")
			b.WriteString("|---|---:|---:|\n")
			fmt.Fprintf(&b, "| %s | %s | %s |\n\n", v.Tier, v.MonthlyFormatted, v.AnnualFormatted)
		}
		fmt.Fprintf(&b, "%s\n", v.Summary)
	}

	if len(report.Reference) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## Price Table\n\n")
		b.WriteString("| Tier | Range (millions) | Rate per excess million | Monthly investment |\n")
		b.WriteString("|---|---|---:|---|\n")
		for _, r := range report.Reference {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Label, r.Range, r.Rate, escapeCell(r.Formula))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var cellEscaper = strings.NewReplacer("|", `\|`, "*", `\*`)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
