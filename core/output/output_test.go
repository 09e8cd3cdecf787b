package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventcost/core/currency"
	"eventcost/core/estimate"
	"eventcost/core/pricing"
	"eventcost/internal/errors"
)

func estimateFor(t *testing.T, events int64) *estimate.Estimate {
	t.Helper()
	est, err := estimate.New(nil, zap.NewNop()).Estimate(decimal.NewFromInt(events))
	require.NoError(t, err)
	return est
}

func TestReferenceTableDefault(t *testing.T) {
	rows := ReferenceTable(pricing.Default(), currency.BRL)

	want := []ReferenceRow{
		{"A", "0-25", "-", "Fixed R$ 12.525,09"},
		{"B", "25-500", "R$ 52,73", "R$ 12.525,09 + (events - 25M) * R$ 52,73"},
		{"C", "500-2.500", "R$ 11,44", "R$ 37.571,84 + (events - 500M) * R$ 11,44"},
		{"D", "2.500-10.000", "R$ 3,22", "R$ 60.451,84 + (events - 2.500M) * R$ 3,22"},
		{"E", "10.000-25.000", "R$ 2,45", "R$ 84.601,84 + (events - 10.000M) * R$ 2,45"},
		{"F", "> 25.000", "R$ 2,45", "R$ 121.351,84 + (events - 25.000M) * R$ 2,45"},
	}
	assert.Equal(t, want, rows)
}

func TestSummary(t *testing.T) {
	assert.Equal(t,
		"For 3.000 million events, the investment is calculated using tier C.",
		Summary(decimal.NewFromInt(3000), "C", currency.BRL))
	assert.Equal(t,
		"Enter a monthly event volume greater than zero to calculate.",
		Summary(decimal.Zero, pricing.NoTier, currency.BRL))
}

func TestNewEstimateView(t *testing.T) {
	v := NewEstimateView(estimateFor(t, 3000), currency.BRL)
	assert.Equal(t, "3000", v.Events)
	assert.Equal(t, "C", v.Tier)
	assert.Equal(t, "62061.84", v.MonthlyCost)
	assert.Equal(t, "744742.08", v.AnnualCost)
	assert.Equal(t, "R$ 62.061,84", v.MonthlyFormatted)
	assert.Equal(t, "R$ 744.742,08", v.AnnualFormatted)
	assert.Equal(t, "BRL", v.Currency)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("html", currency.BRL, true)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))

	for _, f := range []Format{FormatCLI, FormatJSON, FormatMarkdown} {
		fm, err := New(f, currency.BRL, true)
		require.NoError(t, err)
		assert.Equal(t, f, fm.Format())
	}
}

func TestCLIRender(t *testing.T) {
	f, err := New(FormatCLI, currency.BRL, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, &Report{
		Estimate:  estimateFor(t, 30000),
		Reference: ReferenceTable(pricing.Default(), currency.BRL),
	}))

	out := buf.String()
	assert.Contains(t, out, "R$ 133.601,84")
	assert.Contains(t, out, "R$ 1.603.222,08")
	assert.Contains(t, out, "using tier E")
	assert.Contains(t, out, "> 25.000")
	assert.Contains(t, out, "Fixed R$ 12.525,09")
}

func TestCLIRenderZeroWarns(t *testing.T) {
	f, err := New(FormatCLI, currency.BRL, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, &Report{Estimate: estimateFor(t, 0)}))
	assert.Contains(t, buf.String(), "⚠ Enter a monthly event volume greater than zero")
	assert.NotContains(t, buf.String(), "Annual estimate")
}

func TestJSONRender(t *testing.T) {
	f, err := New(FormatJSON, currency.BRL, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, &Report{Estimate: estimateFor(t, 25000)}))

	var got struct {
		Estimate  EstimateView   `json:"estimate"`
		Reference []ReferenceRow `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "D", got.Estimate.Tier)
	assert.Equal(t, "121351.84", got.Estimate.MonthlyCost)
	assert.Equal(t, "R$ 1.456.222,08", got.Estimate.AnnualFormatted)
	assert.Empty(t, got.Reference)
}

func TestMarkdownRender(t *testing.T) {
	f, err := New(FormatMarkdown, currency.BRL, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, &Report{
		Estimate:  estimateFor(t, 500),
		Reference: ReferenceTable(pricing.Default(), currency.BRL),
	}))

	out := buf.String()
	assert.Contains(t, out, "| A | R$ 37.571,84 | R$ 450.862,08 |")
	assert.Contains(t, out, `| B | 25-500 | R$ 52,73 | R$ 12.525,09 + (events - 25M) \* R$ 52,73 |`)
}
