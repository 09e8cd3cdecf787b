package pricing

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"eventcost/internal/errors"
)

// scheduleFile is the HCL shape of a schedule:
//
//	name     = "analytics-360-discounted"
//	currency = "BRL"
//
//	tier "A" {
//	  reference_label = "B"
//	  lower_bound     = 25
//	  upper_bound     = 500
//	  base_cost       = 12525.09
//	  overage_rate    = 52.73
//	}
type scheduleFile struct {
	Name     string      `hcl:"name,optional"`
	Currency string      `hcl:"currency,optional"`
	Tiers    []tierBlock `hcl:"tier,block"`
}

// Numeric attributes are evaluated by decimalAttr to stay exact.
type tierBlock struct {
	Label          string         `hcl:"label,label"`
	ReferenceLabel string         `hcl:"reference_label,optional"`
	LowerBound     hcl.Expression `hcl:"lower_bound"`
	UpperBound     hcl.Expression `hcl:"upper_bound,optional"`
	BaseCost       hcl.Expression `hcl:"base_cost"`
	OverageRate    hcl.Expression `hcl:"overage_rate,optional"`
}

// LoadScheduleFile reads and validates a schedule from an HCL (or HCL JSON) file
func LoadScheduleFile(path string) (*Schedule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "reading schedule %s", path)
	}
	return ParseSchedule(path, src)
}

// ParseSchedule decodes schedule source. The filename suffix selects the
// syntax: ".hcl" for native HCL, ".json" for HCL JSON.
func ParseSchedule(filename string, src []byte) (*Schedule, error) {
	var f scheduleFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Parsing(filename, err)
	}

	if f.Name == "" {
		f.Name = filename
	}
	if f.Currency == "" {
		f.Currency = "BRL"
	}

	tiers := make([]Tier, 0, len(f.Tiers))
	for _, b := range f.Tiers {
		t, err := b.tier(filename)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}

	s, err := NewSchedule(f.Name, f.Currency, tiers)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeSchedule, err, "invalid schedule %s", filename)
	}
	return s, nil
}

func (b tierBlock) tier(filename string) (Tier, error) {
	t := Tier{Label: b.Label, ReferenceLabel: b.ReferenceLabel}

	fields := []struct {
		name     string
		expr     hcl.Expression
		required bool
		set      func(decimal.Decimal)
	}{
		{"lower_bound", b.LowerBound, true, func(d decimal.Decimal) { t.LowerBound = d }},
		{"upper_bound", b.UpperBound, false, func(d decimal.Decimal) { t.UpperBound = &d }},
		{"base_cost", b.BaseCost, true, func(d decimal.Decimal) { t.BaseCost = d }},
		{"overage_rate", b.OverageRate, false, func(d decimal.Decimal) { t.OverageRate = d }},
	}
	for _, f := range fields {
		d, ok, err := decimalAttr(f.expr)
		if err != nil {
			return Tier{}, errors.Wrapf(errors.TypeParsing, err, "%s: tier %q: %s", filename, b.Label, f.name)
		}
		if !ok {
			if f.required {
				return Tier{}, errors.Newf(errors.TypeParsing, "%s: tier %q: %s is required", filename, b.Label, f.name)
			}
			continue
		}
		f.set(d)
	}
	return t, nil
}

// decimalAttr evaluates a constant numeric expression exactly. Numeric
// strings are accepted too. ok is false for an absent or null attribute.
func decimalAttr(expr hcl.Expression) (decimal.Decimal, bool, error) {
	if expr == nil {
		return decimal.Zero, false, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, false, diags
	}
	if v.IsNull() {
		return decimal.Zero, false, nil
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return decimal.Zero, false, err
	}
	if !n.IsWhollyKnown() || n.IsNull() {
		return decimal.Zero, false, errors.New(errors.TypeParsing, "not a constant number")
	}
	d, err := decimal.NewFromString(n.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}
