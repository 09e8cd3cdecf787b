// Package currency formats monetary amounts for display.
// Formatting is a pure function of a Config; nothing here touches
// process-wide locale state.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"eventcost/internal/errors"
)

// Position places the currency symbol relative to the number
type Position string

const (
	// Prefix renders "R$ 1.234,56"
	Prefix Position = "prefix"

	// Suffix renders "1.234,56 R$"
	Suffix Position = "suffix"
)

// Config describes how amounts are written
type Config struct {
	Symbol            string   `json:"symbol" yaml:"symbol"`
	SymbolPosition    Position `json:"symbol_position" yaml:"symbol_position"`
	SymbolSpacing     bool     `json:"symbol_spacing" yaml:"symbol_spacing"`
	GroupingSeparator string   `json:"grouping_separator" yaml:"grouping_separator"`
	DecimalSeparator  string   `json:"decimal_separator" yaml:"decimal_separator"`
	Places            int32    `json:"places" yaml:"places"`
}

// BRL is the pt-BR convention: R$ 12.525,09
var BRL = Config{
	Symbol:            "R$",
	SymbolPosition:    Prefix,
	SymbolSpacing:     true,
	GroupingSeparator: ".",
	DecimalSeparator:  ",",
	Places:            2,
}

// Validate checks the config can produce unambiguous output
func (c Config) Validate() error {
	if c.Places < 0 || c.Places > 8 {
		return errors.Newf(errors.TypeFormat, "places must be between 0 and 8, got %d", c.Places)
	}
	if c.Places > 0 && c.DecimalSeparator == "" {
		return errors.New(errors.TypeFormat, "decimal separator is required when places > 0")
	}
	if c.GroupingSeparator != "" && c.GroupingSeparator == c.DecimalSeparator {
		return errors.Newf(errors.TypeFormat, "grouping and decimal separators are both %q", c.GroupingSeparator)
	}
	switch c.SymbolPosition {
	case Prefix, Suffix:
	default:
		return errors.Newf(errors.TypeFormat, "unknown symbol position %q", c.SymbolPosition)
	}
	return nil
}

// Format renders amount as currency, rounding half away from zero to
// c.Places decimal places.
func Format(amount decimal.Decimal, c Config) string {
	num, negative := number(amount, c, c.Places)

	sym := c.Symbol
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	switch {
	case sym == "":
		b.WriteString(num)
	case c.SymbolPosition == Suffix:
		b.WriteString(num)
		if c.SymbolSpacing {
			b.WriteByte(' ')
		}
		b.WriteString(sym)
	default:
		b.WriteString(sym)
		if c.SymbolSpacing {
			b.WriteByte(' ')
		}
		b.WriteString(num)
	}
	return b.String()
}

// FormatNumber renders amount with the config's separators but no symbol
func FormatNumber(amount decimal.Decimal, c Config, places int32) string {
	num, negative := number(amount, c, places)
	if negative {
		return "-" + num
	}
	return num
}

func number(amount decimal.Decimal, c Config, places int32) (string, bool) {
	if places < 0 {
		places = 0
	}
	rounded := amount.Round(places)
	negative := rounded.IsNegative()

	fixed := rounded.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	out := group(intPart, c.GroupingSeparator)
	if places > 0 {
		out += c.DecimalSeparator + fracPart
	}
	return out, negative
}

func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
