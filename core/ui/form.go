package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"eventcost/core/estimate"
)

// EventsForm asks for a monthly event volume in millions
type EventsForm struct {
	form  *huh.Form
	input string
}

// NewEventsForm builds the form, pre-filled with initial when it is positive
func NewEventsForm(initial decimal.Decimal) *EventsForm {
	f := &EventsForm{}
	if initial.IsPositive() {
		f.input = initial.String()
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly event volume (millions)").
				Description("Total events sent per month, in millions.").
				Placeholder("0").
				Value(&f.input).
				Validate(ValidateEvents),
		),
	)
	return f
}

// Form returns the underlying huh.Form for Bubble Tea embedding
func (f *EventsForm) Form() *huh.Form { return f.form }

// Run shows the form and returns the parsed volume
func (f *EventsForm) Run(ctx context.Context) (decimal.Decimal, error) {
	if err := f.form.RunWithContext(ctx); err != nil {
		return decimal.Zero, err
	}
	return f.Value()
}

// Value parses the current input; an empty field means zero
func (f *EventsForm) Value() (decimal.Decimal, error) {
	if strings.TrimSpace(f.input) == "" {
		return decimal.Zero, nil
	}
	return estimate.ParseEvents(f.input)
}

// ValidateEvents accepts non-negative volumes and an empty field
func ValidateEvents(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := estimate.ParseEvents(s)
	return err
}

// ConfirmAgain asks whether to price another volume
func ConfirmAgain(ctx context.Context) (bool, error) {
	again := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Price another volume?").
				Affirmative("Yes").
				Negative("No").
				Value(&again),
		),
	).RunWithContext(ctx)
	return again, err
}
