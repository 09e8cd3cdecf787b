// Package estimate turns a monthly event volume into monthly and annual costs.
package estimate

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eventcost/core/pricing"
	"eventcost/internal/errors"
	"eventcost/internal/logging"
)

// MonthsPerYear annualizes a monthly cost
var MonthsPerYear = decimal.NewFromInt(12)

// Input limits. Volumes are in millions, so MaxEvents is 10^18 events.
const (
	MaxInputLength   = 64
	MaxDecimalPlaces = 12
	maxIntegerDigits = 13
)

// MaxEvents is the largest volume accepted, in millions
var MaxEvents = decimal.New(1, 12)

// Estimate is the priced outcome for one volume
type Estimate struct {
	// Events is the monthly volume in millions
	Events decimal.Decimal `json:"events"`

	// Tier is the calculator tier label, or pricing.NoTier
	Tier string `json:"tier"`

	// MonthlyCost is unrounded
	MonthlyCost decimal.Decimal `json:"monthly_cost"`

	// AnnualCost is MonthlyCost * 12, unrounded
	AnnualCost decimal.Decimal `json:"annual_cost"`

	// Currency is the schedule's ISO code
	Currency string `json:"currency"`

	// Schedule names the schedule used
	Schedule string `json:"schedule"`
}

// Priced reports whether the volume selected a tier
func (e *Estimate) Priced() bool {
	return e.Tier != pricing.NoTier
}

// Estimator prices volumes against one schedule. It holds no mutable state
// and may be shared across goroutines.
type Estimator struct {
	schedule *pricing.Schedule
	logger   *zap.Logger
}

// New creates an estimator. A nil schedule uses pricing.Default(); a nil
// logger uses the global one.
func New(schedule *pricing.Schedule, logger *zap.Logger) *Estimator {
	if schedule == nil {
		schedule = pricing.Default()
	}
	return &Estimator{
		schedule: schedule,
		logger:   logging.Or(logger).Named("estimate"),
	}
}

// Schedule returns the schedule in use
func (e *Estimator) Schedule() *pricing.Schedule {
	return e.schedule
}

// Estimate prices a monthly volume. Negative volumes are rejected here;
// zero is accepted and yields the unpriced sentinel.
func (e *Estimator) Estimate(events decimal.Decimal) (*Estimate, error) {
	events, err := checkVolume(events)
	if err != nil {
		return nil, err
	}

	r := e.schedule.Compute(events)
	est := &Estimate{
		Events:      events,
		Tier:        r.TierLabel,
		MonthlyCost: r.MonthlyCost,
		AnnualCost:  r.MonthlyCost.Mul(MonthsPerYear),
		Currency:    e.schedule.Currency(),
		Schedule:    e.schedule.Name(),
	}

	e.logger.Debug("priced volume",
		logging.Amount("events", events),
		zap.String("tier", est.Tier),
		logging.Amount("monthly_cost", est.MonthlyCost),
	)
	return est, nil
}

// EstimateString parses a volume typed by a user and prices it
func (e *Estimator) EstimateString(s string) (*Estimate, error) {
	events, err := ParseEvents(s)
	if err != nil {
		return nil, err
	}
	return e.Estimate(events)
}

// ParseEvents parses a volume in millions. Either "." or "," is accepted as
// the decimal separator, but not both.
func ParseEvents(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.Input("event volume is required")
	}
	if len(s) > MaxInputLength {
		return decimal.Zero, errors.Newf(errors.TypeInput, "event volume is longer than %d characters", MaxInputLength)
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			return decimal.Zero, errors.Newf(errors.TypeInput, "ambiguous event volume %q: use a single decimal separator", s)
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	events, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.TypeInput, err, "invalid event volume %q", s)
	}
	return checkVolume(events)
}

// checkVolume bounds a volume using only its coefficient and exponent, so
// no rescaling happens before the bounds hold.
func checkVolume(events decimal.Decimal) (decimal.Decimal, error) {
	if events.IsZero() {
		return decimal.Zero, nil
	}
	if events.IsNegative() {
		return decimal.Zero, errors.Input("event volume must not be negative").WithContext("events", events.String())
	}
	exp := events.Exponent()
	if exp < -MaxDecimalPlaces {
		return decimal.Zero, errors.Newf(errors.TypeInput, "event volume has more than %d decimal places", MaxDecimalPlaces)
	}
	if int64(events.NumDigits())+int64(exp) > maxIntegerDigits || events.GreaterThan(MaxEvents) {
		return decimal.Zero, errors.Newf(errors.TypeInput, "event volume exceeds %s million", MaxEvents.String())
	}
	return events, nil
}
