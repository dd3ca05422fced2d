package stay

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/shared/money"
)

// Config holds calculator defaults. The zero value is usable: no fee, no tax,
// half-up rounding, flat guest policy, whole-rupee INR.
type Config struct {
	ServiceFeeFlat decimal.Decimal
	TaxRatePercent decimal.Decimal
	Rounding       money.RoundingMode
	GuestPolicy    GuestPolicy
	Currency       string
	// MinorUnitPlaces is how many decimal places the currency is accounted in.
	MinorUnitPlaces int32
}

const DefaultCurrency = "INR"

// Calculator validates and prices stays. It is safe for concurrent use.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.Rounding == "" {
		cfg.Rounding = money.RoundHalfUp
	}
	if cfg.GuestPolicy == nil {
		cfg.GuestPolicy = FlatPolicy{}
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.MinorUnitPlaces < 0 {
		cfg.MinorUnitPlaces = 0
	}
	return &Calculator{cfg: cfg}
}

// Config returns the effective defaults.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Validate checks every rule independently and reports all violations.
func (c *Calculator) Validate(req Request, today time.Time) ValidationResult {
	var out []Violation

	hasIn := !req.CheckIn.IsZero()
	hasOut := !req.CheckOut.IsZero()
	if !hasIn {
		out = append(out, CheckInRequired)
	}
	if !hasOut {
		out = append(out, CheckOutRequired)
	}
	if hasIn && hasOut && daterange.DaysBetween(req.CheckIn, req.CheckOut) <= 0 {
		out = append(out, CheckOutBeforeCheckIn)
	}
	if hasIn && daterange.DaysBetween(today, req.CheckIn) < 0 {
		out = append(out, CheckInInPast)
	}
	if req.Guests < 1 {
		out = append(out, GuestCountInvalid)
	}
	if !req.NightlyRate.IsPositive() {
		out = append(out, NightlyRateInvalid)
	}
	if req.ServiceFeeFlat.Valid && req.ServiceFeeFlat.Decimal.IsNegative() {
		out = append(out, ServiceFeeInvalid)
	}
	if req.TaxRatePercent.Valid && req.TaxRatePercent.Decimal.IsNegative() {
		out = append(out, TaxRateInvalid)
	}
	return ValidationResult{Violations: out}
}

// Quote prices a valid request. Invalid requests yield *InvalidRequestError
// and a zero Quote; no partial numbers are ever returned.
func (c *Calculator) Quote(req Request, today time.Time) (Quote, error) {
	if err := c.Validate(req, today).Err(); err != nil {
		return Quote{}, err
	}

	policy := c.cfg.GuestPolicy
	if req.GuestPolicy != nil {
		policy = req.GuestPolicy
	}
	feeFlat := c.cfg.ServiceFeeFlat
	if req.ServiceFeeFlat.Valid {
		feeFlat = req.ServiceFeeFlat.Decimal
	}
	taxRate := c.cfg.TaxRatePercent
	if req.TaxRatePercent.Valid {
		taxRate = req.TaxRatePercent.Decimal
	}

	cur := c.cfg.Currency
	nights := daterange.DaysBetween(req.CheckIn, req.CheckOut)
	multiplier := policy.Multiplier(req.Guests)

	rate := money.Money{Amount: req.NightlyRate, Currency: cur}
	base := rate.MulInt(int64(nights)).Mul(multiplier)
	fee := money.Money{Amount: feeFlat, Currency: cur}

	// Only the tax is rounded; base and fee stay at full precision.
	taxable := money.Money{Amount: base.Amount.Add(fee.Amount), Currency: cur}
	tax := money.Money{Amount: taxable.Amount.Mul(taxRate).Shift(-2), Currency: cur}.
		Round(c.cfg.MinorUnitPlaces, c.cfg.Rounding)
	total := money.Money{Amount: taxable.Amount.Add(tax.Amount), Currency: cur}

	return Quote{
		Nights:          nights,
		CheckIn:         daterange.Day(req.CheckIn),
		CheckOut:        daterange.Day(req.CheckOut),
		Guests:          req.Guests,
		NightlyRate:     rate,
		GuestPolicy:     policy.Name(),
		GuestMultiplier: multiplier,
		BaseAmount:      base,
		ServiceFee:      fee,
		TaxRatePercent:  taxRate,
		TaxAmount:       tax,
		TotalAmount:     total,
	}, nil
}
