// Package stay validates candidate stays and prices them.
//
// Everything here is pure: the calculator reads no clock, touches no storage
// and keeps no state between calls, so a single Calculator can be shared by
// every request goroutine.
package stay

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/shared/money"
)

// Request is a candidate stay. A zero CheckIn or CheckOut means the date was
// not supplied (or did not parse).
type Request struct {
	NightlyRate decimal.Decimal
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int

	// Optional overrides of the calculator defaults.
	ServiceFeeFlat decimal.NullDecimal
	TaxRatePercent decimal.NullDecimal
	GuestPolicy    GuestPolicy
}

// Quote is the priced breakdown of a valid Request.
type Quote struct {
	Nights          int             `json:"nights"`
	CheckIn         time.Time       `json:"check_in"`
	CheckOut        time.Time       `json:"check_out"`
	Guests          int             `json:"guests"`
	NightlyRate     money.Money     `json:"nightly_rate"`
	GuestPolicy     string          `json:"guest_policy"`
	GuestMultiplier decimal.Decimal `json:"guest_multiplier"`
	BaseAmount      money.Money     `json:"base_amount"`
	ServiceFee      money.Money     `json:"service_fee"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	TaxAmount       money.Money     `json:"tax_amount"`
	TotalAmount     money.Money     `json:"total_amount"`
}

// Equal compares quotes numerically; decimal values with different exponents
// but equal value are considered the same.
func (q Quote) Equal(other Quote) bool {
	return q.Nights == other.Nights &&
		q.CheckIn.Equal(other.CheckIn) &&
		q.CheckOut.Equal(other.CheckOut) &&
		q.Guests == other.Guests &&
		q.GuestPolicy == other.GuestPolicy &&
		q.GuestMultiplier.Equal(other.GuestMultiplier) &&
		q.NightlyRate.Equal(other.NightlyRate) &&
		q.BaseAmount.Equal(other.BaseAmount) &&
		q.ServiceFee.Equal(other.ServiceFee) &&
		q.TaxRatePercent.Equal(other.TaxRatePercent) &&
		q.TaxAmount.Equal(other.TaxAmount) &&
		q.TotalAmount.Equal(other.TotalAmount)
}
