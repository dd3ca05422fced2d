package pricing

import (
	"context"
	"errors"
	"time"

	"hotelstay/internal/app/policies"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
)

var ErrPricingCalculatorMissing = errors.New("pricing: calculator missing")

// StayPricing bridges the stay calculator into the application pricing port.
// "Today" is the calendar day in Location at the moment of the call.
type StayPricing struct {
	Calculator *stay.Calculator
	Clock      func() time.Time
	Location   *time.Location
}

func (p StayPricing) Quote(ctx context.Context, hotel *domainhotels.Hotel, room domainhotels.Room, in policies.StayInput) (stay.Quote, error) {
	if p.Calculator == nil {
		return stay.Quote{}, ErrPricingCalculatorMissing
	}
	if err := ctx.Err(); err != nil {
		return stay.Quote{}, err
	}
	return p.Calculator.Quote(stay.Request{
		NightlyRate:    room.BasePrice,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Guests:         in.Guests,
		ServiceFeeFlat: in.ServiceFeeFlat,
		TaxRatePercent: in.TaxRatePercent,
	}, p.today())
}

func (p StayPricing) today() time.Time {
	now := time.Now()
	if p.Clock != nil {
		now = p.Clock()
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc)
}

var _ policies.PricingPort = StayPricing{}
