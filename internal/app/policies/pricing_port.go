package policies

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
)

// StayInput is what a guest picks on the hotel page.
type StayInput struct {
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	ServiceFeeFlat decimal.NullDecimal
	TaxRatePercent decimal.NullDecimal
}

// PricingPort prices one room of one hotel.
type PricingPort interface {
	Quote(ctx context.Context, hotel *hotels.Hotel, room hotels.Room, in StayInput) (stay.Quote, error)
}
