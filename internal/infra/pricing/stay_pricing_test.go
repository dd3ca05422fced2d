package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/app/policies"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayPricingUsesRoomRate(t *testing.T) {
	p := StayPricing{
		Calculator: stay.NewCalculator(stay.Config{}),
		Clock:      func() time.Time { return day(2025, 1, 1) },
	}
	room := domainhotels.Room{ID: "deluxe", BasePrice: decimal.NewFromInt(3000)}
	q, err := p.Quote(context.Background(), &domainhotels.Hotel{ID: "h1"}, room, policies.StayInput{
		CheckIn:  day(2025, 1, 10),
		CheckOut: day(2025, 1, 13),
		Guests:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.True(t, q.BaseAmount.Amount.Equal(decimal.NewFromInt(9000)))
}

func TestStayPricingTodayFollowsLocation(t *testing.T) {
	// 20:00 UTC on the 9th is already the 10th east of UTC.
	now := time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC)
	east := time.FixedZone("UTC+5:30", 5*3600+1800)
	in := policies.StayInput{CheckIn: day(2025, 1, 9), CheckOut: day(2025, 1, 11), Guests: 1}
	room := domainhotels.Room{BasePrice: decimal.NewFromInt(1000)}
	calc := stay.NewCalculator(stay.Config{})

	_, err := StayPricing{Calculator: calc, Clock: func() time.Time { return now }}.Quote(context.Background(), nil, room, in)
	require.NoError(t, err)

	_, err = StayPricing{Calculator: calc, Clock: func() time.Time { return now }, Location: east}.Quote(context.Background(), nil, room, in)
	assert.ErrorIs(t, err, stay.ErrInvalidRequest)
}

func TestStayPricingRequiresCalculator(t *testing.T) {
	_, err := StayPricing{}.Quote(context.Background(), nil, domainhotels.Room{}, policies.StayInput{})
	assert.ErrorIs(t, err, ErrPricingCalculatorMissing)
}
