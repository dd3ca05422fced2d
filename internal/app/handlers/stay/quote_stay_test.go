package stay_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stayapp "hotelstay/internal/app/handlers/stay"
	domainhotels "hotelstay/internal/domain/hotels"
	domainstay "hotelstay/internal/domain/stay"
	"hotelstay/internal/infra/pricing"
	"hotelstay/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) *stayapp.QuoteStayHandler {
	t.Helper()
	factory := memory.NewFactory()
	ctx := context.Background()
	require.NoError(t, factory.HotelsRepo.Save(ctx, &domainhotels.Hotel{
		ID: "h1", Slug: "sea-view", Name: "Sea View", Status: domainhotels.StatusApproved,
		Rooms: []domainhotels.Room{{ID: "deluxe", BasePrice: decimal.NewFromInt(2500), MaxOccupancy: 2}},
	}))
	require.NoError(t, factory.HotelsRepo.Save(ctx, &domainhotels.Hotel{
		ID: "h2", Slug: "hidden", Name: "Hidden", Status: domainhotels.StatusPending,
		Rooms: []domainhotels.Room{{ID: "std", BasePrice: decimal.NewFromInt(1000)}},
	}))
	return &stayapp.QuoteStayHandler{
		UoWFactory: factory,
		Pricing: pricing.StayPricing{
			Calculator: domainstay.NewCalculator(domainstay.Config{}),
			Clock:      func() time.Time { return day(2025, 12, 1) },
		},
	}
}

func TestQuoteStay(t *testing.T) {
	h := setup(t)
	q, err := h.Handle(context.Background(), stayapp.QuoteStayQuery{
		HotelID: "h1", RoomID: "deluxe",
		CheckIn: day(2025, 12, 20), CheckOut: day(2025, 12, 23), Guests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, "2025-12-20", q.CheckIn)
	assert.True(t, q.BaseAmount.Amount.Equal(decimal.NewFromInt(7500)))
	assert.True(t, q.TaxAmount.Amount.IsZero())
	assert.True(t, q.TotalAmount.Amount.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, "INR", q.TotalAmount.Currency)
}

func TestQuoteStayOverrides(t *testing.T) {
	h := setup(t)
	q, err := h.Handle(context.Background(), stayapp.QuoteStayQuery{
		HotelID: "h1", RoomID: "deluxe",
		CheckIn: day(2025, 12, 20), CheckOut: day(2025, 12, 21), Guests: 1,
		ServiceFeeFlat: decimal.NewNullDecimal(decimal.NewFromInt(200)),
		TaxRatePercent: decimal.NewNullDecimal(decimal.NewFromInt(12)),
	})
	require.NoError(t, err)
	// (2500 + 200) * 12% = 324
	assert.True(t, q.TaxAmount.Amount.Equal(decimal.NewFromInt(324)))
	assert.True(t, q.TotalAmount.Amount.Equal(decimal.NewFromInt(3024)))
}

func TestQuoteStayErrors(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	base := stayapp.QuoteStayQuery{HotelID: "h1", RoomID: "deluxe", CheckIn: day(2025, 12, 20), CheckOut: day(2025, 12, 22), Guests: 2}

	q := base
	q.HotelID = "h2"
	_, err := h.Handle(ctx, q)
	assert.ErrorIs(t, err, domainhotels.ErrHotelNotFound)

	q = base
	q.HotelID = "nope"
	_, err = h.Handle(ctx, q)
	assert.ErrorIs(t, err, domainhotels.ErrHotelNotFound)

	q = base
	q.RoomID = "suite"
	_, err = h.Handle(ctx, q)
	assert.ErrorIs(t, err, domainhotels.ErrRoomNotFound)

	q = base
	q.Guests = 3
	_, err = h.Handle(ctx, q)
	assert.ErrorIs(t, err, domainhotels.ErrOccupancyLimit)
}

func TestQuoteStayViolationsComeFirst(t *testing.T) {
	h := setup(t)
	_, err := h.Handle(context.Background(), stayapp.QuoteStayQuery{
		HotelID: "h1", RoomID: "deluxe",
		CheckIn: day(2025, 11, 1), Guests: 5,
	})
	invalid, ok := domainstay.AsInvalidRequest(err)
	require.True(t, ok)
	assert.Equal(t, []domainstay.Violation{domainstay.CheckOutRequired, domainstay.CheckInInPast}, invalid.Violations)
}

func TestQuoteStayQueryValidate(t *testing.T) {
	assert.ErrorIs(t, stayapp.QuoteStayQuery{RoomID: "r"}.Validate(), stayapp.ErrHotelRequired)
	assert.ErrorIs(t, stayapp.QuoteStayQuery{HotelID: "h"}.Validate(), stayapp.ErrRoomRequired)
	assert.NoError(t, stayapp.QuoteStayQuery{HotelID: "h", RoomID: "r"}.Validate())
}
