package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/stay"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecimal128KeepsScale(t *testing.T) {
	for _, raw := range []string{"0", "2500", "1343.5", "0.0001", "-12.75"} {
		d := decimal.RequireFromString(raw)
		back, err := fromDecimal128(toDecimal128(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(back), raw)
	}
}

func TestBookingDocumentPreservesQuote(t *testing.T) {
	calc := stay.NewCalculator(stay.Config{
		ServiceFeeFlat: decimal.NewFromInt(200),
		TaxRatePercent: decimal.NewFromInt(12),
	})
	q, err := calc.Quote(stay.Request{
		NightlyRate: decimal.NewFromInt(999),
		CheckIn:     day(2025, 12, 20),
		CheckOut:    day(2025, 12, 21),
		Guests:      2,
	}, day(2025, 12, 1))
	require.NoError(t, err)

	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID: "b1", HotelID: "h1", RoomID: "r1",
		Guest:     domainbooking.Guest{Name: "Asha", Email: " Asha@Example.com"},
		Quote:     q,
		CreatedAt: time.Date(2025, 12, 1, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	b.Version = 3

	back, err := newBookingDocument(b).toAggregate()
	require.NoError(t, err)
	assert.True(t, b.Quote.Equal(back.Quote))
	assert.True(t, back.Quote.TotalAmount.Amount.Equal(decimal.NewFromInt(1343)))
	assert.Equal(t, b.Range, back.Range)
	assert.Equal(t, b.CreatedAt, back.CreatedAt)
	assert.EqualValues(t, 3, back.Version)
	assert.Equal(t, domainbooking.StateConfirmed, back.State)
	assert.Equal(t, "asha@example.com", newBookingDocument(b).Guest.Email)
	assert.Equal(t, "asha@example.com", back.Guest.Email)
}

func TestCalendarDocumentRoundTrip(t *testing.T) {
	cal := domainavailability.NewCalendar(domainavailability.RoomKey{HotelID: "h1", RoomID: "r1"})
	r, err := daterange.New(day(2025, 12, 20), day(2025, 12, 23))
	require.NoError(t, err)
	require.NoError(t, cal.Reserve(r, "b1", day(2025, 12, 1)))

	doc := newCalendarDocument(cal)
	assert.Equal(t, "h1/r1", doc.ID)
	assert.Equal(t, "2025-12-20", doc.Blocks[0].Range.CheckIn)

	back, err := doc.toAggregate()
	require.NoError(t, err)
	assert.Equal(t, cal.Room, back.Room)
	require.Len(t, back.Blocks, 1)
	assert.False(t, back.CanReserve(r))
}

func TestHotelDocumentLowercasesSlug(t *testing.T) {
	h := &domainhotels.Hotel{
		ID: "h1", Slug: "Sea-View", Name: "Sea View", Amenities: []string{"Pool", "WiFi"},
		Rooms: []domainhotels.Room{{ID: "d", BasePrice: decimal.RequireFromString("4500.50"), MaxOccupancy: 2}},
	}
	require.NoError(t, h.Validate())
	back, err := newHotelDocument(h).toAggregate()
	require.NoError(t, err)
	assert.Equal(t, "sea-view", back.Slug)
	assert.True(t, back.StartingPrice.Equal(decimal.RequireFromString("4500.5")))
	assert.Equal(t, 2, back.Rooms[0].MaxOccupancy)
	assert.Equal(t, []string{"Pool", "WiFi"}, back.Amenities)
}
