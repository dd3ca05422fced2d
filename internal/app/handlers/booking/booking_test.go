package booking_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingapp "hotelstay/internal/app/handlers/booking"
	"hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
	domainstay "hotelstay/internal/domain/stay"
	"hotelstay/internal/infra/pricing"
	"hotelstay/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	factory *memory.Factory
	outbox  *memory.Outbox
	create  *bookingapp.CreateBookingHandler
	cancel  *bookingapp.CancelBookingHandler
	get     *bookingapp.GetBookingHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := memory.NewFactory()
	require.NoError(t, f.HotelsRepo.Save(context.Background(), &domainhotels.Hotel{
		ID: "h1", Slug: "sea-view", Name: "Sea View", Status: domainhotels.StatusApproved,
		Rooms: []domainhotels.Room{{ID: "deluxe", BasePrice: decimal.NewFromInt(2500), MaxOccupancy: 3}},
	}))
	clock := func() time.Time { return time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC) }
	box := memory.NewOutbox(nil)
	var mu sync.Mutex
	seq := 0
	return fixture{
		factory: f,
		outbox:  box,
		create: &bookingapp.CreateBookingHandler{
			UoWFactory: f,
			Pricing:    pricing.StayPricing{Calculator: domainstay.NewCalculator(domainstay.Config{}), Clock: clock},
			Outbox:     box,
			Clock:      clock,
			NewID: func() string {
				mu.Lock()
				defer mu.Unlock()
				seq++
				return fmt.Sprintf("b%d", seq)
			},
		},
		cancel: &bookingapp.CancelBookingHandler{UoWFactory: f, Outbox: box, Clock: clock},
		get:    &bookingapp.GetBookingHandler{UoWFactory: f},
	}
}

func createCmd(in, out time.Time) bookingapp.CreateBookingCommand {
	return bookingapp.CreateBookingCommand{
		HotelID: "h1", RoomID: "deluxe",
		CheckIn: in, CheckOut: out, Guests: 2,
		Guest: domainbooking.Guest{Name: "Asha Rao", Email: "asha@example.com"},
	}
}

func eventNames(box *memory.Outbox) []string {
	var out []string
	for _, rec := range box.Pending() {
		out = append(out, rec.Name)
	}
	return out
}

func TestCreateBooking(t *testing.T) {
	fx := newFixture(t)
	res, err := fx.create.Handle(context.Background(), createCmd(day(2025, 12, 20), day(2025, 12, 23)))
	require.NoError(t, err)
	assert.Equal(t, "b1", res.BookingID)
	assert.Equal(t, string(domainbooking.StateConfirmed), res.Status)
	assert.True(t, res.Quote.TotalAmount.Amount.Equal(decimal.NewFromInt(7500)))

	got, err := fx.get.Handle(context.Background(), bookingapp.GetBookingQuery{BookingID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", got.Guest.Email)
	assert.Equal(t, 3, got.Quote.Nights)

	cal, err := fx.factory.AvailabilityRepo.Calendar(context.Background(), availability.RoomKey{HotelID: "h1", RoomID: "deluxe"})
	require.NoError(t, err)
	require.Len(t, cal.Blocks, 1)
	assert.Equal(t, "b1", cal.Blocks[0].Reference)

	assert.Len(t, eventNames(fx.outbox), 2)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.create.Handle(context.Background(), createCmd(day(2025, 12, 20), day(2025, 12, 23)))
	require.NoError(t, err)

	_, err = fx.create.Handle(context.Background(), createCmd(day(2025, 12, 22), day(2025, 12, 24)))
	assert.ErrorIs(t, err, availability.ErrOverlappingRange)

	// check-out day of one stay is the check-in day of the next
	_, err = fx.create.Handle(context.Background(), createCmd(day(2025, 12, 23), day(2025, 12, 25)))
	assert.NoError(t, err)
}

func TestCreateBookingConcurrentSameNights(t *testing.T) {
	fx := newFixture(t)
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.create.Handle(context.Background(), createCmd(day(2025, 12, 20), day(2025, 12, 21)))
		}(i)
	}
	wg.Wait()
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, availability.ErrOverlappingRange)
	}
	assert.Equal(t, 1, ok)
}

func TestCreateBookingValidation(t *testing.T) {
	fx := newFixture(t)
	cmd := createCmd(day(2025, 12, 20), day(2025, 12, 23))
	cmd.Guest.Email = "not-an-email"
	_, err := fx.create.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domainbooking.ErrInvalidEmail)

	cmd = createCmd(day(2025, 11, 20), day(2025, 11, 19))
	_, err = fx.create.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domainstay.ErrInvalidRequest)

	cmd = createCmd(day(2025, 12, 20), day(2025, 12, 23))
	cmd.Guests = 4
	_, err = fx.create.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domainhotels.ErrOccupancyLimit)

	assert.Empty(t, eventNames(fx.outbox))
	assert.Error(t, bookingapp.CreateBookingCommand{RoomID: "r"}.Validate())
}

func TestCancelBookingReleasesNights(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.create.Handle(ctx, createCmd(day(2025, 12, 20), day(2025, 12, 23)))
	require.NoError(t, err)

	res, err := fx.cancel.Handle(ctx, bookingapp.CancelBookingCommand{BookingID: "b1", Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StateCancelled), res.Status)

	got, err := fx.get.Handle(ctx, bookingapp.GetBookingQuery{BookingID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "plans changed", got.CancelReason)

	_, err = fx.cancel.Handle(ctx, bookingapp.CancelBookingCommand{BookingID: "b1"})
	assert.ErrorIs(t, err, domainbooking.ErrInvalidState)

	_, err = fx.create.Handle(ctx, createCmd(day(2025, 12, 20), day(2025, 12, 23)))
	assert.NoError(t, err)

	_, err = fx.cancel.Handle(ctx, bookingapp.CancelBookingCommand{BookingID: "zzz"})
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}

func TestListGuestBookings(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.create.Handle(ctx, createCmd(day(2025, 12, 20), day(2025, 12, 23)))
	require.NoError(t, err)
	// a booking whose hotel has since left the catalog
	require.NoError(t, fx.factory.BookingRepo.Save(ctx, &domainbooking.Booking{
		ID: "old", HotelID: "gone", RoomID: "r", State: domainbooking.StateConfirmed,
		Guest:     domainbooking.Guest{Name: "Asha Rao", Email: "asha@example.com"},
		CreatedAt: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
	}))

	list := &bookingapp.ListGuestBookingsHandler{UoWFactory: fx.factory}
	res, err := list.Handle(ctx, bookingapp.ListGuestBookingsQuery{Email: " ASHA@example.com "})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "old", res.Items[0].ID, "newest first")
	assert.Empty(t, res.Items[0].HotelName)
	assert.Equal(t, "b1", res.Items[1].ID)
	assert.Equal(t, "Sea View", res.Items[1].HotelName)

	res, err = list.Handle(ctx, bookingapp.ListGuestBookingsQuery{Email: "other@example.com"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	assert.ErrorIs(t, bookingapp.ListGuestBookingsQuery{Email: "  "}.Validate(), domainbooking.ErrInvalidEmail)
}
