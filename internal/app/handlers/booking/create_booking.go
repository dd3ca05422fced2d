package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotelstay/internal/app/commands"
	"hotelstay/internal/app/dto"
	stayapp "hotelstay/internal/app/handlers/stay"
	"hotelstay/internal/app/middleware"
	"hotelstay/internal/app/outbox"
	"hotelstay/internal/app/policies"
	"hotelstay/internal/app/uow"
	"hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
)

const CreateBookingKey = "booking.create"

type CreateBookingCommand struct {
	HotelID         string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Guest           domainbooking.Guest
	SpecialRequests string
	IdempotencyKeyV string
}

func (c CreateBookingCommand) Key() string { return CreateBookingKey }

func (c CreateBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateBookingCommand) ResultPrototype() any { return &CreateBookingResult{} }

func (c CreateBookingCommand) Validate() error {
	if strings.TrimSpace(c.HotelID) == "" {
		return stayapp.ErrHotelRequired
	}
	if strings.TrimSpace(c.RoomID) == "" {
		return stayapp.ErrRoomRequired
	}
	return nil
}

type CreateBookingResult struct {
	BookingID string        `json:"booking_id"`
	Status    string        `json:"status"`
	Quote     dto.StayQuote `json:"quote"`
}

type CreateBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
	NewID      func() string
}

// Handle prices the stay again server side, takes the nights off the room
// calendar and stores the confirmed booking in one unit of work.
func (h *CreateBookingHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResult, error) {
	var result *CreateBookingResult
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		sel := stayapp.Selection{
			HotelID: domainhotels.HotelID(strings.TrimSpace(cmd.HotelID)),
			RoomID:  domainhotels.RoomID(strings.TrimSpace(cmd.RoomID)),
			Stay: policies.StayInput{
				CheckIn:  cmd.CheckIn,
				CheckOut: cmd.CheckOut,
				Guests:   cmd.Guests,
			},
		}
		hotel, quote, err := stayapp.PriceRoom(ctx, unit.Hotels(), h.Pricing, sel)
		if err != nil {
			return err
		}

		now := h.now()
		b, err := domainbooking.NewBooking(domainbooking.CreateParams{
			ID:              domainbooking.BookingID(h.newID()),
			HotelID:         hotel.ID,
			RoomID:          sel.RoomID,
			Guest:           cmd.Guest,
			SpecialRequests: cmd.SpecialRequests,
			Quote:           quote,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}

		key := availability.RoomKey{HotelID: hotel.ID, RoomID: sel.RoomID}
		cal, err := loadCalendar(ctx, unit.Availability(), key)
		if err != nil {
			return err
		}
		if err := cal.Reserve(b.Range, string(b.ID), now); err != nil {
			return err
		}
		if err := unit.Availability().Save(ctx, cal); err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}

		if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, cal, b); err != nil {
			return err
		}
		result = &CreateBookingResult{
			BookingID: string(b.ID),
			Status:    string(b.State),
			Quote:     dto.MapQuote(string(b.HotelID), string(b.RoomID), b.Quote),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (h *CreateBookingHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock().UTC()
	}
	return time.Now().UTC()
}

func (h *CreateBookingHandler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func loadCalendar(ctx context.Context, repo availability.Repository, key availability.RoomKey) (*availability.Calendar, error) {
	cal, err := repo.Calendar(ctx, key)
	if errors.Is(err, availability.ErrCalendarNotFound) {
		return availability.NewCalendar(key), nil
	}
	return cal, err
}

var _ commands.Handler[CreateBookingCommand, *CreateBookingResult] = (*CreateBookingHandler)(nil)
var _ middleware.IdempotentCommand = CreateBookingCommand{}
