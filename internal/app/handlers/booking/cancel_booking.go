package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelstay/internal/app/commands"
	"hotelstay/internal/app/outbox"
	"hotelstay/internal/app/uow"
	"hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
)

const CancelBookingKey = "booking.cancel"

type CancelBookingCommand struct {
	BookingID string
	Reason    string
}

func (c CancelBookingCommand) Key() string { return CancelBookingKey }

func (c CancelBookingCommand) Validate() error {
	if strings.TrimSpace(c.BookingID) == "" {
		return domainbooking.ErrBookingNotFound
	}
	return nil
}

type CancelBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type CancelBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

// Handle cancels a confirmed booking and gives its nights back to the room.
func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*CancelBookingResult, error) {
	var result *CancelBookingResult
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(strings.TrimSpace(cmd.BookingID)))
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if h.Clock != nil {
			now = h.Clock().UTC()
		}
		if err := b.Cancel(cmd.Reason, now); err != nil {
			return err
		}

		key := availability.RoomKey{HotelID: b.HotelID, RoomID: b.RoomID}
		cal, err := loadCalendar(ctx, unit.Availability(), key)
		if err != nil {
			return err
		}
		if err := cal.Release(string(b.ID), now); err != nil && !errors.Is(err, availability.ErrRangeNotFound) {
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
		result = &CancelBookingResult{BookingID: string(b.ID), Status: string(b.State)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[CancelBookingCommand, *CancelBookingResult] = (*CancelBookingHandler)(nil)
