package booking

import (
	"context"
	"strings"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainbooking "hotelstay/internal/domain/booking"
)

const GetBookingKey = "booking.get"

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return GetBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.Booking, error) {
	var out dto.Booking
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(strings.TrimSpace(q.BookingID)))
		if err != nil {
			return err
		}
		out = dto.MapBooking(b)
		return nil
	})
	return out, err
}

var _ queries.Handler[GetBookingQuery, dto.Booking] = (*GetBookingHandler)(nil)
