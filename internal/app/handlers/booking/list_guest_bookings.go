package booking

import (
	"context"
	"errors"
	"log/slog"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
)

const ListGuestBookingsKey = "booking.list_by_guest"

// ListGuestBookingsQuery looks a guest's bookings up by the email they booked with.
type ListGuestBookingsQuery struct {
	Email string
}

func (q ListGuestBookingsQuery) Key() string { return ListGuestBookingsKey }

func (q ListGuestBookingsQuery) Validate() error {
	if domainbooking.NormalizeEmail(q.Email) == "" {
		return domainbooking.ErrInvalidEmail
	}
	return nil
}

type ListGuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) (dto.GuestBookingCollection, error) {
	out := dto.GuestBookingCollection{Items: []dto.GuestBookingSummary{}}
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		bookings, err := unit.Bookings().ListByEmail(ctx, domainbooking.NormalizeEmail(q.Email))
		if err != nil {
			return err
		}
		cache := make(map[domainhotels.HotelID]*domainhotels.Hotel)
		for _, b := range bookings {
			hotel, err := h.loadHotel(ctx, unit.Hotels(), b.HotelID, cache)
			if err != nil {
				return err
			}
			out.Items = append(out.Items, dto.MapGuestBookingSummary(b, hotel))
		}
		return nil
	})
	return out, err
}

// loadHotel tolerates hotels removed from the catalog after the stay was booked.
func (h *ListGuestBookingsHandler) loadHotel(ctx context.Context, repo domainhotels.Repository, id domainhotels.HotelID, cache map[domainhotels.HotelID]*domainhotels.Hotel) (*domainhotels.Hotel, error) {
	if hotel, ok := cache[id]; ok {
		return hotel, nil
	}
	hotel, err := repo.ByID(ctx, id)
	if errors.Is(err, domainhotels.ErrHotelNotFound) {
		if h.Logger != nil {
			h.Logger.WarnContext(ctx, "hotel missing for booking", "hotel_id", id)
		}
		hotel, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = hotel
	return hotel, nil
}

var _ queries.Handler[ListGuestBookingsQuery, dto.GuestBookingCollection] = (*ListGuestBookingsHandler)(nil)
