package booking

import (
	"time"

	"hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/shared/money"
)

type BookingConfirmed struct {
	BookingID BookingID           `json:"booking_id"`
	HotelID   hotels.HotelID      `json:"hotel_id"`
	RoomID    hotels.RoomID       `json:"room_id"`
	Range     daterange.DateRange `json:"range"`
	Guests    int                 `json:"guests"`
	Total     money.Money         `json:"total"`
	At        time.Time           `json:"at"`
}

func (e BookingConfirmed) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID      `json:"booking_id"`
	HotelID   hotels.HotelID `json:"hotel_id"`
	RoomID    hotels.RoomID  `json:"room_id"`
	Reason    string         `json:"reason"`
	At        time.Time      `json:"at"`
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
