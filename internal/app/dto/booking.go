package dto

import (
	"time"

	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
)

type GuestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Booking struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	Guest           GuestDTO  `json:"guest"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Quote           StayQuote `json:"quote"`
	CreatedAt       time.Time `json:"created_at"`
	CancelReason    string    `json:"cancel_reason,omitempty"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	return Booking{
		ID:     string(b.ID),
		Status: string(b.State),
		Guest: GuestDTO{
			Name:  b.Guest.Name,
			Email: b.Guest.Email,
			Phone: b.Guest.Phone,
		},
		SpecialRequests: b.SpecialRequests,
		Quote:           MapQuote(string(b.HotelID), string(b.RoomID), b.Quote),
		CreatedAt:       b.CreatedAt,
		CancelReason:    b.CancelReason,
	}
}

// GuestBookingSummary is one row of a guest's booking history.
type GuestBookingSummary struct {
	Booking
	HotelName string `json:"hotel_name,omitempty"`
	HotelSlug string `json:"hotel_slug,omitempty"`
}

type GuestBookingCollection struct {
	Items []GuestBookingSummary `json:"items"`
}

func MapGuestBookingSummary(b *domainbooking.Booking, hotel *domainhotels.Hotel) GuestBookingSummary {
	out := GuestBookingSummary{Booking: MapBooking(b)}
	if hotel != nil {
		out.HotelName = hotel.Name
		out.HotelSlug = hotel.Slug
	}
	return out
}
