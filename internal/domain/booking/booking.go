package booking

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/shared/events"
	"hotelstay/internal/domain/stay"
)

var (
	ErrInvalidGuests     = errors.New("booking: guests count must be positive")
	ErrGuestNameRequired = errors.New("booking: guest name required")
	ErrInvalidEmail      = errors.New("booking: valid guest email required")
	ErrNonPositiveTotal  = errors.New("booking: total must be positive")
	ErrInvalidState      = errors.New("booking: invalid state transition")
	ErrBookingNotFound   = errors.New("booking: not found")
)

type BookingID string

type BookingState string

const (
	StateConfirmed BookingState = "CONFIRMED"
	StateCancelled BookingState = "CANCELLED"
)

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Booking struct {
	ID              BookingID
	HotelID         hotels.HotelID
	RoomID          hotels.RoomID
	Guest           Guest
	Range           daterange.DateRange
	Guests          int
	SpecialRequests string
	Quote           stay.Quote
	State           BookingState
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

// NormalizeEmail is the stored and queried form of a guest email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	// ListByEmail returns the bookings made under the normalized email, newest first.
	ListByEmail(ctx context.Context, email string) ([]*Booking, error)
}

type CreateParams struct {
	ID              BookingID
	HotelID         hotels.HotelID
	RoomID          hotels.RoomID
	Guest           Guest
	SpecialRequests string
	Quote           stay.Quote
	CreatedAt       time.Time
}

// NewBooking persists a priced quote as a confirmed booking.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.Quote.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	guest := Guest{
		Name:  strings.TrimSpace(params.Guest.Name),
		Email: NormalizeEmail(params.Guest.Email),
		Phone: strings.TrimSpace(params.Guest.Phone),
	}
	if guest.Name == "" {
		return nil, ErrGuestNameRequired
	}
	addr, err := mail.ParseAddress(guest.Email)
	if err != nil || addr.Address != guest.Email {
		return nil, ErrInvalidEmail
	}
	if !params.Quote.TotalAmount.IsPositive() {
		return nil, ErrNonPositiveTotal
	}
	dr, err := daterange.New(params.Quote.CheckIn, params.Quote.CheckOut)
	if err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		HotelID:         params.HotelID,
		RoomID:          params.RoomID,
		Guest:           guest,
		Range:           dr,
		Guests:          params.Quote.Guests,
		SpecialRequests: strings.TrimSpace(params.SpecialRequests),
		Quote:           params.Quote,
		State:           StateConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.Record(BookingConfirmed{
		BookingID: b.ID,
		HotelID:   b.HotelID,
		RoomID:    b.RoomID,
		Range:     b.Range,
		Guests:    b.Guests,
		Total:     b.Quote.TotalAmount,
		At:        now,
	})
	return b, nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.State != StateConfirmed {
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.CancelReason = strings.TrimSpace(reason)
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, HotelID: b.HotelID, RoomID: b.RoomID, Reason: b.CancelReason, At: b.UpdatedAt})
	return nil
}
