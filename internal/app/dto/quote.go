package dto

import (
	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/stay"
)

type StayQuote struct {
	HotelID         string          `json:"hotel_id"`
	RoomID          string          `json:"room_id"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	Nights          int             `json:"nights"`
	Guests          int             `json:"guests"`
	GuestPolicy     string          `json:"guest_policy"`
	GuestMultiplier decimal.Decimal `json:"guest_multiplier"`
	NightlyRate     MoneyDTO        `json:"nightly_rate"`
	BaseAmount      MoneyDTO        `json:"base_amount"`
	ServiceFee      MoneyDTO        `json:"service_fee"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	TaxAmount       MoneyDTO        `json:"tax_amount"`
	TotalAmount     MoneyDTO        `json:"total_amount"`
}

func MapQuote(hotelID, roomID string, q stay.Quote) StayQuote {
	return StayQuote{
		HotelID:         hotelID,
		RoomID:          roomID,
		CheckIn:         q.CheckIn.Format(daterange.DateLayout),
		CheckOut:        q.CheckOut.Format(daterange.DateLayout),
		Nights:          q.Nights,
		Guests:          q.Guests,
		GuestPolicy:     q.GuestPolicy,
		GuestMultiplier: q.GuestMultiplier,
		NightlyRate:     MapMoney(q.NightlyRate),
		BaseAmount:      MapMoney(q.BaseAmount),
		ServiceFee:      MapMoney(q.ServiceFee),
		TaxRatePercent:  q.TaxRatePercent,
		TaxAmount:       MapMoney(q.TaxAmount),
		TotalAmount:     MapMoney(q.TotalAmount),
	}
}
