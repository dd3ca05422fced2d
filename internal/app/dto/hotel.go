package dto

import (
	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/hotels"
)

type HotelSummary struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	Area             string          `json:"area"`
	Address          string          `json:"address"`
	StartingPrice    decimal.Decimal `json:"starting_price"`
	AverageRating    float64         `json:"average_rating"`
	TotalReviews     int             `json:"total_reviews"`
	Featured         bool            `json:"is_featured"`
	Amenities        []string        `json:"amenities"`
}

type HotelCollection struct {
	Items  []HotelSummary `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type RoomDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MaxOccupancy int             `json:"max_occupancy"`
	BasePrice    decimal.Decimal `json:"base_price"`
	BedType      string          `json:"bed_type"`
	HasAC        bool            `json:"has_ac"`
	HasWiFi      bool            `json:"has_wifi"`
	HasTV        bool            `json:"has_tv"`
}

type HotelDetail struct {
	HotelSummary
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Rooms       []RoomDTO `json:"rooms"`
}

// CatalogFacets lists the values the catalog can be filtered by.
type CatalogFacets struct {
	Items []string `json:"items"`
}

func MapHotelSummary(h *hotels.Hotel) HotelSummary {
	return HotelSummary{
		ID:               string(h.ID),
		Slug:             h.Slug,
		Name:             h.Name,
		ShortDescription: h.ShortDescription,
		Area:             h.Area,
		Address:          h.Address,
		StartingPrice:    h.StartingPrice,
		AverageRating:    h.AverageRating,
		TotalReviews:     h.TotalReviews,
		Featured:         h.Featured,
		Amenities:        append([]string{}, h.Amenities...),
	}
}

func MapHotelDetail(h *hotels.Hotel) HotelDetail {
	rooms := make([]RoomDTO, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, RoomDTO{
			ID:           string(r.ID),
			Name:         r.Name,
			Description:  r.Description,
			MaxOccupancy: r.MaxOccupancy,
			BasePrice:    r.BasePrice,
			BedType:      r.BedType,
			HasAC:        r.HasAC,
			HasWiFi:      r.HasWiFi,
			HasTV:        r.HasTV,
		})
	}
	return HotelDetail{
		HotelSummary: MapHotelSummary(h),
		Description:  h.Description,
		Phone:        h.Phone,
		Email:        h.Email,
		Rooms:        rooms,
	}
}
