package hotels

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrHotelNotFound   = errors.New("hotels: hotel not found")
	ErrRoomNotFound    = errors.New("hotels: room not found")
	ErrInvalidHotel    = errors.New("hotels: invalid hotel")
	ErrHotelNotPublic  = errors.New("hotels: hotel is not approved")
	ErrInvalidSlug     = errors.New("hotels: slug required")
	ErrDuplicateRoomID = errors.New("hotels: duplicate room id")
	ErrOccupancyLimit  = errors.New("hotels: guests exceed room occupancy")
)

type HotelID string

type RoomID string

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Room struct {
	ID           RoomID          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MaxOccupancy int             `json:"max_occupancy"`
	BasePrice    decimal.Decimal `json:"base_price"`
	BedType      string          `json:"bed_type"`
	HasAC        bool            `json:"has_ac"`
	HasWiFi      bool            `json:"has_wifi"`
	HasTV        bool            `json:"has_tv"`
}

// Accommodates reports whether the room fits the guests. Zero occupancy means unlimited.
func (r Room) Accommodates(guests int) bool {
	return r.MaxOccupancy <= 0 || guests <= r.MaxOccupancy
}

type Hotel struct {
	ID               HotelID         `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	Address          string          `json:"address"`
	Area             string          `json:"area"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	StartingPrice    decimal.Decimal `json:"starting_price"`
	AverageRating    float64         `json:"average_rating"`
	TotalReviews     int             `json:"total_reviews"`
	Featured         bool            `json:"is_featured"`
	Status           Status          `json:"status"`
	Amenities        []string        `json:"amenities"`
	Rooms            []Room          `json:"rooms"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Repository interface {
	ByID(ctx context.Context, id HotelID) (*Hotel, error)
	BySlug(ctx context.Context, slug string) (*Hotel, error)
	List(ctx context.Context) ([]*Hotel, error)
	Save(ctx context.Context, hotel *Hotel) error
}

// Validate checks the fields a listed hotel must carry and derives the
// starting price from the cheapest room when it is unset.
func (h *Hotel) Validate() error {
	if strings.TrimSpace(string(h.ID)) == "" || strings.TrimSpace(h.Name) == "" {
		return ErrInvalidHotel
	}
	if strings.TrimSpace(h.Slug) == "" {
		return ErrInvalidSlug
	}
	if h.Status == "" {
		h.Status = StatusPending
	}
	seen := make(map[RoomID]struct{}, len(h.Rooms))
	for _, room := range h.Rooms {
		if _, dup := seen[room.ID]; dup {
			return ErrDuplicateRoomID
		}
		seen[room.ID] = struct{}{}
	}
	if h.StartingPrice.IsZero() {
		h.StartingPrice = h.cheapestRoom()
	}
	return nil
}

func (h *Hotel) cheapestRoom() decimal.Decimal {
	var lowest decimal.Decimal
	for i, room := range h.Rooms {
		if i == 0 || room.BasePrice.LessThan(lowest) {
			lowest = room.BasePrice
		}
	}
	return lowest
}

func (h *Hotel) Public() bool {
	return h.Status == StatusApproved
}

// HasAmenities reports whether the hotel offers every wanted amenity, compared case-insensitively.
func (h *Hotel) HasAmenities(wanted []string) bool {
	for _, want := range wanted {
		found := false
		for _, have := range h.Amenities {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (h *Hotel) Room(id RoomID) (Room, error) {
	for _, room := range h.Rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return Room{}, ErrRoomNotFound
}

// SetFeatured toggles the homepage flag; only approved hotels can be featured.
func (h *Hotel) SetFeatured(featured bool) error {
	if featured && !h.Public() {
		return ErrHotelNotPublic
	}
	h.Featured = featured
	return nil
}

// Copy returns a deep copy safe to hand out of a repository.
func (h *Hotel) Copy() *Hotel {
	clone := *h
	clone.Rooms = append([]Room(nil), h.Rooms...)
	clone.Amenities = append([]string(nil), h.Amenities...)
	return &clone
}
