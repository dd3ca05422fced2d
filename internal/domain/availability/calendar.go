package availability

import (
	"context"
	"errors"
	"time"

	"hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/shared/events"
)

var (
	ErrOverlappingRange = errors.New("availability: range overlaps with an existing block")
	ErrRangeNotFound    = errors.New("availability: range not found")
	ErrCalendarNotFound = errors.New("availability: calendar not found")
)

type BlockReason string

const ReasonBooking BlockReason = "BOOKING"

// RoomKey addresses one bookable room of one hotel.
type RoomKey struct {
	HotelID hotels.HotelID
	RoomID  hotels.RoomID
}

func (k RoomKey) String() string {
	return string(k.HotelID) + "/" + string(k.RoomID)
}

type Block struct {
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	CreatedAt time.Time
}

// Calendar tracks the nights a single room is unavailable.
type Calendar struct {
	Room    RoomKey
	Blocks  []Block
	Version int64
	events.EventRecorder
}

type Repository interface {
	Calendar(ctx context.Context, room RoomKey) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(room RoomKey) *Calendar {
	return &Calendar{Room: room}
}

func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	for _, block := range c.Blocks {
		if block.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// Reserve blocks the range for a booking or fails when any night is taken.
func (c *Calendar) Reserve(r daterange.DateRange, bookingID string, now time.Time) error {
	if !c.CanReserve(r) {
		c.Record(CalendarOverbookingPrevented{Room: c.Room.String(), Range: r, At: now.UTC()})
		return ErrOverlappingRange
	}
	c.Blocks = append(c.Blocks, Block{Range: r, Reason: ReasonBooking, Reference: bookingID, CreatedAt: now.UTC()})
	c.Record(CalendarBlocked{Room: c.Room.String(), Range: r, Reason: ReasonBooking, Reference: bookingID, At: now.UTC()})
	return nil
}

func (c *Calendar) Release(reference string, now time.Time) error {
	idx := -1
	for i, block := range c.Blocks {
		if block.Reference == reference {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrRangeNotFound
	}
	removed := c.Blocks[idx]
	c.Blocks = append(c.Blocks[:idx], c.Blocks[idx+1:]...)
	c.Record(CalendarReleased{Room: c.Room.String(), Range: removed.Range, Reason: removed.Reason, Reference: reference, At: now.UTC()})
	return nil
}

// Copy returns a calendar sharing nothing with the receiver, pending events excluded.
func (c *Calendar) Copy() *Calendar {
	return &Calendar{
		Room:    c.Room,
		Blocks:  append([]Block(nil), c.Blocks...),
		Version: c.Version,
	}
}
