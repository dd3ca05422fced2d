package availability

import (
	"time"

	"hotelstay/internal/domain/shared/daterange"
)

type CalendarBlocked struct {
	Room      string              `json:"room"`
	Range     daterange.DateRange `json:"range"`
	Reason    BlockReason         `json:"reason"`
	Reference string              `json:"reference"`
	At        time.Time           `json:"at"`
}

func (e CalendarBlocked) EventName() string     { return "calendar.blocked" }
func (e CalendarBlocked) AggregateID() string   { return e.Room }
func (e CalendarBlocked) OccurredAt() time.Time { return e.At }

type CalendarReleased struct {
	Room      string              `json:"room"`
	Range     daterange.DateRange `json:"range"`
	Reason    BlockReason         `json:"reason"`
	Reference string              `json:"reference"`
	At        time.Time           `json:"at"`
}

func (e CalendarReleased) EventName() string     { return "calendar.released" }
func (e CalendarReleased) AggregateID() string   { return e.Room }
func (e CalendarReleased) OccurredAt() time.Time { return e.At }

type CalendarOverbookingPrevented struct {
	Room  string              `json:"room"`
	Range daterange.DateRange `json:"range"`
	At    time.Time           `json:"at"`
}

func (e CalendarOverbookingPrevented) EventName() string     { return "calendar.overbooking_prevented" }
func (e CalendarOverbookingPrevented) AggregateID() string   { return e.Room }
func (e CalendarOverbookingPrevented) OccurredAt() time.Time { return e.At }
