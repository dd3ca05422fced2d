package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/domain/shared/daterange"
)

func stay(t *testing.T, in, out string) daterange.DateRange {
	t.Helper()
	ci, err := daterange.ParseDate(in)
	require.NoError(t, err)
	co, err := daterange.ParseDate(out)
	require.NoError(t, err)
	dr, err := daterange.New(ci, co)
	require.NoError(t, err)
	return dr
}

func TestReserveRejectsOverlap(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	cal := NewCalendar(RoomKey{HotelID: "h1", RoomID: "deluxe"})

	require.NoError(t, cal.Reserve(stay(t, "2025-06-01", "2025-06-04"), "b1", now))
	err := cal.Reserve(stay(t, "2025-06-03", "2025-06-05"), "b2", now)
	assert.ErrorIs(t, err, ErrOverlappingRange)

	// back-to-back stays share the changeover day
	require.NoError(t, cal.Reserve(stay(t, "2025-06-04", "2025-06-06"), "b3", now))
	assert.Len(t, cal.Blocks, 2)

	evs := cal.DrainEvents()
	require.Len(t, evs, 3)
	assert.Equal(t, "calendar.blocked", evs[0].EventName())
	assert.Equal(t, "calendar.overbooking_prevented", evs[1].EventName())
	assert.Equal(t, "h1/deluxe", evs[1].AggregateID())
	assert.Empty(t, cal.PendingEvents())
}

func TestReleaseFreesRange(t *testing.T) {
	now := time.Now()
	cal := NewCalendar(RoomKey{HotelID: "h1", RoomID: "std"})
	r := stay(t, "2025-06-01", "2025-06-04")

	require.NoError(t, cal.Reserve(r, "b1", now))
	assert.False(t, cal.CanReserve(r))

	require.NoError(t, cal.Release("b1", now))
	assert.True(t, cal.CanReserve(r))
	assert.ErrorIs(t, cal.Release("b1", now), ErrRangeNotFound)
}

func TestCopyIsIndependent(t *testing.T) {
	cal := NewCalendar(RoomKey{HotelID: "h1", RoomID: "std"})
	require.NoError(t, cal.Reserve(stay(t, "2025-06-01", "2025-06-02"), "b1", time.Now()))
	clone := cal.Copy()
	clone.Blocks = clone.Blocks[:0]
	assert.Len(t, cal.Blocks, 1)
	assert.Empty(t, clone.PendingEvents())
}
