package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewValidatesOrder(t *testing.T) {
	dr, err := New(d(2025, 6, 1), d(2025, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())

	_, err = New(d(2025, 6, 4), d(2025, 6, 4))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, d(2025, 6, 4))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewDropsTimeOfDay(t *testing.T) {
	dr, err := New(time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC), time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, d(2025, 6, 1), dr.CheckIn)
	assert.Equal(t, 1, dr.Nights())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(d(2025, 6, 1), d(2025, 6, 4)))
	assert.Equal(t, -3, DaysBetween(d(2025, 6, 4), d(2025, 6, 1)))
	assert.Equal(t, 366, DaysBetween(d(2024, 1, 1), d(2025, 1, 1)))
	assert.Equal(t, 365, DaysBetween(d(2025, 1, 1), d(2026, 1, 1)))
	assert.Equal(t, 1, DaysBetween(d(1999, 12, 31), d(2000, 1, 1)))
	assert.Equal(t, 60, DaysBetween(d(2000, 1, 1), d(2000, 3, 1)))

	ist := time.FixedZone("IST", 5*3600+1800)
	// 2025-06-01 00:30 IST is still 2025-05-31 in UTC; the local calendar date wins.
	assert.Equal(t, 0, DaysBetween(time.Date(2025, 6, 1, 0, 30, 0, 0, ist), d(2025, 6, 1)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-12-20")
	require.NoError(t, err)
	assert.Equal(t, d(2025, 12, 20), got)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("20/12/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	a := DateRange{CheckIn: d(2025, 6, 1), CheckOut: d(2025, 6, 4)}
	b := DateRange{CheckIn: d(2025, 6, 4), CheckOut: d(2025, 6, 6)}
	c := DateRange{CheckIn: d(2025, 6, 3), CheckOut: d(2025, 6, 5)}

	assert.False(t, a.Overlaps(b), "checkout day is free for the next check-in")
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestString(t *testing.T) {
	r := DateRange{CheckIn: d(2025, 6, 1), CheckOut: d(2025, 6, 10)}
	assert.Equal(t, "2025-06-01/2025-06-10", r.String())
}
