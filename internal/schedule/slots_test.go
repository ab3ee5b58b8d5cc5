package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wishwash-backend/internal/model"
	"wishwash-backend/internal/parse"
)

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestSlots_FullDay(t *testing.T) {
	window := parse.DayWindow{OpenMinute: 8 * 60, CloseMinute: 12 * 60}

	slots := Slots(day, window, time.Hour, nil)

	assert.Len(t, slots, 4)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(12, 0), slots[3].End)
}

func TestSlots_ExcludesBookedWindows(t *testing.T) {
	window := parse.DayWindow{OpenMinute: 8 * 60, CloseMinute: 12 * 60}
	bookings := []model.Booking{
		{StartsAt: at(9, 0), EndsAt: at(10, 0)},
		{StartsAt: at(10, 30), EndsAt: at(11, 30)},
	}

	slots := Slots(day, window, time.Hour, bookings)

	// 9-10 collides directly; 10-11 and 11-12 overlap the second booking.
	assert.Len(t, slots, 1)
	assert.Equal(t, at(8, 0), slots[0].Start)
}

func TestSlots_IgnoresCanceledBookings(t *testing.T) {
	window := parse.DayWindow{OpenMinute: 8 * 60, CloseMinute: 10 * 60}
	bookings := []model.Booking{
		{StartsAt: at(8, 0), EndsAt: at(9, 0), Canceled: true},
	}

	slots := Slots(day, window, time.Hour, bookings)

	assert.Len(t, slots, 2)
}

func TestSlots_NeverOverlap(t *testing.T) {
	window := parse.DayWindow{OpenMinute: 8 * 60, CloseMinute: 22 * 60}
	bookings := []model.Booking{
		{StartsAt: at(9, 15), EndsAt: at(9, 45)},
		{StartsAt: at(13, 0), EndsAt: at(15, 0)},
	}

	slots := Slots(day, window, 45*time.Minute, bookings)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Start.Before(slots[i-1].End), "slots must be ordered and disjoint")
	}
	for _, s := range slots {
		for _, b := range bookings {
			assert.False(t, b.Overlaps(s.Start, s.End), "slot %v collides with booking %v", s, b)
		}
	}
}

func TestSlots_PartialTrailingIntervalDropped(t *testing.T) {
	window := parse.DayWindow{OpenMinute: 8 * 60, CloseMinute: 9*60 + 30}

	slots := Slots(day, window, time.Hour, nil)

	assert.Len(t, slots, 1)
	assert.Equal(t, at(9, 0), slots[0].End)
}

func TestDerivedStatus(t *testing.T) {
	bookings := []model.Booking{
		{StartsAt: at(9, 0), EndsAt: at(10, 0)},
		{StartsAt: at(14, 0), EndsAt: at(15, 0), Canceled: true},
	}

	assert.Equal(t, model.StatusInUse, DerivedStatus(at(9, 0), bookings), "window start is inclusive")
	assert.Equal(t, model.StatusInUse, DerivedStatus(at(9, 59), bookings))
	assert.Equal(t, model.StatusAvailable, DerivedStatus(at(10, 0), bookings), "window end is exclusive")
	assert.Equal(t, model.StatusAvailable, DerivedStatus(at(14, 30), bookings), "canceled bookings are ignored")
	assert.Equal(t, model.StatusAvailable, DerivedStatus(at(8, 0), bookings))
}
