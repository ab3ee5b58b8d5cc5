// Package schedule derives machine availability from booking windows.
// Everything here is a pure function of its inputs so slot listings are
// deterministic and restartable.
package schedule

import (
	"time"

	"wishwash-backend/internal/model"
	"wishwash-backend/internal/parse"
)

// Slot is one bookable interval, half-open [Start, End).
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Slots produces the ordered sequence of bookable slots of the given length
// for one calendar day, skipping any slot that overlaps an active booking.
// day must be midnight in the desired location; bookings already canceled
// must be filtered out by the caller's query.
func Slots(day time.Time, window parse.DayWindow, interval time.Duration, bookings []model.Booking) []Slot {
	if interval <= 0 {
		return nil
	}

	open := day.Add(time.Duration(window.OpenMinute) * time.Minute)
	close := day.Add(time.Duration(window.CloseMinute) * time.Minute)

	var slots []Slot
	for start := open; !start.Add(interval).After(close); start = start.Add(interval) {
		end := start.Add(interval)
		if overlapsAny(start, end, bookings) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end})
	}
	return slots
}

// DerivedStatus projects a machine's availability at time t from its active
// bookings, independent of the stored status field. The two can legitimately
// disagree; this is a read-only view of the booking calendar.
func DerivedStatus(t time.Time, bookings []model.Booking) model.MachineStatus {
	for _, b := range bookings {
		if !b.Canceled && b.Contains(t) {
			return model.StatusInUse
		}
	}
	return model.StatusAvailable
}

func overlapsAny(start, end time.Time, bookings []model.Booking) bool {
	for _, b := range bookings {
		if !b.Canceled && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
