package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishwash-backend/internal/apperr"
)

func bookingDay() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestCreateBooking_RejectsOverlap(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	dana := seedCustomer(t, s, "dana@x.com")

	day := bookingDay()
	_, err := s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)

	overlapping := []struct {
		name       string
		start, end time.Time
	}{
		{"identical window", day.Add(10 * time.Hour), day.Add(11 * time.Hour)},
		{"starts inside", day.Add(10*time.Hour + 30*time.Minute), day.Add(12 * time.Hour)},
		{"ends inside", day.Add(9 * time.Hour), day.Add(10*time.Hour + 30*time.Minute)},
		{"covers it", day.Add(9 * time.Hour), day.Add(12 * time.Hour)},
	}
	for _, tc := range overlapping {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateBooking(context.Background(), machine.ID, dana.ID, tc.start, tc.end)
			assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
		})
	}

	// Windows are half-open, so back-to-back bookings touch without clashing.
	_, err = s.CreateBooking(context.Background(), machine.ID, dana.ID,
		day.Add(11*time.Hour), day.Add(12*time.Hour))
	require.NoError(t, err)
	_, err = s.CreateBooking(context.Background(), machine.ID, dana.ID,
		day.Add(9*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)
}

func TestCreateBooking_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	day := bookingDay()

	_, err := s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(11*time.Hour), day.Add(10*time.Hour))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(10*time.Hour), day.Add(10*time.Hour))
	assert.True(t, apperr.Is(err, apperr.KindValidation), "zero-length windows are rejected")

	_, err = s.CreateBooking(context.Background(), 9999, bob.ID,
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCancelBooking_FreesTheSlot(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	dana := seedCustomer(t, s, "dana@x.com")
	day := bookingDay()

	booking, err := s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)

	err = s.CancelBooking(context.Background(), booking.ID, dana.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, s.CancelBooking(context.Background(), booking.ID, bob.ID))

	// The window is reusable once its booking is canceled.
	_, err = s.CreateBooking(context.Background(), machine.ID, dana.ID,
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
}

func TestBookingsInRange_FiltersCanceledAndOtherDays(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	day := bookingDay()

	kept, err := s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
	canceled, err := s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.Add(12*time.Hour), day.Add(13*time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.CancelBooking(context.Background(), canceled.ID, bob.ID))
	_, err = s.CreateBooking(context.Background(), machine.ID, bob.ID,
		day.AddDate(0, 0, 1).Add(10*time.Hour), day.AddDate(0, 0, 1).Add(11*time.Hour))
	require.NoError(t, err)

	bookings, err := s.BookingsInRange(context.Background(), machine.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, kept.ID, bookings[0].ID)
}
