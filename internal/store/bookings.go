package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

// CreateBooking schedules a [startsAt, endsAt) window for a machine.
// Overlap with an existing active booking for the same machine is rejected
// inside the transaction that creates the row.
func (s *gormStore) CreateBooking(ctx context.Context, machineID, userID int64, startsAt, endsAt time.Time) (*model.Booking, error) {
	if !startsAt.Before(endsAt) {
		return nil, apperr.Validation("booking start must be before its end")
	}

	booking := model.Booking{
		MachineID: machineID,
		UserID:    userID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var machine model.Machine
		if err := tx.First(&machine, machineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("machine %d not found", machineID)
			}
			return err
		}
		var overlapping int64
		err := tx.Model(&model.Booking{}).
			Where("machine_id = ? AND canceled = ? AND starts_at < ? AND ends_at > ?",
				machineID, false, endsAt, startsAt).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return apperr.Conflict("the requested slot overlaps an existing booking")
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, storeErr("failed to create booking", err)
	}
	return &booking, nil
}

// CancelBooking marks the booking canceled. Only the booking's owner may
// cancel it.
func (s *gormStore) CancelBooking(ctx context.Context, bookingID, userID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("booking %d not found", bookingID)
			}
			return err
		}
		if booking.UserID != userID {
			return apperr.Forbidden("you can only cancel your own bookings")
		}
		return tx.Model(&booking).Update("canceled", true).Error
	})
	if err != nil {
		return storeErr("failed to cancel booking", err)
	}
	return nil
}

// BookingsInRange returns the machine's active bookings overlapping
// [from, to), ordered by start time.
func (s *gormStore) BookingsInRange(ctx context.Context, machineID int64, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("machine_id = ? AND canceled = ? AND starts_at < ? AND ends_at > ?",
			machineID, false, to, from).
		Order("starts_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}
