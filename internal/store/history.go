package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

// NewHistoryInput is the payload for explicit wash-history creation, used by
// the wash simulator channel. Reservations create their entry implicitly.
type NewHistoryInput struct {
	UserID        int64
	LaundryID     int64
	MachineID     *int64
	Timestamp     time.Time
	AmountCharged float64
}

func (s *gormStore) CreateHistory(ctx context.Context, in NewHistoryInput) (*model.WashHistory, error) {
	if in.UserID == 0 || in.LaundryID == 0 {
		return nil, apperr.Validation("userId and laundryId are required")
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	entry := model.WashHistory{
		UserID:        in.UserID,
		LaundryID:     in.LaundryID,
		MachineID:     in.MachineID,
		Timestamp:     in.Timestamp,
		AmountCharged: in.AmountCharged,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperr.Internal("failed to create wash history", err)
	}
	return &entry, nil
}

func (s *gormStore) HistoryByUser(ctx context.Context, userID int64) ([]model.WashHistory, error) {
	var entries []model.WashHistory
	err := s.db.WithContext(ctx).
		Preload("Laundry").
		Preload("Machine").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internal("failed to list wash history", err)
	}
	return entries, nil
}

func (s *gormStore) HistoryByLaundry(ctx context.Context, laundryID int64) ([]model.WashHistory, error) {
	var entries []model.WashHistory
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Machine").
		Where("laundry_id = ?", laundryID).
		Order("timestamp DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internal("failed to list wash history", err)
	}
	return entries, nil
}

// RateHistoryEntry sets the customer rating on one wash-history row and
// recomputes the laundry's average over all rated rows in the same
// transaction. This is the second, independent rating channel: it overwrites
// the same cached average the review channel writes.
func (s *gormStore) RateHistoryEntry(ctx context.Context, historyID, userID int64, rating int) (*model.WashHistory, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be an integer between 1 and 5")
	}

	var entry model.WashHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", historyID, userID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("wash history %d not found for this user", historyID)
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&entry).Update("customer_rating", rating).Error; err != nil {
			return err
		}
		entry.CustomerRating = &rating
		return recomputeFromHistory(tx, entry.LaundryID)
	})
	if err != nil {
		return nil, storeErr("failed to rate wash history", err)
	}
	return &entry, nil
}

// recomputeFromHistory rewrites the laundry's cached average as the mean of
// all non-null customer ratings, rounded to one decimal, or null when no
// rated wash remains.
func recomputeFromHistory(tx *gorm.DB, laundryID int64) error {
	type agg struct {
		Avg float64
		N   int64
	}
	var a agg
	err := tx.Model(&model.WashHistory{}).
		Select("COALESCE(AVG(customer_rating), 0) as avg, COUNT(customer_rating) as n").
		Where("laundry_id = ? AND customer_rating IS NOT NULL", laundryID).
		Scan(&a).Error
	if err != nil {
		return err
	}

	var value any
	if a.N == 0 {
		value = nil
	} else {
		value = roundRating(a.Avg)
	}
	return tx.Model(&model.Laundry{}).
		Where("id = ?", laundryID).
		Update("rating", value).Error
}
