package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

// SubmitReview upserts the caller's single review for a laundry and
// recomputes the laundry's average rating in the same transaction, so the
// review set and the cached average are never observably inconsistent.
// Reviewing is usage-gated: the caller must have at least one wash-history
// record for the laundry.
func (s *gormStore) SubmitReview(ctx context.Context, userID, laundryID int64, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	used, err := s.CanUserReview(ctx, userID, laundryID)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, apperr.Forbidden("you can only review laundries you have used")
	}

	var review model.Review
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND laundry_id = ?", userID, laundryID).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = model.Review{
				UserID:    userID,
				LaundryID: laundryID,
				Rating:    rating,
				Comment:   comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&review).Updates(map[string]any{
				"rating":  rating,
				"comment": comment,
			}).Error; err != nil {
				return err
			}
			review.Rating = rating
			review.Comment = comment
		}
		return recomputeFromReviews(tx, laundryID)
	})
	if err != nil {
		return nil, storeErr("failed to submit review", err)
	}
	return &review, nil
}

// DeleteReview removes the author's review and recomputes the laundry
// average over the remaining reviews in the same transaction.
func (s *gormStore) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("review %d not found", reviewID)
			}
			return err
		}
		if review.UserID != userID {
			return apperr.Forbidden("you can only delete your own reviews")
		}
		if err := tx.Delete(&model.Review{}, reviewID).Error; err != nil {
			return err
		}
		return recomputeFromReviews(tx, review.LaundryID)
	})
	if err != nil {
		return storeErr("failed to delete review", err)
	}
	return nil
}

// ReviewsForLaundry returns the laundry's reviews newest-first with the
// author identity preloaded.
func (s *gormStore) ReviewsForLaundry(ctx context.Context, laundryID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("laundry_id = ?", laundryID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.Internal("failed to list reviews", err)
	}
	return reviews, nil
}

// UserReview returns the caller's own review for a laundry, or NotFound.
func (s *gormStore) UserReview(ctx context.Context, userID, laundryID int64) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND laundry_id = ?", userID, laundryID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no review for laundry %d", laundryID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch review", err)
	}
	return &review, nil
}

// CanUserReview reports whether the user has a wash-history record for the
// laundry, the precondition for reviewing it.
func (s *gormStore) CanUserReview(ctx context.Context, userID, laundryID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.WashHistory{}).
		Where("user_id = ? AND laundry_id = ?", userID, laundryID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check laundry usage", err)
	}
	return count > 0, nil
}

// recomputeFromReviews rewrites the laundry's cached average as the
// arithmetic mean of all its review ratings, rounded to one decimal. With no
// reviews left the average becomes 0 rather than null; the wash-history
// rating channel uses null instead. The two channels write the same field
// and are deliberately not reconciled.
func recomputeFromReviews(tx *gorm.DB, laundryID int64) error {
	type agg struct {
		Avg float64
		N   int64
	}
	var a agg
	err := tx.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as n").
		Where("laundry_id = ?", laundryID).
		Scan(&a).Error
	if err != nil {
		return err
	}
	avg := roundRating(a.Avg)
	return tx.Model(&model.Laundry{}).
		Where("id = ?", laundryID).
		Update("rating", avg).Error
}
