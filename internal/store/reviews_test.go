package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

// reserveMachine runs a customer reservation, which is what makes the
// customer eligible to review the laundry.
func reserveMachine(t *testing.T, s Store, machineID, userID int64) {
	t.Helper()
	_, err := s.SetMachineStatus(context.Background(), machineID, model.StatusInUse,
		Actor{UserID: userID, Role: model.RoleCustomer})
	require.NoError(t, err)
}

func TestSubmitReview_RequiresPriorUsage(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")

	_, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, 5, "great")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	ok, err := s.CanUserReview(context.Background(), bob.ID, laundry.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	reserveMachine(t, s, machine.ID, bob.ID)

	ok, err = s.CanUserReview(context.Background(), bob.ID, laundry.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	review, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	updated, err := s.GetLaundry(context.Background(), laundry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5.0, *updated.Rating)
}

func TestSubmitReview_RejectsOutOfRangeRating(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	reserveMachine(t, s, machine.ID, bob.ID)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, rating, "")
		assert.True(t, apperr.Is(err, apperr.KindValidation), "rating %d must be rejected", rating)
	}
}

func TestSubmitReview_ResubmitReplacesExisting(t *testing.T) {
	s, gormDB := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	reserveMachine(t, s, machine.ID, bob.ID)

	_, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, 3, "ok")
	require.NoError(t, err)
	_, err = s.SubmitReview(context.Background(), bob.ID, laundry.ID, 5, "better now")
	require.NoError(t, err)

	var reviews []model.Review
	require.NoError(t, gormDB.Where("user_id = ? AND laundry_id = ?", bob.ID, laundry.ID).Find(&reviews).Error)
	require.Len(t, reviews, 1, "resubmitting must replace, not duplicate")
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "better now", reviews[0].Comment)

	updated, err := s.GetLaundry(context.Background(), laundry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5.0, *updated.Rating)
}

func TestLaundryRating_IsRoundedAverage(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	dana := seedCustomer(t, s, "dana@x.com")

	reserveMachine(t, s, machine.ID, bob.ID)
	// Free the machine so dana can use it too.
	owner, err := s.GetUserByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	_, err = s.SetMachineStatus(context.Background(), machine.ID, model.StatusAvailable,
		Actor{UserID: owner.ID, Role: model.RoleOwner})
	require.NoError(t, err)
	reserveMachine(t, s, machine.ID, dana.ID)

	_, err = s.SubmitReview(context.Background(), bob.ID, laundry.ID, 4, "")
	require.NoError(t, err)
	_, err = s.SubmitReview(context.Background(), dana.ID, laundry.ID, 5, "")
	require.NoError(t, err)

	updated, err := s.GetLaundry(context.Background(), laundry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4.5, *updated.Rating)
}

func TestDeleteReview_AuthorOnlyAndRecomputes(t *testing.T) {
	s, _ := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	bob := seedCustomer(t, s, "bob@x.com")
	dana := seedCustomer(t, s, "dana@x.com")
	reserveMachine(t, s, machine.ID, bob.ID)

	review, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, 4, "")
	require.NoError(t, err)

	err = s.DeleteReview(context.Background(), review.ID, dana.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, s.DeleteReview(context.Background(), review.ID, bob.ID))

	// With no reviews left the public rating resets to zero.
	updated, err := s.GetLaundry(context.Background(), laundry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 0.0, *updated.Rating)
}

func TestReviewsForLaundry_NewestFirstWithAuthor(t *testing.T) {
	s, gormDB := newTestStore(t)
	_, laundry := seedOwnerWithLaundry(t, s, "ana@x.com")
	machine := seedMachine(t, s, laundry.ID, 10)
	owner, err := s.GetUserByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)

	bob := seedCustomer(t, s, "bob@x.com")
	dana := seedCustomer(t, s, "dana@x.com")
	reserveMachine(t, s, machine.ID, bob.ID)
	_, err = s.SetMachineStatus(context.Background(), machine.ID, model.StatusAvailable,
		Actor{UserID: owner.ID, Role: model.RoleOwner})
	require.NoError(t, err)
	reserveMachine(t, s, machine.ID, dana.ID)

	first, err := s.SubmitReview(context.Background(), bob.ID, laundry.ID, 4, "older")
	require.NoError(t, err)
	_, err = s.SubmitReview(context.Background(), dana.ID, laundry.ID, 5, "newer")
	require.NoError(t, err)

	// Backdate bob's review so the ordering is unambiguous.
	require.NoError(t, gormDB.Model(&model.Review{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	reviews, err := s.ReviewsForLaundry(context.Background(), laundry.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "newer", reviews[0].Comment)
	assert.Equal(t, "older", reviews[1].Comment)
	assert.Equal(t, "Bob", reviews[0].User.Name)
}
