package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/model"
)

// OwnerInput is the account half of an owner+laundry registration.
type OwnerInput struct {
	Name     string
	Email    string
	Password string
}

// LaundryInput is the laundry half of an owner+laundry registration, also
// used when an existing owner adds a location.
type LaundryInput struct {
	Name      string
	Address   string
	Phone     string
	Hours     string
	Services  string
	Latitude  float64
	Longitude float64
}

// UpdateLaundryInput carries optional changes. Pointer fields distinguish
// "leave untouched" from "set to empty".
type UpdateLaundryInput struct {
	Name      *string
	Address   *string
	Phone     *string
	Hours     *string
	Services  *string
	Latitude  *float64
	Longitude *float64
}

// RegisterOwnerWithLaundry creates the owner account and its first laundry
// as one transaction: either both rows exist afterwards or neither does.
// The role is forced to owner regardless of what the client sent.
func (s *gormStore) RegisterOwnerWithLaundry(ctx context.Context, owner OwnerInput, laundry LaundryInput) (*model.User, *model.Laundry, error) {
	if len(owner.Name) < 2 {
		return nil, nil, apperr.Validation("owner name must be at least 2 characters long")
	}
	if err := validateEmail(owner.Email); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(owner.Password); err != nil {
		return nil, nil, err
	}
	if len(laundry.Name) < 2 {
		return nil, nil, apperr.Validation("laundry name must be at least 2 characters long")
	}

	hash, err := auth.HashPassword(owner.Password)
	if err != nil {
		return nil, nil, apperr.Internal("failed to hash password", err)
	}

	newOwner := model.User{
		Name:         owner.Name,
		Email:        owner.Email,
		PasswordHash: hash,
		Role:         model.RoleOwner,
	}
	newLaundry := model.Laundry{
		Name:      laundry.Name,
		Address:   laundry.Address,
		Phone:     laundry.Phone,
		Hours:     laundry.Hours,
		Services:  laundry.Services,
		Latitude:  laundry.Latitude,
		Longitude: laundry.Longitude,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := emailTaken(tx, owner.Email, 0); err != nil {
			return err
		} else if taken {
			return apperr.Conflict("email is already registered")
		}
		if err := tx.Create(&newOwner).Error; err != nil {
			return err
		}
		newLaundry.OwnerID = newOwner.ID
		return tx.Create(&newLaundry).Error
	})
	if err != nil {
		return nil, nil, storeErr("failed to register owner with laundry", err)
	}
	return &newOwner, &newLaundry, nil
}

func (s *gormStore) ListLaundries(ctx context.Context) ([]model.Laundry, error) {
	var laundries []model.Laundry
	if err := s.db.WithContext(ctx).Preload("Owner").Find(&laundries).Error; err != nil {
		return nil, apperr.Internal("failed to list laundries", err)
	}
	return laundries, nil
}

func (s *gormStore) GetLaundry(ctx context.Context, id int64) (*model.Laundry, error) {
	var laundry model.Laundry
	err := s.db.WithContext(ctx).Preload("Owner").First(&laundry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("laundry %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch laundry", err)
	}
	return &laundry, nil
}

func (s *gormStore) LaundriesByOwner(ctx context.Context, ownerID int64) ([]model.Laundry, error) {
	var laundries []model.Laundry
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&laundries).Error; err != nil {
		return nil, apperr.Internal("failed to list laundries by owner", err)
	}
	return laundries, nil
}

// UpdateLaundry applies the set fields of in. The derived rating field is
// deliberately not updatable here.
func (s *gormStore) UpdateLaundry(ctx context.Context, id int64, in UpdateLaundryInput) (*model.Laundry, error) {
	updates := map[string]any{}
	if in.Name != nil {
		if len(*in.Name) < 2 {
			return nil, apperr.Validation("laundry name must be at least 2 characters long")
		}
		updates["name"] = *in.Name
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Hours != nil {
		updates["hours"] = *in.Hours
	}
	if in.Services != nil {
		updates["services"] = *in.Services
	}
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("at least one field must be sent for the update")
	}

	var laundry model.Laundry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&laundry, id).Error; err != nil {
			return err
		}
		return tx.Model(&laundry).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("laundry %d not found", id)
	}
	if err != nil {
		return nil, storeErr("failed to update laundry", err)
	}
	return &laundry, nil
}

func (s *gormStore) DeleteLaundry(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Laundry{}, id)
	if res.Error != nil {
		return apperr.Internal("failed to delete laundry", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("laundry %d not found", id)
	}
	return nil
}
