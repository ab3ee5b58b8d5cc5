package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/model"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewUserInput is the validated payload for account creation.
type NewUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// UpdateUserInput carries optional profile changes; empty fields are left
// untouched.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return apperr.Validation("email must have a valid format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return apperr.Validation("password must be at least 6 characters long")
	}
	return nil
}

// CreateUser registers a new account. The plaintext password is hashed and
// never stored.
func (s *gormStore) CreateUser(ctx context.Context, in NewUserInput) (*model.User, error) {
	if len(in.Name) < 2 {
		return nil, apperr.Validation("name must be at least 2 characters long")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("role must be either %q or %q", model.RoleCustomer, model.RoleOwner)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := emailTaken(tx, in.Email, 0); err != nil {
			return err
		} else if taken {
			return apperr.Conflict("email is already in use")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, storeErr("failed to create user", err)
	}
	return &user, nil
}

// GetUser fetches a user together with their laundries.
func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Laundries").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no account for %s", email)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

// UpdateUser applies the non-empty fields of in to the user's profile.
func (s *gormStore) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error) {
	if in.Name == "" && in.Email == "" && in.Password == "" {
		return nil, apperr.Validation("at least one field must be sent for the update")
	}

	updates := map[string]any{}
	if in.Name != "" {
		if len(in.Name) < 2 {
			return nil, apperr.Validation("name must be at least 2 characters long")
		}
		updates["name"] = in.Name
	}
	if in.Email != "" {
		if err := validateEmail(in.Email); err != nil {
			return nil, err
		}
		updates["email"] = in.Email
	}
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		updates["password_hash"] = hash
	}

	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if in.Email != "" && in.Email != user.Email {
			if taken, err := emailTaken(tx, in.Email, id); err != nil {
				return err
			} else if taken {
				return apperr.Conflict("email is already in use by another user")
			}
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, storeErr("failed to update user", err)
	}
	return &user, nil
}

// DeleteUser removes an account. Owners still holding laundries cannot be
// deleted; the laundries must be removed or transferred first.
func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		var owned int64
		if err := tx.Model(&model.Laundry{}).Where("owner_id = ?", id).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return apperr.Conflict("cannot delete an owner that still has laundries")
		}
		return tx.Delete(&model.User{}, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return storeErr("failed to delete user", err)
	}
	return nil
}

func emailTaken(tx *gorm.DB, email string, excludeID int64) (bool, error) {
	var count int64
	q := tx.Model(&model.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("email lookup failed: %w", err)
	}
	return count > 0, nil
}

// storeErr passes typed application errors through untouched and wraps
// anything else as an internal failure.
func storeErr(msg string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Internal(msg, err)
}
