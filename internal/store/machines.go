package store

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

// NewMachineInput is the payload for machine creation.
type NewMachineInput struct {
	Name         string
	Capacity     int
	PricePerWash float64
	Notes        string
	LaundryID    int64
}

// UpdateMachineInput carries optional machine changes.
type UpdateMachineInput struct {
	Name         *string
	Capacity     *int
	PricePerWash *float64
	Notes        *string
	Status       *model.MachineStatus
}

// StatusCounts aggregates a laundry's machines by status.
type StatusCounts struct {
	Available   int64 `json:"available"`
	InUse       int64 `json:"in_use"`
	Maintenance int64 `json:"maintenance"`
	Total       int64 `json:"total"`
}

func (s *gormStore) CreateMachine(ctx context.Context, in NewMachineInput) (*model.Machine, error) {
	if in.Name == "" {
		return nil, apperr.Validation("machine name is required")
	}
	if in.PricePerWash < 0 {
		return nil, apperr.Validation("price per wash must be a positive number")
	}

	machine := model.Machine{
		Name:         in.Name,
		Capacity:     in.Capacity,
		PricePerWash: in.PricePerWash,
		Notes:        in.Notes,
		Status:       model.StatusAvailable,
		LaundryID:    in.LaundryID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var laundry model.Laundry
		if err := tx.First(&laundry, in.LaundryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("laundry %d not found", in.LaundryID)
			}
			return err
		}
		return tx.Create(&machine).Error
	})
	if err != nil {
		return nil, storeErr("failed to create machine", err)
	}
	return &machine, nil
}

func (s *gormStore) GetMachine(ctx context.Context, id int64) (*model.Machine, error) {
	var machine model.Machine
	err := s.db.WithContext(ctx).Preload("Laundry").First(&machine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("machine %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch machine", err)
	}
	return &machine, nil
}

func (s *gormStore) MachinesByLaundry(ctx context.Context, laundryID int64) ([]model.Machine, error) {
	var machines []model.Machine
	err := s.db.WithContext(ctx).
		Where("laundry_id = ?", laundryID).
		Order("name ASC").
		Find(&machines).Error
	if err != nil {
		return nil, apperr.Internal("failed to list machines", err)
	}
	return machines, nil
}

func (s *gormStore) UpdateMachine(ctx context.Context, id int64, in UpdateMachineInput) (*model.Machine, error) {
	updates := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("machine name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.PricePerWash != nil {
		if *in.PricePerWash < 0 {
			return nil, apperr.Validation("price per wash must be a positive number")
		}
		updates["price_per_wash"] = *in.PricePerWash
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("invalid status, use: available, in_use or maintenance")
		}
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("at least one field must be sent for the update")
	}

	var machine model.Machine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&machine, id).Error; err != nil {
			return err
		}
		return tx.Model(&machine).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("machine %d not found", id)
	}
	if err != nil {
		return nil, storeErr("failed to update machine", err)
	}
	return &machine, nil
}

func (s *gormStore) DeleteMachine(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Machine{}, id)
	if res.Error != nil {
		return apperr.Internal("failed to delete machine", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("machine %d not found", id)
	}
	return nil
}

func (s *gormStore) StatusCounts(ctx context.Context, laundryID int64) (StatusCounts, error) {
	type row struct {
		Status model.MachineStatus
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&model.Machine{}).
		Select("status, COUNT(*) as n").
		Where("laundry_id = ?", laundryID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, apperr.Internal("failed to aggregate machine statuses", err)
	}

	var counts StatusCounts
	for _, r := range rows {
		switch r.Status {
		case model.StatusAvailable:
			counts.Available = r.N
		case model.StatusInUse:
			counts.InUse = r.N
		case model.StatusMaintenance:
			counts.Maintenance = r.N
		}
		counts.Total += r.N
	}
	return counts, nil
}

// SetMachineStatus applies a role-gated status transition.
//
// An owner may move machines of their own laundries between any of the three
// statuses. A customer may only reserve: the single transition
// available -> in_use, expressed as a conditional update so that two racing
// reservations cannot both succeed. A successful customer reservation also
// records a wash-history entry; that write is best-effort and never fails or
// rolls back the reservation itself.
func (s *gormStore) SetMachineStatus(ctx context.Context, machineID int64, requested model.MachineStatus, actor Actor) (*model.Machine, error) {
	if !requested.Valid() {
		return nil, apperr.Validation("invalid status, use: available, in_use or maintenance")
	}

	machine, err := s.GetMachine(ctx, machineID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch actor.Role {
	case model.RoleOwner:
		if machine.Laundry.OwnerID != actor.UserID {
			return nil, apperr.Forbidden("you can only change machines of your own laundries")
		}
		err := s.db.WithContext(ctx).
			Model(&model.Machine{}).
			Where("id = ?", machineID).
			Updates(map[string]any{"status": requested, "updated_at": now}).Error
		if err != nil {
			return nil, apperr.Internal("failed to update machine status", err)
		}

	case model.RoleCustomer:
		if requested != model.StatusInUse {
			return nil, apperr.Validation("customers can only reserve machines (set status to in_use)")
		}
		// Compare-and-swap on the prior status: losing a race to another
		// reservation is indistinguishable from the machine not being
		// available in the first place.
		res := s.db.WithContext(ctx).
			Model(&model.Machine{}).
			Where("id = ? AND status = ?", machineID, model.StatusAvailable).
			Updates(map[string]any{"status": model.StatusInUse, "updated_at": now})
		if res.Error != nil {
			return nil, apperr.Internal("failed to reserve machine", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperr.Validation("only available machines can be reserved")
		}

		s.recordReservation(ctx, machine, actor.UserID, now)

	default:
		return nil, apperr.Forbidden("user role is not authorized to change machine status")
	}

	machine.Status = requested
	machine.UpdatedAt = now
	return machine, nil
}

// recordReservation writes the wash-history side effect of a reservation.
// Failures are logged and swallowed: the audit trail is traded for
// reservation availability.
func (s *gormStore) recordReservation(ctx context.Context, machine *model.Machine, userID int64, now time.Time) {
	machineID := machine.ID
	entry := model.WashHistory{
		UserID:        userID,
		LaundryID:     machine.LaundryID,
		MachineID:     &machineID,
		Timestamp:     now,
		AmountCharged: machine.PricePerWash,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("wash history write failed for machine %d, user %d: %v", machineID, userID, err)
	}
}
