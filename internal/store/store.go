package store

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"wishwash-backend/internal/model"
)

// Actor is the decoded identity performing a store operation. Permission
// rules in the store trust it unconditionally; the auth middleware is
// responsible for having validated the token it came from.
type Actor struct {
	UserID int64
	Role   model.Role
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Users
	CreateUser(ctx context.Context, in NewUserInput) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Laundries
	RegisterOwnerWithLaundry(ctx context.Context, owner OwnerInput, laundry LaundryInput) (*model.User, *model.Laundry, error)
	ListLaundries(ctx context.Context) ([]model.Laundry, error)
	GetLaundry(ctx context.Context, id int64) (*model.Laundry, error)
	LaundriesByOwner(ctx context.Context, ownerID int64) ([]model.Laundry, error)
	UpdateLaundry(ctx context.Context, id int64, in UpdateLaundryInput) (*model.Laundry, error)
	DeleteLaundry(ctx context.Context, id int64) error

	// Machines
	CreateMachine(ctx context.Context, in NewMachineInput) (*model.Machine, error)
	GetMachine(ctx context.Context, id int64) (*model.Machine, error)
	MachinesByLaundry(ctx context.Context, laundryID int64) ([]model.Machine, error)
	UpdateMachine(ctx context.Context, id int64, in UpdateMachineInput) (*model.Machine, error)
	DeleteMachine(ctx context.Context, id int64) error
	StatusCounts(ctx context.Context, laundryID int64) (StatusCounts, error)
	SetMachineStatus(ctx context.Context, machineID int64, requested model.MachineStatus, actor Actor) (*model.Machine, error)

	// Bookings
	CreateBooking(ctx context.Context, machineID, userID int64, startsAt, endsAt time.Time) (*model.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) error
	BookingsInRange(ctx context.Context, machineID int64, from, to time.Time) ([]model.Booking, error)

	// Reviews
	SubmitReview(ctx context.Context, userID, laundryID int64, rating int, comment string) (*model.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID int64) error
	ReviewsForLaundry(ctx context.Context, laundryID int64) ([]model.Review, error)
	UserReview(ctx context.Context, userID, laundryID int64) (*model.Review, error)
	CanUserReview(ctx context.Context, userID, laundryID int64) (bool, error)

	// Wash history
	CreateHistory(ctx context.Context, in NewHistoryInput) (*model.WashHistory, error)
	HistoryByUser(ctx context.Context, userID int64) ([]model.WashHistory, error)
	HistoryByLaundry(ctx context.Context, laundryID int64) ([]model.WashHistory, error)
	RateHistoryEntry(ctx context.Context, historyID, userID int64, rating int) (*model.WashHistory, error)

	// Support
	CreateSupportTicket(ctx context.Context, ticket *model.SupportTicket) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for read-only handler queries.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// roundRating rounds an average to one decimal place, the precision the
// laundry rating field is displayed with.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
