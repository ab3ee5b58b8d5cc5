package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/model"
)

func TestRegisterOwnerWithLaundry_HappyPath(t *testing.T) {
	s, gormDB := newTestStore(t)

	owner, laundry, err := s.RegisterOwnerWithLaundry(context.Background(),
		OwnerInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"},
		LaundryInput{Name: "Lava Já", Address: "Rua A, 1", Hours: "08:00-22:00", Phone: "5511999999999"},
	)
	require.NoError(t, err)

	assert.Equal(t, model.RoleOwner, owner.Role, "role is forced to owner")
	assert.Equal(t, owner.ID, laundry.OwnerID)
	assert.Nil(t, laundry.Rating, "a new laundry has no rating yet")

	// The stored credential is a hash, never the plaintext.
	var persisted model.User
	require.NoError(t, gormDB.First(&persisted, owner.ID).Error)
	assert.NotEqual(t, "secret1", persisted.PasswordHash)
	assert.True(t, auth.CheckPassword(persisted.PasswordHash, "secret1"))
}

func TestRegisterOwnerWithLaundry_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		owner   OwnerInput
		laundry LaundryInput
	}{
		{"short owner name", OwnerInput{Name: "A", Email: "a@x.com", Password: "secret1"}, LaundryInput{Name: "Lava Já"}},
		{"bad email", OwnerInput{Name: "Ana", Email: "not-an-email", Password: "secret1"}, LaundryInput{Name: "Lava Já"}},
		{"email with spaces", OwnerInput{Name: "Ana", Email: "a b@x.com", Password: "secret1"}, LaundryInput{Name: "Lava Já"}},
		{"short password", OwnerInput{Name: "Ana", Email: "a@x.com", Password: "12345"}, LaundryInput{Name: "Lava Já"}},
		{"short laundry name", OwnerInput{Name: "Ana", Email: "a@x.com", Password: "secret1"}, LaundryInput{Name: "L"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.RegisterOwnerWithLaundry(ctx, tc.owner, tc.laundry)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestRegisterOwnerWithLaundry_DuplicateEmail(t *testing.T) {
	s, gormDB := newTestStore(t)
	seedOwnerWithLaundry(t, s, "ana@x.com")

	_, _, err := s.RegisterOwnerWithLaundry(context.Background(),
		OwnerInput{Name: "Impostor", Email: "ana@x.com", Password: "secret1"},
		LaundryInput{Name: "Outra Lavanderia"},
	)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// Neither half of the failed registration exists.
	var users, laundries int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, gormDB.Model(&model.Laundry{}).Count(&laundries).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), laundries)
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// When the laundry insert fails the owner insert must be rolled back with it.
func TestRegisterOwnerWithLaundry_RollsBackOnLaundryFailure(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ana@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "laundries"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := s.RegisterOwnerWithLaundry(context.Background(),
		OwnerInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"},
		LaundryInput{Name: "Lava Já"},
	)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
