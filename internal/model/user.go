package model

import "time"

// Role classifies what a user account may do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// User is a registered account, either a customer or a laundry owner.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Associations
	Laundries []Laundry `gorm:"foreignKey:OwnerID" json:"laundries,omitempty"`
}

// PublicUser is the identity shape exposed to other users.
type PublicUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
