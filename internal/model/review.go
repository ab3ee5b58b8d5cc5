package model

import "time"

// Review is a usage-gated rating a customer leaves for a laundry.
// The composite unique index enforces at most one review per (user, laundry)
// pair; submitting again overwrites the existing row.
type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_review_user_laundry" json:"userId"`
	LaundryID int64     `gorm:"not null;uniqueIndex:idx_review_user_laundry;index" json:"laundryId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"size:1024" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Laundry Laundry `gorm:"foreignKey:LaundryID" json:"-"`
}
