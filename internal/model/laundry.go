package model

import "time"

// Laundry is a laundromat location belonging to one owner.
//
// Rating is a derived field: it always reflects the latest recomputation by
// the rating aggregation code and is never written from a client payload.
// It is nil while no wash-history rating exists for the laundry.
type Laundry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Address   string    `gorm:"size:256" json:"address"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Hours     string    `gorm:"size:64" json:"hours"`
	Services  string    `gorm:"size:256" json:"services"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Rating    *float64  `json:"rating"`
	OwnerID   int64     `gorm:"index;not null" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Machines []Machine `gorm:"foreignKey:LaundryID;constraint:OnDelete:CASCADE" json:"machines,omitempty"`
}
