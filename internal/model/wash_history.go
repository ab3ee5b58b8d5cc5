package model

import "time"

// WashHistory records one customer's use of a machine at a laundry.
// Rows are immutable once written, except for CustomerRating which may be
// set once by the customer afterwards (the wash-history rating channel).
type WashHistory struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"index;not null" json:"userId"`
	LaundryID      int64     `gorm:"index;not null" json:"laundryId"`
	MachineID      *int64    `gorm:"index" json:"machineId"`
	Timestamp      time.Time `gorm:"not null" json:"timestamp"`
	AmountCharged  float64   `json:"amountCharged"`
	CustomerRating *int      `json:"customerRating"`
	CreatedAt      time.Time `json:"createdAt"`

	// Associations
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Laundry Laundry  `gorm:"foreignKey:LaundryID" json:"laundry,omitempty"`
	Machine *Machine `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
}
