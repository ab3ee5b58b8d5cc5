package model

import "time"

// MachineStatus is the stored operational state of a machine.
type MachineStatus string

const (
	StatusAvailable   MachineStatus = "available"
	StatusInUse       MachineStatus = "in_use"
	StatusMaintenance MachineStatus = "maintenance"
)

// Valid reports whether s is one of the three recognized statuses.
func (s MachineStatus) Valid() bool {
	return s == StatusAvailable || s == StatusInUse || s == StatusMaintenance
}

// Machine is a washing unit belonging to a laundry.
type Machine struct {
	ID           int64         `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:128;not null" json:"name"`
	Capacity     int           `json:"capacity"`
	PricePerWash float64       `json:"pricePerWash"`
	Notes        string        `gorm:"size:512" json:"notes"`
	Status       MachineStatus `gorm:"size:16;not null;default:'available'" json:"status"`
	LaundryID    int64         `gorm:"index;not null" json:"laundryId"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Associations
	Laundry Laundry `gorm:"foreignKey:LaundryID" json:"laundry,omitempty"`
}
