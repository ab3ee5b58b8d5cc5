package model

import "time"

// Booking is a scheduled reservation window for a machine.
// Windows are half-open: a booking occupies [StartsAt, EndsAt).
type Booking struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MachineID int64     `gorm:"index;not null" json:"machineId"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	StartsAt  time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt    time.Time `gorm:"not null" json:"endsAt"`
	Canceled  bool      `gorm:"not null;default:false" json:"canceled"`
	CreatedAt time.Time `json:"createdAt"`

	// Associations
	Machine Machine `gorm:"foreignKey:MachineID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// Contains reports whether t falls inside the booking window.
func (b Booking) Contains(t time.Time) bool {
	return !t.Before(b.StartsAt) && t.Before(b.EndsAt)
}

// Overlaps reports whether [start, end) intersects the booking window.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndsAt) && b.StartsAt.Before(end)
}
