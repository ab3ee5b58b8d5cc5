package model

import "time"

// SupportTicket is a message submitted through the public support form.
type SupportTicket struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:256;not null" json:"email"`
	Message   string    `gorm:"size:4096;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
