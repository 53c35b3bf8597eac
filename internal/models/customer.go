package models

import "time"

// Customer records are keyed by email within a studio and created
// opportunistically on every write path that carries contact details.
type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"uniqueIndex:idx_customer_email" json:"studio_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;uniqueIndex:idx_customer_email" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
