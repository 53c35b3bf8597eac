package models

import "time"

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `json:"studio_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	// When set, only this staff member may take bookings for the service.
	RequiredStaffID *uint `json:"required_staff_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
