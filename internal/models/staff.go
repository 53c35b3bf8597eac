package models

import "time"

type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StudioID uint   `json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"studio"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'practitioner'" json:"role"`

	// Last-resort working hours when no availability rule and no per-day
	// default matches. Empty means the service-wide 09:00-17:00 fallback.
	DefaultStartTime string `gorm:"size:5" json:"default_start_time"`
	DefaultEndTime   string `gorm:"size:5" json:"default_end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffDayDefault overrides the staff-level default hours for one weekday.
type StaffDayDefault struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	DayOff    bool   `json:"day_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
