package models

import "time"

type Studio struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"size:100;not null" json:"name"`
	Slug              string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone             string `gorm:"size:20" json:"phone"`
	Address           string `gorm:"size:255" json:"address"`
	Timezone          string `gorm:"size:64" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	// Shown on checkout alongside the deposit amount.
	DepositDisclosure string `gorm:"size:255" json:"deposit_disclosure"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
