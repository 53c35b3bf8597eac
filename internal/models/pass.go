package models

import "time"

const (
	EntitlementActive  = "active"
	EntitlementExpired = "expired"
	EntitlementUsedUp  = "used_up"
)

// Pass is a decrementing-count entitlement for one service (ServiceID 0 =
// any service). RemainingPasses never goes below zero; consumption is a
// guarded atomic decrement.
type Pass struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index" json:"customer_id"`
	ServiceID  uint `json:"service_id"`

	TotalPasses     int `json:"total_passes"`
	RemainingPasses int `json:"remaining_passes"`

	ExpiresOn string `gorm:"size:10" json:"expires_on"` // YYYY-MM-DD, empty = never
	Status    string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PassUsage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PassID    uint `gorm:"index" json:"pass_id"`
	BookingID uint `json:"booking_id"`

	UsedAt time.Time `json:"used_at"`
}
