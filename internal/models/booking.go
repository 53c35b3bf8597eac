package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	StudioID uint   `json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"studio"`

	StaffID uint  `gorm:"index" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID   uint    `json:"service_id"`
	Service     Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`
	VariationID uint    `json:"variation_id"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentMethod string `gorm:"size:20" json:"payment_method"` // deposit | pass | package
	OrderID       string `gorm:"size:64" json:"order_id"`

	TotalPrice       float64 `json:"total_price"`
	DepositAmount    float64 `json:"deposit_amount"`
	RemainingBalance float64 `json:"remaining_balance"`

	// Reschedule lineage: set only when a move creates a replacement row.
	// In-place reschedules mutate the same row and leave it nil.
	OriginalBookingID *uint `json:"original_booking_id"`

	CancelReason string `gorm:"size:255" json:"cancel_reason"`
	Notes        string `gorm:"size:255" json:"notes"`

	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
