package models

import "time"

// ServicePackage is a date-bounded entitlement covering one or more services.
// ServiceIDs is a comma-separated id list, or "all". Unlike passes, packages
// carry no counter: consumption is tracked only by PackageUsage rows.
type ServicePackage struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index" json:"customer_id"`

	ServiceIDs string `gorm:"size:255;default:'all'" json:"service_ids"`

	ExpiresOn string `gorm:"size:10" json:"expires_on"`
	Status    string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PackageUsage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PackageID uint `gorm:"index" json:"package_id"`
	BookingID uint `json:"booking_id"`
	ServiceID uint `json:"service_id"`

	UsedAt time.Time `json:"used_at"`
}
