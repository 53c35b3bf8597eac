package models

import "time"

// Attribute types a service variant can carry.
const (
	AttributeDuration = "duration"
	AttributePasses   = "passes"
	AttributePackage  = "package"
	AttributeCustom   = "custom"
)

// ServiceAttribute is a priced variant dimension of a service, e.g. a
// "duration" attribute with value "90" priced differently from the base
// duration. At most one row may exist per (service, type, value, variation).
type ServiceAttribute struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `gorm:"uniqueIndex:idx_service_attr" json:"service_id"`

	AttributeType string  `gorm:"size:20;uniqueIndex:idx_service_attr" json:"attribute_type"`
	Value         string  `gorm:"size:100;uniqueIndex:idx_service_attr" json:"value"`
	Price         float64 `json:"price"`

	VariationID uint `gorm:"uniqueIndex:idx_service_attr" json:"variation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
