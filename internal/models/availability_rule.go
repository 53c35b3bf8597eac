package models

import "time"

// Recurrence kinds for weekday-keyed rules.
const (
	RecurringWeekly   = "weekly"
	RecurringBiweekly = "biweekly"
	RecurringMonthly  = "monthly"
)

// AvailabilityRule is one staff member's offer of working time. A rule is
// either date-specific (Date set, Weekday ignored) or recurring (Weekday set
// with a recurrence kind). ServiceID 0 means the rule applies to any service.
type AvailabilityRule struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StaffID   uint `gorm:"index" json:"staff_id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	Date    string `gorm:"size:10" json:"date"` // YYYY-MM-DD, empty for recurring
	Weekday int    `json:"weekday"`

	RecurringType    string `gorm:"size:10" json:"recurring_type"`
	RecurringEndDate string `gorm:"size:10" json:"recurring_end_date"`

	// ceil(dayOfMonth/7) % 2 must equal this for biweekly rules.
	BiweeklyPattern   int  `json:"biweekly_pattern"`
	SkipFifthWeek     bool `json:"skip_fifth_week"`
	MonthlyOccurrence int  `json:"monthly_occurrence"` // 0 = every matching week

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Closed marks an explicit "does not work" rule; it beats every fallback.
	Closed bool `json:"closed"`
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
