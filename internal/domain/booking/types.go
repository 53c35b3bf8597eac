package booking

import "time"

type AvailabilityInput struct {
	StudioID  uint
	StaffID   uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	DurationMin int    `json:"duration_min"`
}

// Hours is a resolved working window in HH:MM wall-clock time.
type Hours struct {
	Start string
	End   string
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// SlotStepMinutes is the fixed tick the slot generator walks in, regardless
// of slot duration.
const SlotStepMinutes = 15

const (
	FallbackStartTime = "09:00"
	FallbackEndTime   = "17:00"
)
