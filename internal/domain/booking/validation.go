package booking

import (
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// ===============================
// Validation verdict
// ===============================

type Reason string

const (
	ReasonMissingFields  Reason = "missing_fields"
	ReasonTimeConflict   Reason = "time_conflict"
	ReasonScheduleClosed Reason = "schedule_closed"
	ReasonStaffMismatch  Reason = "staff_mismatch"
)

type Verdict struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func invalid(reason Reason, message string) Verdict {
	return Verdict{Valid: false, Reason: reason, Message: message}
}

type ValidateInput struct {
	StaffID uint
	Start   time.Time
	End     time.Time

	Service *models.Service

	// Current snapshot: resolved hours for the staff/service/date and the
	// staff member's bookings for that date.
	Hours     Hours
	Available bool
	Existing  []models.Booking
}

// Validate is a pure pass/fail verdict over its inputs plus the snapshot the
// caller fetched; it performs no I/O.
func Validate(in ValidateInput) Verdict {
	if in.StaffID == 0 || in.Start.IsZero() || in.End.IsZero() {
		return invalid(ReasonMissingFields, "staff, date and time are required")
	}

	if !in.Available {
		return invalid(ReasonScheduleClosed, "the practitioner does not work at this time")
	}

	windowStart, windowEnd := HoursWindow(in.Hours, in.Start)
	if in.Start.Before(windowStart) || in.End.After(windowEnd) {
		return invalid(ReasonScheduleClosed, "the requested time falls outside working hours")
	}

	if HasConflict(in.Start, in.End, in.Existing) {
		return invalid(ReasonTimeConflict, "the requested time is already booked")
	}

	if in.Service != nil && in.Service.RequiredStaffID != nil && *in.Service.RequiredStaffID != in.StaffID {
		return invalid(ReasonStaffMismatch, "this service is offered by a different practitioner")
	}

	return Verdict{Valid: true}
}
