package booking

import (
	"strings"

	"github.com/MLSatya/spark-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusDepositPaid Status = "deposit_paid"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusFailed      Status = "failed"
)

// NormalizeStatus maps the legacy spellings that appear in imported data
// ("canceled", "no-show", "noshow") onto the canonical vocabulary. Unknown
// values pass through unchanged so callers can reject them explicitly.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "canceled", "cancelled":
		return StatusCancelled
	case "no-show", "noshow", "no_show":
		return StatusNoShow
	case "deposit-paid", "deposit_paid":
		return StatusDepositPaid
	default:
		return Status(strings.ToLower(strings.TrimSpace(raw)))
	}
}

// CountsForConflict reports whether a booking in this status still occupies
// its time window.
func CountsForConflict(s Status) bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusFailed:
		return false
	}
	return true
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusFailed:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

func CanConfirm(current Status) error {
	switch current {
	case StatusPending, StatusDepositPaid, StatusRescheduled:
		return nil
	case StatusConfirmed:
		// Repeated confirms converge; callers treat this as a no-op.
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	switch current {
	case StatusConfirmed, StatusDepositPaid, StatusRescheduled, StatusPending:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanComplete(current Status) error {
	switch current {
	case StatusConfirmed, StatusDepositPaid, StatusRescheduled:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanMarkNoShow(current Status) error {
	switch current {
	case StatusConfirmed, StatusDepositPaid, StatusRescheduled:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}
