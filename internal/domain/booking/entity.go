package booking

import (
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	current := NormalizeStatus(b.Status)
	if err := CanConfirm(current); err != nil {
		return err
	}

	if current == StatusConfirmed {
		// already converged
		return nil
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func MarkDepositPaid(b *models.Booking, orderID string, now time.Time) error {
	current := NormalizeStatus(b.Status)
	if current == StatusDepositPaid || current == StatusConfirmed {
		return nil
	}
	if current != StatusPending && current != StatusRescheduled {
		return CanConfirm(current)
	}

	b.Status = string(StatusDepositPaid)
	b.OrderID = orderID
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanCancel(NormalizeStatus(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelReason = reason
	b.CancelledAt = &now
	return nil
}

// Reschedule moves the booking to a new start, preserving its duration. The
// end is always recomputed from the original duration; validation against the
// new window is the caller's responsibility and runs on every path.
func Reschedule(b *models.Booking, newStart time.Time) error {
	if err := CanReschedule(NormalizeStatus(b.Status)); err != nil {
		return err
	}

	duration := b.DurationMin
	if duration <= 0 {
		duration = int(b.EndTime.Sub(b.StartTime).Minutes())
	}

	b.StartTime = newStart
	b.EndTime = newStart.Add(time.Duration(duration) * time.Minute)
	b.DurationMin = duration
	b.Status = string(StatusRescheduled)
	b.ReminderSent = false
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(NormalizeStatus(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(NormalizeStatus(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	return nil
}
