package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

func TestConfirm_IsIdempotent(t *testing.T) {
	b := &models.Booking{Status: "pending"}
	now := at(t, "12:00")

	require.NoError(t, Confirm(b, now))
	assert.Equal(t, "confirmed", b.Status)
	require.NotNil(t, b.ConfirmedAt)
	first := *b.ConfirmedAt

	// confirming again converges without touching the timestamp
	require.NoError(t, Confirm(b, at(t, "14:00")))
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, first, *b.ConfirmedAt)
}

func TestConfirm_RejectsTerminal(t *testing.T) {
	b := &models.Booking{Status: "completed"}
	assert.Error(t, Confirm(b, at(t, "12:00")))
	assert.Equal(t, "completed", b.Status)
}

func TestMarkDepositPaid(t *testing.T) {
	b := &models.Booking{Status: "pending"}
	now := at(t, "12:00")

	require.NoError(t, MarkDepositPaid(b, "order-1", now))
	assert.Equal(t, "deposit_paid", b.Status)
	assert.Equal(t, "order-1", b.OrderID)

	// replaying the webhook leaves the order id alone
	require.NoError(t, MarkDepositPaid(b, "order-2", now))
	assert.Equal(t, "order-1", b.OrderID)

	// a confirmed booking stays confirmed
	b = &models.Booking{Status: "confirmed"}
	require.NoError(t, MarkDepositPaid(b, "order-3", now))
	assert.Equal(t, "confirmed", b.Status)
}

func TestCancel_RecordsReason(t *testing.T) {
	b := &models.Booking{Status: "confirmed"}
	now := at(t, "12:00")

	require.NoError(t, Cancel(b, "client request", now))
	assert.Equal(t, "cancelled", b.Status)
	assert.Equal(t, "client request", b.CancelReason)
	require.NotNil(t, b.CancelledAt)

	// cannot cancel twice
	assert.Error(t, Cancel(b, "again", now))
}

func TestReschedule_PreservesDuration(t *testing.T) {
	b := &models.Booking{
		Status:       "confirmed",
		StartTime:    at(t, "10:00"),
		EndTime:      at(t, "11:30"),
		DurationMin:  90,
		ReminderSent: true,
	}

	newStart := at(t, "14:00")
	require.NoError(t, Reschedule(b, newStart))

	assert.Equal(t, "rescheduled", b.Status)
	assert.Equal(t, newStart, b.StartTime)
	assert.Equal(t, newStart.Add(90*time.Minute), b.EndTime)
	assert.Equal(t, 90, b.DurationMin)
	assert.False(t, b.ReminderSent, "the reminder resets for the new time")
}

func TestReschedule_DerivesDurationFromWindow(t *testing.T) {
	b := &models.Booking{
		Status:    "pending",
		StartTime: at(t, "10:00"),
		EndTime:   at(t, "10:45"),
	}

	newStart := at(t, "15:00")
	require.NoError(t, Reschedule(b, newStart))
	assert.Equal(t, newStart.Add(45*time.Minute), b.EndTime)
	assert.Equal(t, 45, b.DurationMin)
}

func TestComplete_And_NoShow(t *testing.T) {
	b := &models.Booking{Status: "confirmed"}
	require.NoError(t, Complete(b, at(t, "12:00")))
	assert.Equal(t, "completed", b.Status)
	require.NotNil(t, b.CompletedAt)

	b = &models.Booking{Status: "deposit_paid"}
	require.NoError(t, MarkNoShow(b, at(t, "12:00")))
	assert.Equal(t, "no_show", b.Status)

	// pending bookings never reach these states
	b = &models.Booking{Status: "pending"}
	assert.Error(t, Complete(b, at(t, "12:00")))
	assert.Error(t, MarkNoShow(b, at(t, "12:00")))
}
