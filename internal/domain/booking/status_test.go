package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":      StatusPending,
		"Confirmed":    StatusConfirmed,
		" cancelled ":  StatusCancelled,
		"canceled":     StatusCancelled,
		"no-show":      StatusNoShow,
		"noshow":       StatusNoShow,
		"no_show":      StatusNoShow,
		"deposit-paid": StatusDepositPaid,
		"deposit_paid": StatusDepositPaid,
	}

	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw=%q", raw)
	}

	// unknown values pass through lowered, not coerced
	assert.Equal(t, Status("whatever"), NormalizeStatus("Whatever"))
}

func TestCountsForConflict(t *testing.T) {
	holds := []Status{StatusPending, StatusConfirmed, StatusDepositPaid, StatusRescheduled, StatusCompleted}
	for _, s := range holds {
		assert.True(t, CountsForConflict(s), "status=%s", s)
	}

	released := []Status{StatusCancelled, StatusNoShow, StatusFailed}
	for _, s := range released {
		assert.False(t, CountsForConflict(s), "status=%s", s)
	}
}

func TestTransitionGuards(t *testing.T) {
	assert.NoError(t, CanConfirm(StatusPending))
	assert.NoError(t, CanConfirm(StatusDepositPaid))
	assert.NoError(t, CanConfirm(StatusConfirmed))
	assert.Error(t, CanConfirm(StatusCompleted))
	assert.Error(t, CanConfirm(StatusCancelled))

	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.Error(t, CanCancel(StatusCompleted))
	assert.Error(t, CanCancel(StatusCancelled))

	assert.NoError(t, CanReschedule(StatusConfirmed))
	assert.NoError(t, CanReschedule(StatusRescheduled))
	assert.Error(t, CanReschedule(StatusNoShow))

	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.Error(t, CanComplete(StatusPending))
	assert.Error(t, CanComplete(StatusCompleted))

	assert.NoError(t, CanMarkNoShow(StatusDepositPaid))
	assert.Error(t, CanMarkNoShow(StatusPending))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusFailed))
	assert.False(t, IsTerminal(StatusRescheduled))
	assert.False(t, IsTerminal(StatusPending))
}
