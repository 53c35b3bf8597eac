package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	base, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+hhmm)
	if err != nil {
		t.Fatalf("bad time %q: %v", hhmm, err)
	}
	return base
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// back to back intervals share an endpoint and do not conflict
	assert.False(t, Overlaps(at(t, "10:00"), at(t, "11:00"), at(t, "11:00"), at(t, "12:00")))
	assert.False(t, Overlaps(at(t, "11:00"), at(t, "12:00"), at(t, "10:00"), at(t, "11:00")))

	// one minute of overlap conflicts
	assert.True(t, Overlaps(at(t, "10:00"), at(t, "11:01"), at(t, "11:00"), at(t, "12:00")))

	// containment conflicts both ways
	assert.True(t, Overlaps(at(t, "10:00"), at(t, "12:00"), at(t, "10:30"), at(t, "11:00")))
	assert.True(t, Overlaps(at(t, "10:30"), at(t, "11:00"), at(t, "10:00"), at(t, "12:00")))

	// identical intervals conflict
	assert.True(t, Overlaps(at(t, "10:00"), at(t, "11:00"), at(t, "10:00"), at(t, "11:00")))
}

func TestHasConflict_IgnoresReleasedStatuses(t *testing.T) {
	existing := []models.Booking{
		{StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "cancelled"},
		{StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "no_show"},
		{StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "failed"},
	}

	assert.False(t, HasConflict(at(t, "10:30"), at(t, "11:30"), existing))

	existing = append(existing, models.Booking{
		StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "confirmed",
	})
	assert.True(t, HasConflict(at(t, "10:30"), at(t, "11:30"), existing))
}

func TestHasConflict_LegacySpellings(t *testing.T) {
	existing := []models.Booking{
		{StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "canceled"},
		{StartTime: at(t, "11:00"), EndTime: at(t, "12:00"), Status: "no-show"},
	}

	assert.False(t, HasConflict(at(t, "10:00"), at(t, "12:00"), existing))
}

func TestBusyIntervals(t *testing.T) {
	existing := []models.Booking{
		{StartTime: at(t, "09:00"), EndTime: at(t, "10:00"), Status: "pending"},
		{StartTime: at(t, "10:00"), EndTime: at(t, "11:00"), Status: "cancelled"},
		{StartTime: at(t, "14:00"), EndTime: at(t, "15:00"), Status: "deposit_paid"},
	}

	busy := BusyIntervals(existing)
	assert.Len(t, busy, 2)
	assert.Equal(t, at(t, "09:00"), busy[0].Start)
	assert.Equal(t, at(t, "14:00"), busy[1].Start)
}
