package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestResolveHours_ExactDateBeatsRecurring(t *testing.T) {
	// 2026-03-02 is a Monday
	date := mustDate(t, "2026-03-02")

	rules := []models.AvailabilityRule{
		{StaffID: 1, ServiceID: 0, Weekday: 1, StartTime: "10:00", EndTime: "18:00", Active: true},
		{StaffID: 1, ServiceID: 0, Date: "2026-03-02", StartTime: "08:00", EndTime: "12:00", Active: true},
	}

	hours, ok := ResolveHours(rules, nil, nil, 5, date)
	require.True(t, ok)
	assert.Equal(t, Hours{Start: "08:00", End: "12:00"}, hours)
}

func TestResolveHours_ServiceSpecificBeatsGeneral(t *testing.T) {
	date := mustDate(t, "2026-03-02")

	rules := []models.AvailabilityRule{
		{StaffID: 1, ServiceID: 0, Date: "2026-03-02", StartTime: "09:00", EndTime: "17:00", Active: true},
		{StaffID: 1, ServiceID: 5, Date: "2026-03-02", StartTime: "13:00", EndTime: "16:00", Active: true},
	}

	hours, ok := ResolveHours(rules, nil, nil, 5, date)
	require.True(t, ok)
	assert.Equal(t, "13:00", hours.Start)

	// a different service falls through to the general rule
	hours, ok = ResolveHours(rules, nil, nil, 9, date)
	require.True(t, ok)
	assert.Equal(t, "09:00", hours.Start)
}

func TestResolveHours_ClosedRuleWins(t *testing.T) {
	date := mustDate(t, "2026-03-02")

	rules := []models.AvailabilityRule{
		{StaffID: 1, ServiceID: 0, Date: "2026-03-02", Closed: true, Active: true},
		{StaffID: 1, ServiceID: 0, Weekday: 1, StartTime: "09:00", EndTime: "17:00", Active: true},
	}

	_, ok := ResolveHours(rules, nil, nil, 0, date)
	assert.False(t, ok)
}

func TestResolveHours_InactiveRulesIgnored(t *testing.T) {
	date := mustDate(t, "2026-03-02")

	rules := []models.AvailabilityRule{
		{StaffID: 1, ServiceID: 0, Date: "2026-03-02", Closed: true, Active: false},
	}

	hours, ok := ResolveHours(rules, nil, nil, 0, date)
	require.True(t, ok)
	assert.Equal(t, Hours{Start: FallbackStartTime, End: FallbackEndTime}, hours)
}

func TestResolveHours_DayDefaultThenStaffThenFallback(t *testing.T) {
	date := mustDate(t, "2026-03-02") // Monday

	defaults := []models.StaffDayDefault{
		{StaffID: 1, Weekday: 1, StartTime: "11:00", EndTime: "15:00"},
	}
	staff := &models.Staff{DefaultStartTime: "08:00", DefaultEndTime: "20:00"}

	hours, ok := ResolveHours(nil, defaults, staff, 0, date)
	require.True(t, ok)
	assert.Equal(t, "11:00", hours.Start)

	// no day default for Tuesday, staff default applies
	tuesday := mustDate(t, "2026-03-03")
	hours, ok = ResolveHours(nil, defaults, staff, 0, tuesday)
	require.True(t, ok)
	assert.Equal(t, "08:00", hours.Start)

	// nothing configured at all stays permissive
	hours, ok = ResolveHours(nil, nil, nil, 0, tuesday)
	require.True(t, ok)
	assert.Equal(t, FallbackStartTime, hours.Start)
}

func TestResolveHours_DayOffDefaultClosesDay(t *testing.T) {
	date := mustDate(t, "2026-03-02")

	defaults := []models.StaffDayDefault{
		{StaffID: 1, Weekday: 1, DayOff: true},
	}

	_, ok := ResolveHours(nil, defaults, nil, 0, date)
	assert.False(t, ok)
}

func TestRecurringApplies_Biweekly(t *testing.T) {
	rule := models.AvailabilityRule{
		Weekday:         1,
		RecurringType:   models.RecurringBiweekly,
		BiweeklyPattern: 1,
		Active:          true,
	}

	// 2026-03-02 is a Monday in week 1 of the month
	assert.True(t, recurringApplies(rule, mustDate(t, "2026-03-02")))
	// 2026-03-09 is week 2
	assert.False(t, recurringApplies(rule, mustDate(t, "2026-03-09")))
	// 2026-03-16 is week 3, odd again
	assert.True(t, recurringApplies(rule, mustDate(t, "2026-03-16")))
}

func TestRecurringApplies_SkipFifthWeek(t *testing.T) {
	rule := models.AvailabilityRule{
		Weekday:       1,
		RecurringType: models.RecurringWeekly,
		SkipFifthWeek: true,
		Active:        true,
	}

	// 2026-03-30 is the fifth Monday of March 2026
	assert.False(t, recurringApplies(rule, mustDate(t, "2026-03-30")))
	assert.True(t, recurringApplies(rule, mustDate(t, "2026-03-23")))
}

func TestRecurringApplies_MonthlyOccurrence(t *testing.T) {
	rule := models.AvailabilityRule{
		Weekday:           1,
		RecurringType:     models.RecurringMonthly,
		MonthlyOccurrence: 2,
		Active:            true,
	}

	assert.False(t, recurringApplies(rule, mustDate(t, "2026-03-02")))
	assert.True(t, recurringApplies(rule, mustDate(t, "2026-03-09")))
}

func TestRecurringApplies_EndDate(t *testing.T) {
	rule := models.AvailabilityRule{
		Weekday:          1,
		RecurringType:    models.RecurringWeekly,
		RecurringEndDate: "2026-03-10",
		Active:           true,
	}

	assert.True(t, recurringApplies(rule, mustDate(t, "2026-03-09")))
	assert.False(t, recurringApplies(rule, mustDate(t, "2026-03-16")))
}

func TestWeekOfMonth(t *testing.T) {
	assert.Equal(t, 1, weekOfMonth(mustDate(t, "2026-03-01")))
	assert.Equal(t, 1, weekOfMonth(mustDate(t, "2026-03-07")))
	assert.Equal(t, 2, weekOfMonth(mustDate(t, "2026-03-08")))
	assert.Equal(t, 5, weekOfMonth(mustDate(t, "2026-03-30")))
}

func TestHoursWindow_AnchorsOnDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	start, end := HoursWindow(Hours{Start: "09:30", End: "17:00"}, date)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, loc), end)
}
