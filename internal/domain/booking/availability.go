package booking

import (
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// ResolveHours determines the effective working window for a staff member on
// a date, layering sources until one matches:
//
//  1. exact-date rule (service-specific before general)
//  2. recurring rule for the weekday, service-specific
//  3. general recurring rule (service_id = 0)
//  4. per-weekday staff default, then staff-level default, then 09:00-17:00
//
// The second return value is false only when the matching source explicitly
// marks the day closed; absence of data stays permissive.
func ResolveHours(
	rules []models.AvailabilityRule,
	dayDefaults []models.StaffDayDefault,
	staff *models.Staff,
	serviceID uint,
	date time.Time,
) (Hours, bool) {

	dateStr := date.Format("2006-01-02")

	// 1. exact-date rules, service-specific before general
	for _, wantService := range []bool{true, false} {
		for _, r := range rules {
			if !r.Active || r.Date != dateStr {
				continue
			}
			if wantService {
				if serviceID == 0 || r.ServiceID != serviceID {
					continue
				}
			} else if r.ServiceID != 0 {
				continue
			}
			if r.Closed {
				return Hours{}, false
			}
			return Hours{Start: r.StartTime, End: r.EndTime}, true
		}
	}

	// 2. service-specific recurring, 3. general recurring
	for _, wantService := range []bool{true, false} {
		for _, r := range rules {
			if !r.Active || r.Date != "" {
				continue
			}
			if wantService {
				if serviceID == 0 || r.ServiceID != serviceID {
					continue
				}
			} else if r.ServiceID != 0 {
				continue
			}
			if !recurringApplies(r, date) {
				continue
			}
			if r.Closed {
				return Hours{}, false
			}
			return Hours{Start: r.StartTime, End: r.EndTime}, true
		}
	}

	// 4. staff defaults
	weekday := int(date.Weekday())
	for _, d := range dayDefaults {
		if d.Weekday != weekday {
			continue
		}
		if d.DayOff {
			return Hours{}, false
		}
		if d.StartTime != "" && d.EndTime != "" {
			return Hours{Start: d.StartTime, End: d.EndTime}, true
		}
	}

	if staff != nil && staff.DefaultStartTime != "" && staff.DefaultEndTime != "" {
		return Hours{Start: staff.DefaultStartTime, End: staff.DefaultEndTime}, true
	}

	return Hours{Start: FallbackStartTime, End: FallbackEndTime}, true
}

// recurringApplies checks the recurrence qualifiers of a weekday rule
// against a concrete date.
func recurringApplies(r models.AvailabilityRule, date time.Time) bool {
	if r.Weekday != int(date.Weekday()) {
		return false
	}

	dateStr := date.Format("2006-01-02")
	if r.RecurringEndDate != "" && r.RecurringEndDate < dateStr {
		return false
	}

	week := weekOfMonth(date)
	if r.SkipFifthWeek && week >= 5 {
		return false
	}

	switch r.RecurringType {
	case "", models.RecurringWeekly:
		return true
	case models.RecurringBiweekly:
		return week%2 == r.BiweeklyPattern
	case models.RecurringMonthly:
		return r.MonthlyOccurrence == 0 || week == r.MonthlyOccurrence
	}

	return false
}

// weekOfMonth is ceil(dayOfMonth / 7): 1 for days 1-7, 2 for 8-14, and so on.
func weekOfMonth(date time.Time) int {
	return (date.Day() + 6) / 7
}

// HoursWindow anchors a resolved HH:MM window onto a concrete date.
func HoursWindow(h Hours, date time.Time) (time.Time, time.Time) {
	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	return parseHM(h.Start), parseHM(h.End)
}
