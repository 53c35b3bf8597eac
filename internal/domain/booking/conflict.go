package booking

import (
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// Overlaps reports whether the half-open intervals [s, e) and [s2, e2)
// intersect. Touching endpoints do not conflict.
func Overlaps(s, e, s2, e2 time.Time) bool {
	return s.Before(e2) && e.After(s2)
}

// HasConflict checks a candidate interval against existing bookings,
// ignoring statuses that no longer occupy their window.
func HasConflict(start, end time.Time, existing []models.Booking) bool {
	for _, b := range existing {
		if !CountsForConflict(NormalizeStatus(b.Status)) {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// BusyIntervals projects the occupying bookings of a day onto intervals for
// the slot generator.
func BusyIntervals(existing []models.Booking) []Interval {
	var busy []Interval
	for _, b := range existing {
		if !CountsForConflict(NormalizeStatus(b.Status)) {
			continue
		}
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return busy
}
