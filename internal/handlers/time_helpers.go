package handlers

import (
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

// resolve the studio's official timezone
func locationFromStudio(studio *models.Studio) *time.Location {
	if studio != nil && studio.Timezone != "" {
		if loc, err := time.LoadLocation(studio.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(timezone.DefaultTimezone)
	return loc
}

func nowInStudio(studio *models.Studio) time.Time {
	return time.Now().In(locationFromStudio(studio))
}

func parseDateInStudio(studio *models.Studio, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromStudio(studio),
	)
}

func parseDateTimeInStudio(
	studio *models.Studio,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromStudio(studio),
	)
}
