package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The overlap guard must use tstzrange: gorm creates time.Time columns as
// timestamptz, and Postgres has no tsrange(timestamptz, timestamptz), so a
// tsrange constraint would fail to install and leave the race unguarded.
func TestBookingsNoOverlapDDL_UsesTstzrange(t *testing.T) {
	assert.Contains(t, bookingsNoOverlapDDL, "tstzrange(start_time, end_time)")
	assert.NotContains(t, bookingsNoOverlapDDL, "tsrange(start_time")
}

func TestBookingsNoOverlapDDL_IdempotentOnRestart(t *testing.T) {
	assert.Contains(t, bookingsNoOverlapDDL, "pg_constraint")
	assert.Contains(t, bookingsNoOverlapDDL, "bookings_no_overlap")
}

func TestBookingsNoOverlapDDL_ExcludesReleasedStatuses(t *testing.T) {
	for _, status := range []string{"cancelled", "no_show", "failed"} {
		assert.True(t, strings.Contains(bookingsNoOverlapDDL, "'"+status+"'"),
			"released status %q must be exempt from the constraint", status)
	}
}
