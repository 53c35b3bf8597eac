package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

func validInput(t *testing.T) ValidateInput {
	t.Helper()
	return ValidateInput{
		StaffID:   1,
		Start:     at(t, "10:00"),
		End:       at(t, "11:00"),
		Hours:     Hours{Start: "09:00", End: "17:00"},
		Available: true,
	}
}

func TestValidate_OK(t *testing.T) {
	v := Validate(validInput(t))
	assert.True(t, v.Valid)
	assert.Empty(t, v.Reason)
}

func TestValidate_MissingFields(t *testing.T) {
	in := validInput(t)
	in.StaffID = 0
	assert.Equal(t, ReasonMissingFields, Validate(in).Reason)

	in = validInput(t)
	in.Start = time.Time{}
	assert.Equal(t, ReasonMissingFields, Validate(in).Reason)
}

func TestValidate_StaffMismatch(t *testing.T) {
	other := uint(2)
	in := validInput(t)
	in.Service = &models.Service{RequiredStaffID: &other}

	assert.Equal(t, ReasonStaffMismatch, Validate(in).Reason)

	// the required practitioner passes
	same := uint(1)
	in.Service = &models.Service{RequiredStaffID: &same}
	assert.True(t, Validate(in).Valid)
}

func TestValidate_ScheduleClosed(t *testing.T) {
	in := validInput(t)
	in.Available = false
	assert.Equal(t, ReasonScheduleClosed, Validate(in).Reason)
}

func TestValidate_OutsideWorkingHours(t *testing.T) {
	in := validInput(t)
	in.Start = at(t, "08:00")
	in.End = at(t, "09:00")
	assert.Equal(t, ReasonScheduleClosed, Validate(in).Reason)

	// ending past the window also fails
	in = validInput(t)
	in.Start = at(t, "16:30")
	in.End = at(t, "17:30")
	assert.Equal(t, ReasonScheduleClosed, Validate(in).Reason)

	// exactly filling the window is fine
	in = validInput(t)
	in.Start = at(t, "09:00")
	in.End = at(t, "17:00")
	assert.True(t, Validate(in).Valid)
}

func TestValidate_TimeConflict(t *testing.T) {
	in := validInput(t)
	in.Existing = []models.Booking{
		{StartTime: at(t, "10:30"), EndTime: at(t, "11:30"), Status: "confirmed"},
	}
	assert.Equal(t, ReasonTimeConflict, Validate(in).Reason)

	// a cancelled booking frees the window
	in.Existing[0].Status = "cancelled"
	assert.True(t, Validate(in).Valid)
}

// On multi-fault input the schedule and conflict checks report before
// practitioner eligibility.
func TestValidate_ScheduleCheckedBeforeMismatch(t *testing.T) {
	other := uint(2)
	in := validInput(t)
	in.Service = &models.Service{RequiredStaffID: &other}
	in.Available = false

	assert.Equal(t, ReasonScheduleClosed, Validate(in).Reason)
}

func TestValidate_ConflictCheckedBeforeMismatch(t *testing.T) {
	other := uint(2)
	in := validInput(t)
	in.Service = &models.Service{RequiredStaffID: &other}
	in.Existing = []models.Booking{
		{StartTime: at(t, "10:30"), EndTime: at(t, "11:30"), Status: "confirmed"},
	}

	assert.Equal(t, ReasonTimeConflict, Validate(in).Reason)
}
