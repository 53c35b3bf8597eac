package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MLSatya/spark-scheduler/internal/httperr"
)

var bookingErrorMessages = map[string]string{
	"missing_fields":       "Staff, date and time are required.",
	"invalid_date_or_time": "Invalid date or time.",
	"too_soon":             "That time is too close; please pick a later slot.",
	"service_not_found":    "Service not found.",
	"staff_not_found":      "Practitioner not found.",
	"variation_not_found":  "Service option not found.",
	"time_conflict":        "That time is already booked.",
	"schedule_closed":      "The practitioner does not work at that time.",
	"staff_mismatch":       "This service is offered by a different practitioner.",
	"invalid_state":        "The booking cannot change to that state.",
	"booking_not_found":    "Booking not found.",
	"pass_exhausted":       "No usable pass remains for this service.",
	"package_not_eligible": "No active package covers this service.",
}

// mapBookingErrors converts a business error into the JSON envelope; any
// other error surfaces as a generic internal failure.
func mapBookingErrors(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg := bookingErrorMessages[code]
		if msg == "" {
			msg = "The request could not be processed."
		}

		switch code {
		case "booking_not_found":
			httperr.NotFound(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}

	if httperr.IsExclusionConflict(err) {
		httperr.BadRequest(c, "time_conflict", bookingErrorMessages["time_conflict"])
		return
	}

	httperr.Internal(c, "booking_operation_failed", "The booking operation failed.")
}
