package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_KnownTemplates(t *testing.T) {
	for _, id := range []string{
		TemplateBookingConfirmed,
		TemplateDepositPaid,
		TemplateBookingCancelled,
		TemplateRescheduled,
		TemplateReminder,
	} {
		subject, body := Render(id, "Maya", "Reiki", "2026-03-02", "10:00")

		assert.NotEmpty(t, subject, "template=%s", id)
		assert.Contains(t, body, "Maya", "template=%s", id)
		assert.Contains(t, body, "Reiki", "template=%s", id)
		assert.NotContains(t, body, "%!", "template=%s left a format verb unfilled", id)
	}
}

func TestRender_UnknownFallsBack(t *testing.T) {
	subject, body := Render("nonexistent", "Maya", "Reiki", "2026-03-02", "10:00")

	assert.Equal(t, "Booking update", subject)
	assert.Contains(t, body, "Maya")
	assert.Contains(t, body, "2026-03-02")
}
