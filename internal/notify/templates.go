package notify

import "fmt"

// Template is one notification variant. Variants differ only in subject and
// body, so they live in a declarative table instead of one type each.
type Template struct {
	ID      string
	Subject string
	Body    string // fmt format: customer name, service name, date, time
}

const (
	TemplateBookingConfirmed = "booking_confirmed"
	TemplateDepositPaid      = "deposit_paid"
	TemplateBookingCancelled = "booking_cancelled"
	TemplateRescheduled      = "booking_rescheduled"
	TemplateReminder         = "booking_reminder"
)

var templates = map[string]Template{
	TemplateBookingConfirmed: {
		ID:      TemplateBookingConfirmed,
		Subject: "Your booking is confirmed",
		Body:    "Hi %s, your %s session is confirmed for %s at %s. We look forward to seeing you.",
	},
	TemplateDepositPaid: {
		ID:      TemplateDepositPaid,
		Subject: "Deposit received",
		Body:    "Hi %s, we received your deposit for %s on %s at %s. The remaining balance is due at your session.",
	},
	TemplateBookingCancelled: {
		ID:      TemplateBookingCancelled,
		Subject: "Your booking was cancelled",
		Body:    "Hi %s, your %s session on %s at %s has been cancelled.",
	},
	TemplateRescheduled: {
		ID:      TemplateRescheduled,
		Subject: "Your booking was rescheduled",
		Body:    "Hi %s, your %s session has been moved to %s at %s.",
	},
	TemplateReminder: {
		ID:      TemplateReminder,
		Subject: "Upcoming session reminder",
		Body:    "Hi %s, this is a reminder of your %s session on %s at %s.",
	},
}

// Render builds the subject and body for a template id. Unknown ids fall
// back to a plain-text message so a notification always goes out.
func Render(id, customer, service, date, timeOfDay string) (subject, body string) {
	t, ok := templates[id]
	if !ok {
		return "Booking update",
			fmt.Sprintf("Hi %s, there is an update for your %s booking on %s at %s.", customer, service, date, timeOfDay)
	}
	return t.Subject, fmt.Sprintf(t.Body, customer, service, date, timeOfDay)
}
