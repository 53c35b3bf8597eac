package booking

import (
	"context"
	"time"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

type RescheduleBookingInput struct {
	StudioID  uint
	StaffID   uint
	BookingID uint

	NewDate string // YYYY-MM-DD
	NewTime string // HH:mm
}

type RescheduleBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Notifier
	mirror   *readmodel.ScheduleMirror
}

func NewRescheduleBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Notifier,
	mirror *readmodel.ScheduleMirror,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		mirror:   mirror,
	}
}

// Execute moves a booking to a new start while preserving its duration. The
// new interval is fully revalidated (schedule window plus conflicts) no
// matter who initiates the move. The original window is freed by the status
// change on this same row.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, in.BookingID, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	loc := timezone.Location(studio.Timezone)
	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.NewDate+" "+in.NewTime,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	duration := b.DurationMin
	if duration <= 0 {
		duration = int(b.EndTime.Sub(b.StartTime).Minutes())
	}
	newEnd := newStart.Add(time.Duration(duration) * time.Minute)

	verdict, err := uc.validate(ctx, studio, b, newStart, newEnd)
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, httperr.ErrBusiness(string(verdict.Reason))
	}

	oldDate := b.StartTime.In(loc).Format("2006-01-02")
	oldStart := b.StartTime

	if err := domain.Reschedule(b, newStart); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.mirror.MarkDirty(ctx, b.StaffID, oldDate)
	uc.mirror.MarkDirty(ctx, b.StaffID, in.NewDate)

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.StaffID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"old_start": oldStart, "new_start": newStart},
	})

	if b.Customer.Email != "" {
		uc.notifier.Dispatch(
			notify.TemplateRescheduled,
			b.Customer.Email,
			b.Customer.Name,
			b.Service.Name,
			in.NewDate,
			in.NewTime,
		)
	}

	return b, nil
}

func (uc *RescheduleBooking) validate(
	ctx context.Context,
	studio *models.Studio,
	b *models.Booking,
	newStart time.Time,
	newEnd time.Time,
) (domain.Verdict, error) {

	staff, err := uc.repo.GetStaff(ctx, studio.ID, b.StaffID)
	if err != nil {
		return domain.Verdict{}, err
	}

	service, err := uc.repo.GetService(ctx, studio.ID, b.ServiceID)
	if err != nil {
		return domain.Verdict{}, httperr.ErrBusiness("service_not_found")
	}

	rules, err := uc.repo.ListAvailabilityRules(ctx, staff.ID, service.ID)
	if err != nil {
		return domain.Verdict{}, err
	}

	defaults, err := uc.repo.ListDayDefaults(ctx, staff.ID)
	if err != nil {
		return domain.Verdict{}, err
	}

	dayStart := time.Date(newStart.Year(), newStart.Month(), newStart.Day(), 0, 0, 0, 0, newStart.Location())
	existing, err := uc.repo.ListBookingsForDay(ctx, staff.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return domain.Verdict{}, err
	}

	// the booking being moved must not conflict with itself
	filtered := existing[:0]
	for _, other := range existing {
		if other.ID != b.ID {
			filtered = append(filtered, other)
		}
	}

	hours, available := domain.ResolveHours(rules, defaults, staff, service.ID, newStart)

	return domain.Validate(domain.ValidateInput{
		StaffID:   staff.ID,
		Start:     newStart,
		End:       newEnd,
		Service:   service,
		Hours:     hours,
		Available: available,
		Existing:  filtered,
	}), nil
}
