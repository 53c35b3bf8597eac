package booking

import (
	"context"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Notifier
	mirror   *readmodel.ScheduleMirror
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Notifier,
	mirror *readmodel.ScheduleMirror,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		mirror:   mirror,
	}
}

// Execute cancels a booking with a recorded reason. Consumed passes and
// package usages are deliberately not reversed: sessions are not refunded on
// cancellation.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(studio.Timezone)
	if err := domain.Cancel(b, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)
	uc.mirror.MarkDirty(ctx, b.StaffID, b.StartTime.In(loc).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &staffID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	if b.Customer.Email != "" {
		local := b.StartTime.In(loc)
		uc.notifier.Dispatch(
			notify.TemplateBookingCancelled,
			b.Customer.Email,
			b.Customer.Name,
			b.Service.Name,
			local.Format("2006-01-02"),
			local.Format("15:04"),
		)
	}

	return b, nil
}

// Delete removes the booking row entirely and refreshes the derived view,
// keeping the mirror consistent with the authoritative table.
func (uc *CancelBooking) Delete(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
) error {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.DeleteBooking(ctx, b); err != nil {
		return err
	}

	loc := timezone.Location(studio.Timezone)
	uc.mirror.MarkDirty(ctx, b.StaffID, b.StartTime.In(loc).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &staffID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
