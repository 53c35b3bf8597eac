package booking

import (
	"context"
	"time"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

type CompleteBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	mirror *readmodel.ScheduleMirror
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	mirror *readmodel.ScheduleMirror,
) *CompleteBooking {
	return &CompleteBooking{
		repo:   repo,
		audit:  auditDispatcher,
		mirror: mirror,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.transition(ctx, studioID, staffID, bookingID, "booking_completed", domain.Complete)
}

// MarkNoShow records that the customer did not attend. The entitlement
// ledger is untouched, same as cancellation.
func (uc *CompleteBooking) MarkNoShow(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.transition(ctx, studioID, staffID, bookingID, "booking_no_show", domain.MarkNoShow)
}

func (uc *CompleteBooking) transition(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
	action string,
	apply func(*models.Booking, time.Time) error,
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
	if err := apply(b, now); err != nil {
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
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
