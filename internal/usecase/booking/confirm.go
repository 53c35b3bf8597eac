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

type ConfirmBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Notifier
	mirror   *readmodel.ScheduleMirror
}

func NewConfirmBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Notifier,
	mirror *readmodel.ScheduleMirror,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		mirror:   mirror,
	}
}

// Execute confirms a booking by staff action. Confirming twice converges on
// the same state without duplicating rows or notifications.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	studioID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	alreadyConfirmed := domain.NormalizeStatus(b.Status) == domain.StatusConfirmed

	now := timezone.NowIn(studio.Timezone)
	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	if alreadyConfirmed {
		return b, nil
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.mirror.MarkDirty(ctx, b.StaffID, b.StartTime.In(timezone.Location(studio.Timezone)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &staffID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notifyCustomer(studio, b, notify.TemplateBookingConfirmed)

	return b, nil
}

// SettlePayment marks a booking deposit-paid from a payment webhook; safe to
// replay for the same order.
func (uc *ConfirmBooking) SettlePayment(
	ctx context.Context,
	reference string,
	orderID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	studio, err := uc.repo.GetStudioByID(ctx, b.StudioID)
	if err != nil {
		return nil, err
	}

	current := domain.NormalizeStatus(b.Status)
	if current == domain.StatusDepositPaid || current == domain.StatusConfirmed {
		return b, nil
	}

	now := timezone.NowIn(studio.Timezone)
	if err := domain.MarkDepositPaid(b, orderID, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.mirror.MarkDirty(ctx, b.StaffID, b.StartTime.In(timezone.Location(studio.Timezone)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StudioID: b.StudioID,
		Action:   "deposit_paid",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"order_id": orderID},
	})

	uc.notifyCustomer(studio, b, notify.TemplateDepositPaid)

	return b, nil
}

func (uc *ConfirmBooking) notifyCustomer(
	studio *models.Studio,
	b *models.Booking,
	templateID string,
) {
	if b.Customer.Email == "" {
		return
	}

	local := b.StartTime.In(timezone.Location(studio.Timezone))
	uc.notifier.Dispatch(
		templateID,
		b.Customer.Email,
		b.Customer.Name,
		b.Service.Name,
		local.Format("2006-01-02"),
		local.Format("15:04"),
	)
}
