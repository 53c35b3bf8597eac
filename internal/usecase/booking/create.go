package booking

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/payments"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudioID uint
	StaffID  uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID   uint
	VariationID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	// deposit (default), pass, or package
	PaymentMethod string

	Notes string
}

type CreateBookingResult struct {
	Booking *models.Booking        `json:"booking"`
	Order   *payments.DepositOrder `json:"order,omitempty"`
	Verdict domain.Verdict         `json:"-"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Notifier
	mirror   *readmodel.ScheduleMirror
	checkout *payments.Checkout // nil when payments are not configured
}

func NewCreateBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Notifier,
	mirror *readmodel.ScheduleMirror,
	checkout *payments.Checkout,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		mirror:   mirror,
		checkout: checkout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	if in.StaffID == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(studio.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := studio.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(studio.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.StudioID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StudioID, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	durationMin, price, err := uc.resolveVariant(ctx, service, in.VariationID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	verdict, err := uc.validate(ctx, staff, service, start, end)
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, httperr.ErrBusiness(string(verdict.Reason))
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.StudioID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	deposit, balance := payments.SplitPrice(price)

	b := &models.Booking{
		Reference:        uuid.NewString(),
		StudioID:         in.StudioID,
		StaffID:          in.StaffID,
		CustomerID:       customer.ID,
		ServiceID:        service.ID,
		VariationID:      in.VariationID,
		StartTime:        start,
		EndTime:          end,
		DurationMin:      durationMin,
		Status:           string(domain.InitialStatus()),
		PaymentMethod:    in.PaymentMethod,
		TotalPrice:       price,
		DepositAmount:    deposit,
		RemainingBalance: balance,
		Notes:            in.Notes,
	}

	claim, err := uc.resolveClaim(ctx, in.PaymentMethod, customer.ID, service.ID, in.Date)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBooking(ctx, b, claim); err != nil {
		return nil, err
	}

	// entitlement bookings need no payment step; the claim was already
	// consumed inside the insert transaction, so a failed confirm here must
	// surface rather than leave a drained pass on a pending booking.
	if claim != nil {
		if err := domain.Confirm(b, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return nil, err
		}
	}

	uc.mirror.MarkDirty(ctx, b.StaffID, in.Date)

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"payment_method": in.PaymentMethod},
	})

	result := &CreateBookingResult{Booking: b, Verdict: verdict}

	if claim != nil {
		uc.notifier.Dispatch(
			notify.TemplateBookingConfirmed,
			customer.Email, customer.Name, service.Name,
			in.Date, in.Time,
		)
		return result, nil
	}

	if uc.checkout != nil {
		order, err := uc.checkout.CreateDepositOrder(ctx, b, service, price)
		if err != nil {
			// the booking stays pending; the customer can retry payment
			uc.audit.Dispatch(audit.Event{
				StudioID: in.StudioID,
				Action:   "deposit_order_failed",
				Entity:   "booking",
				EntityID: &b.ID,
			})
			return result, nil
		}

		b.OrderID = order.OrderID
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			// the webhook still matches on the booking reference, so the
			// payment is not lost; record the failed save for follow-up
			uc.audit.Dispatch(audit.Event{
				StudioID: in.StudioID,
				Action:   "order_reference_save_failed",
				Entity:   "booking",
				EntityID: &b.ID,
				Metadata: map[string]any{"order_id": order.OrderID},
			})
		}
		result.Order = order
	}

	return result, nil
}

// resolveVariant picks duration and price, preferring the chosen variation's
// attribute over the base service values.
func (uc *CreateBooking) resolveVariant(
	ctx context.Context,
	service *models.Service,
	variationID uint,
) (int, float64, error) {

	durationMin := service.DurationMin
	if durationMin <= 0 {
		durationMin = 60
	}
	price := service.Price

	if variationID == 0 {
		return durationMin, price, nil
	}

	attr, err := uc.repo.GetVariation(ctx, service.ID, variationID)
	if err != nil {
		return 0, 0, httperr.ErrBusiness("variation_not_found")
	}

	if attr.Price > 0 {
		price = attr.Price
	}
	if attr.AttributeType == models.AttributeDuration {
		if d, convErr := strconv.Atoi(attr.Value); convErr == nil && d > 0 {
			durationMin = d
		}
	}

	return durationMin, price, nil
}

func (uc *CreateBooking) validate(
	ctx context.Context,
	staff *models.Staff,
	service *models.Service,
	start time.Time,
	end time.Time,
) (domain.Verdict, error) {

	rules, err := uc.repo.ListAvailabilityRules(ctx, staff.ID, service.ID)
	if err != nil {
		return domain.Verdict{}, err
	}

	defaults, err := uc.repo.ListDayDefaults(ctx, staff.ID)
	if err != nil {
		return domain.Verdict{}, err
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := uc.repo.ListBookingsForDay(ctx, staff.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return domain.Verdict{}, err
	}

	hours, available := domain.ResolveHours(rules, defaults, staff, service.ID, start)

	return domain.Validate(domain.ValidateInput{
		StaffID:   staff.ID,
		Start:     start,
		End:       end,
		Service:   service,
		Hours:     hours,
		Available: available,
		Existing:  existing,
	}), nil
}

func (uc *CreateBooking) resolveClaim(
	ctx context.Context,
	paymentMethod string,
	customerID uint,
	serviceID uint,
	onDate string,
) (*domain.EntitlementClaim, error) {

	switch paymentMethod {
	case "pass":
		pass, err := uc.repo.FindEligiblePass(ctx, customerID, serviceID, onDate)
		if err != nil {
			return nil, err
		}
		return &domain.EntitlementClaim{PassID: pass.ID}, nil

	case "package":
		pkg, err := uc.repo.FindEligiblePackage(ctx, customerID, serviceID, onDate)
		if err != nil {
			return nil, err
		}
		return &domain.EntitlementClaim{PackageID: pkg.ID}, nil
	}

	return nil, nil
}
