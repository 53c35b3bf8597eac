package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
)

// stubRepo overrides only the methods a test exercises; anything else panics
// via the embedded nil interface.
type stubRepo struct {
	domain.Repository

	updateErr error
	created   *models.Booking
	updated   *models.Booking
}

func (s *stubRepo) GetStudioByID(ctx context.Context, id uint) (*models.Studio, error) {
	return &models.Studio{ID: id, Timezone: "America/New_York"}, nil
}

func (s *stubRepo) GetService(ctx context.Context, studioID, serviceID uint) (*models.Service, error) {
	return &models.Service{ID: serviceID, StudioID: studioID, DurationMin: 60, Price: 80}, nil
}

func (s *stubRepo) GetStaff(ctx context.Context, studioID, staffID uint) (*models.Staff, error) {
	return &models.Staff{ID: staffID, StudioID: studioID}, nil
}

func (s *stubRepo) GetOrCreateCustomer(ctx context.Context, studioID uint, name, phone, email string) (*models.Customer, error) {
	return &models.Customer{ID: 7, StudioID: studioID, Name: name, Email: email}, nil
}

func (s *stubRepo) ListAvailabilityRules(ctx context.Context, staffID, serviceID uint) ([]models.AvailabilityRule, error) {
	return nil, nil
}

func (s *stubRepo) ListDayDefaults(ctx context.Context, staffID uint) ([]models.StaffDayDefault, error) {
	return nil, nil
}

func (s *stubRepo) ListBookingsForDay(ctx context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubRepo) FindEligiblePass(ctx context.Context, customerID, serviceID uint, onDate string) (*models.Pass, error) {
	return &models.Pass{ID: 3, CustomerID: customerID, RemainingPasses: 1}, nil
}

func (s *stubRepo) CreateBooking(ctx context.Context, b *models.Booking, claim *domain.EntitlementClaim) error {
	b.ID = 42
	s.created = b
	return nil
}

func (s *stubRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = b
	return nil
}

func newCreateUC(repo domain.Repository) *CreateBooking {
	return NewCreateBooking(
		repo,
		audit.NewDispatcher(audit.New(nil)),
		notify.NewNotifier(notify.LogSender{}),
		readmodel.NewScheduleMirror(nil, nil),
		nil,
	)
}

func passInput() CreateBookingInput {
	return CreateBookingInput{
		StudioID:      1,
		StaffID:       1,
		ServiceID:     2,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Date:          "2027-06-07",
		Time:          "10:00",
		PaymentMethod: "pass",
	}
}

// A pass booking is confirmed in the same request; if saving the confirmed
// status fails the caller must see the error, since the pass was already
// consumed inside the insert transaction.
func TestCreateBooking_PassConfirmSaveFailureSurfaces(t *testing.T) {
	repo := &stubRepo{updateErr: errors.New("connection reset")}

	_, err := newCreateUC(repo).Execute(context.Background(), passInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NotNil(t, repo.created, "the insert itself went through")
}

func TestCreateBooking_PassBookingConfirmedInline(t *testing.T) {
	repo := &stubRepo{}

	res, err := newCreateUC(repo).Execute(context.Background(), passInput())

	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Booking.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, repo.created.ID, repo.updated.ID)
}
