package booking

import (
	"context"
	"time"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

// EntitlementClaim asks the repository to consume an entitlement atomically
// inside the booking-creation transaction.
type EntitlementClaim struct {
	PassID    uint
	PackageID uint
}

type Repository interface {
	// -------- Studio --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	GetStudioBySlug(
		ctx context.Context,
		slug string,
	) (*models.Studio, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		studioID uint,
		serviceID uint,
	) (*models.Service, error)

	ListDurationVariants(
		ctx context.Context,
		serviceID uint,
	) ([]int, error)

	GetVariation(
		ctx context.Context,
		serviceID uint,
		variationID uint,
	) (*models.ServiceAttribute, error)

	// -------- Staff --------
	GetStaff(
		ctx context.Context,
		studioID uint,
		staffID uint,
	) (*models.Staff, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		studioID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Availability snapshot --------
	ListAvailabilityRules(
		ctx context.Context,
		staffID uint,
		serviceID uint,
	) ([]models.AvailabilityRule, error)

	ListDayDefaults(
		ctx context.Context,
		staffID uint,
	) ([]models.StaffDayDefault, error)

	ListBookingsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / mutate) --------

	// CreateBooking re-checks conflicts under a row lock and inserts in one
	// transaction; a non-nil claim is consumed in the same transaction.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		claim *EntitlementClaim,
	) error

	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	GetBookingByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Entitlements --------
	FindEligiblePass(
		ctx context.Context,
		customerID uint,
		serviceID uint,
		onDate string,
	) (*models.Pass, error)

	FindEligiblePackage(
		ctx context.Context,
		customerID uint,
		serviceID uint,
		onDate string,
	) (*models.ServicePackage, error)
}
