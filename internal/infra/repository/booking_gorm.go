package repository

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Studio
// --------------------------------------------------

func (r *BookingGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *BookingGormRepository) GetStudioBySlug(
	ctx context.Context,
	slug string,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&studio).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	studioID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", serviceID, studioID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// ListDurationVariants returns every duration configured on the service's
// "duration" attributes, falling back to the base duration.
func (r *BookingGormRepository) ListDurationVariants(
	ctx context.Context,
	serviceID uint,
) ([]int, error) {

	var attrs []models.ServiceAttribute
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND attribute_type = ?", serviceID, models.AttributeDuration).
		Order("id ASC").
		Find(&attrs).Error; err != nil {
		return nil, err
	}

	var durations []int
	for _, a := range attrs {
		if d, err := strconv.Atoi(a.Value); err == nil && d > 0 {
			durations = append(durations, d)
		}
	}

	if len(durations) == 0 {
		var service models.Service
		if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
			return nil, err
		}
		if service.DurationMin > 0 {
			durations = append(durations, service.DurationMin)
		} else {
			durations = append(durations, 60)
		}
	}

	return durations, nil
}

func (r *BookingGormRepository) GetVariation(
	ctx context.Context,
	serviceID uint,
	variationID uint,
) (*models.ServiceAttribute, error) {

	var attr models.ServiceAttribute
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND variation_id = ?", serviceID, variationID).
		First(&attr).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	studioID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", staffID, studioID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Customer (keyed by email)
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	studioID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND email = ?", studioID, email).
		First(&customer).Error

	if err == nil {
		// opportunistic sync of contact details on every write path
		changed := false
		if name != "" && customer.Name != name {
			customer.Name = name
			changed = true
		}
		if phone != "" && customer.Phone != phone {
			customer.Phone = phone
			changed = true
		}
		if changed {
			r.db.WithContext(ctx).Save(&customer)
		}
		return &customer, nil
	}

	customer = models.Customer{
		StudioID: studioID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Availability snapshot
// --------------------------------------------------

func (r *BookingGormRepository) ListAvailabilityRules(
	ctx context.Context,
	staffID uint,
	serviceID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND (service_id = ? OR service_id = 0)", staffID, serviceID).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *BookingGormRepository) ListDayDefaults(
	ctx context.Context,
	staffID uint,
) ([]models.StaffDayDefault, error) {

	var defaults []models.StaffDayDefault
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND status NOT IN ? AND start_time >= ? AND start_time < ?",
			staffID,
			[]string{"cancelled", "no_show", "failed"},
			start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / mutate)
// --------------------------------------------------

// CreateBooking re-checks conflicts under a FOR UPDATE lock and inserts in
// the same transaction, so two racing requests cannot both pass the check.
// A non-nil entitlement claim is consumed atomically alongside the insert.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	claim *domain.EntitlementClaim,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				b.StaffID,
				[]string{"cancelled", "no_show", "failed"},
				b.EndTime, b.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		if claim == nil {
			return nil
		}

		if claim.PassID != 0 {
			res := tx.Model(&models.Pass{}).
				Where("id = ? AND remaining_passes > 0", claim.PassID).
				UpdateColumn("remaining_passes", gorm.Expr("remaining_passes - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("pass_exhausted")
			}

			tx.Model(&models.Pass{}).
				Where("id = ? AND remaining_passes = 0", claim.PassID).
				Update("status", models.EntitlementUsedUp)

			if err := tx.Create(&models.PassUsage{
				PassID:    claim.PassID,
				BookingID: b.ID,
				UsedAt:    time.Now(),
			}).Error; err != nil {
				return err
			}
		}

		if claim.PackageID != 0 {
			if err := tx.Create(&models.PackageUsage{
				PackageID: claim.PackageID,
				BookingID: b.ID,
				ServiceID: b.ServiceID,
				UsedAt:    time.Now(),
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *BookingGormRepository) GetBookingForStaff(
	ctx context.Context,
	bookingID uint,
	staffID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("id = ? AND staff_id = ?", bookingID, staffID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"staff_id = ? AND start_time >= ? AND start_time < ?",
			staffID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Entitlements
// --------------------------------------------------

func (r *BookingGormRepository) FindEligiblePass(
	ctx context.Context,
	customerID uint,
	serviceID uint,
	onDate string,
) (*models.Pass, error) {

	var pass models.Pass
	err := r.db.WithContext(ctx).
		Where(
			"customer_id = ? AND (service_id = ? OR service_id = 0) AND remaining_passes > 0 AND status = ?",
			customerID, serviceID, models.EntitlementActive,
		).
		Where("expires_on = '' OR expires_on >= ?", onDate).
		Order("expires_on ASC, id ASC").
		First(&pass).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("pass_exhausted")
		}
		return nil, err
	}

	return &pass, nil
}

func (r *BookingGormRepository) FindEligiblePackage(
	ctx context.Context,
	customerID uint,
	serviceID uint,
	onDate string,
) (*models.ServicePackage, error) {

	var pkgs []models.ServicePackage
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, models.EntitlementActive).
		Where("expires_on = '' OR expires_on >= ?", onDate).
		Order("expires_on ASC, id ASC").
		Find(&pkgs).Error
	if err != nil {
		return nil, err
	}

	for i := range pkgs {
		if packageCovers(pkgs[i].ServiceIDs, serviceID) {
			return &pkgs[i], nil
		}
	}

	return nil, httperr.ErrBusiness("package_not_eligible")
}

func packageCovers(serviceIDs string, serviceID uint) bool {
	if serviceIDs == "" || serviceIDs == "all" {
		return true
	}

	want := strconv.FormatUint(uint64(serviceID), 10)
	start := 0
	for i := 0; i <= len(serviceIDs); i++ {
		if i == len(serviceIDs) || serviceIDs[i] == ',' {
			if serviceIDs[start:i] == want {
				return true
			}
			start = i + 1
		}
	}
	return false
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
