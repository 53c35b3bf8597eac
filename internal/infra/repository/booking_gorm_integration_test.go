package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and skips
// the test when the variable is unset, so the suite stays runnable without
// a local Postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Booking{},
		&models.Pass{},
		&models.PassUsage{},
	))

	return db
}

func testBooking(staffID uint, start time.Time, durationMin int) *models.Booking {
	return &models.Booking{
		Reference:   uuid.NewString(),
		StudioID:    1,
		StaffID:     staffID,
		CustomerID:  1,
		ServiceID:   1,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin: durationMin,
		Status:      "pending",
	}
}

func TestCreateBooking_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staffID := uint(time.Now().UnixNano() % 1_000_000)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	b := testBooking(staffID, start, 45)
	require.NoError(t, repo.CreateBooking(ctx, b, nil))
	require.NotZero(t, b.ID)

	got, err := repo.GetBookingForStaff(ctx, b.ID, staffID)
	require.NoError(t, err)

	assert.Equal(t, b.Reference, got.Reference)
	assert.Equal(t, staffID, got.StaffID)
	assert.True(t, got.StartTime.Equal(start))
	assert.True(t, got.EndTime.Equal(start.Add(45*time.Minute)))
	assert.Equal(t, 45, got.DurationMin)
	assert.Equal(t, "pending", got.Status)
}

func TestCreateBooking_ConflictRejectedInTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staffID := uint(time.Now().UnixNano() % 1_000_000)
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBooking(ctx, testBooking(staffID, start, 60), nil))

	// overlaps 14:30-15:30 against the held 14:00-15:00
	err := repo.CreateBooking(ctx, testBooking(staffID, start.Add(30*time.Minute), 60), nil)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)

	// back to back at 15:00 is fine, intervals are half-open
	assert.NoError(t, repo.CreateBooking(ctx, testBooking(staffID, start.Add(60*time.Minute), 60), nil))
}

func TestCreateBooking_PassDecrementIsGuarded(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staffID := uint(time.Now().UnixNano() % 1_000_000)
	customerID := staffID

	pass := models.Pass{
		CustomerID:      customerID,
		ServiceID:       0,
		TotalPasses:     5,
		RemainingPasses: 1,
		Status:          models.EntitlementActive,
	}
	require.NoError(t, db.Create(&pass).Error)

	claim := &domain.EntitlementClaim{PassID: pass.ID}
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBooking(ctx, testBooking(staffID, start, 60), claim))

	var after models.Pass
	require.NoError(t, db.First(&after, pass.ID).Error)
	assert.Equal(t, 0, after.RemainingPasses)
	assert.Equal(t, models.EntitlementUsedUp, after.Status)

	var usages int64
	require.NoError(t, db.Model(&models.PassUsage{}).
		Where("pass_id = ?", pass.ID).Count(&usages).Error)
	assert.Equal(t, int64(1), usages)

	// second claim on the drained pass must fail and roll the insert back
	second := testBooking(staffID, start.Add(2*time.Hour), 60)
	err := repo.CreateBooking(ctx, second, claim)
	assert.True(t, httperr.IsBusiness(err, "pass_exhausted"), "got %v", err)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("reference = ?", second.Reference).Count(&count).Error)
	assert.Equal(t, int64(0), count, "booking must not survive a failed pass claim")

	_, err = repo.FindEligiblePass(ctx, customerID, 1, "2026-03-02")
	assert.True(t, httperr.IsBusiness(err, "pass_exhausted"),
		fmt.Sprintf("drained pass must not be eligible, got %v", err))
}
