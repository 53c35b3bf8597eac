package db

import (
	"log"
	"time"

	"github.com/MLSatya/spark-scheduler/internal/config"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// bookingsNoOverlapDDL installs the exclusion constraint behind a catalog
// check so the migration is safe to re-run on restart. gorm maps time.Time
// columns to timestamptz, so the range type must be tstzrange.
const bookingsNoOverlapDDL = `
    DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
        ) THEN
            ALTER TABLE bookings
            ADD CONSTRAINT bookings_no_overlap
            EXCLUDE USING gist (
                staff_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            )
            WHERE (status NOT IN ('cancelled', 'no_show', 'failed'));
        END IF;
    END
    $$
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Studio{},
		&models.Staff{},
		&models.StaffDayDefault{},
		&models.Service{},
		&models.ServiceAttribute{},
		&models.AvailabilityRule{},
		&models.Customer{},
		&models.Booking{},
		&models.Pass{},
		&models.PassUsage{},
		&models.ServicePackage{},
		&models.PackageUsage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Database-level guard against double-booking: two live bookings for the
	// same staff member may never hold overlapping intervals, even if both
	// requests raced past the application check.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(bookingsNoOverlapDDL).Error; err != nil {
		log.Fatalf("failed to create bookings_no_overlap constraint: %v", err)
	}

	db.Exec(`
        UPDATE studios
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
