package entitlement

import (
	"context"

	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/models"
)

type ListResult struct {
	Passes   []models.Pass           `json:"passes"`
	Packages []models.ServicePackage `json:"packages"`
}

type List struct {
	db *gorm.DB
}

func NewList(db *gorm.DB) *List {
	return &List{db: db}
}

// Execute returns a customer's entitlements with statuses refreshed: passes
// and packages past their expiry date are swept to expired on read, so
// eligibility checks never see a stale active row.
func (uc *List) Execute(
	ctx context.Context,
	customerID uint,
	today string,
) (*ListResult, error) {

	uc.sweepExpired(ctx, customerID, today)

	var passes []models.Pass
	if err := uc.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&passes).Error; err != nil {
		return nil, err
	}

	var packages []models.ServicePackage
	if err := uc.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&packages).Error; err != nil {
		return nil, err
	}

	return &ListResult{Passes: passes, Packages: packages}, nil
}

func (uc *List) sweepExpired(ctx context.Context, customerID uint, today string) {
	uc.db.WithContext(ctx).
		Model(&models.Pass{}).
		Where(
			"customer_id = ? AND status = ? AND expires_on <> '' AND expires_on < ?",
			customerID, models.EntitlementActive, today,
		).
		Update("status", models.EntitlementExpired)

	uc.db.WithContext(ctx).
		Model(&models.ServicePackage{}).
		Where(
			"customer_id = ? AND status = ? AND expires_on <> '' AND expires_on < ?",
			customerID, models.EntitlementActive, today,
		).
		Update("status", models.EntitlementExpired)
}
