package entitlement

import (
	"context"

	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

// ======================================================
// GRANT (purchase fulfilment)
// ======================================================

type GrantPassInput struct {
	CustomerID uint
	ServiceID  uint // 0 = any service
	Count      int
	ExpiresOn  string // YYYY-MM-DD, empty = never
}

type GrantPackageInput struct {
	CustomerID uint
	ServiceIDs string // comma list or "all"
	ExpiresOn  string
}

type Grant struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewGrant(db *gorm.DB, auditDispatcher *audit.Dispatcher) *Grant {
	return &Grant{
		db:    db,
		audit: auditDispatcher,
	}
}

func (uc *Grant) Pass(
	ctx context.Context,
	studioID uint,
	in GrantPassInput,
) (*models.Pass, error) {

	if in.CustomerID == 0 || in.Count <= 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	pass := models.Pass{
		CustomerID:      in.CustomerID,
		ServiceID:       in.ServiceID,
		TotalPasses:     in.Count,
		RemainingPasses: in.Count,
		ExpiresOn:       in.ExpiresOn,
		Status:          models.EntitlementActive,
	}

	if err := uc.db.WithContext(ctx).Create(&pass).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		Action:   "pass_granted",
		Entity:   "pass",
		EntityID: &pass.ID,
		Metadata: map[string]any{"count": in.Count},
	})

	return &pass, nil
}

func (uc *Grant) Package(
	ctx context.Context,
	studioID uint,
	in GrantPackageInput,
) (*models.ServicePackage, error) {

	if in.CustomerID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	serviceIDs := in.ServiceIDs
	if serviceIDs == "" {
		serviceIDs = "all"
	}

	pkg := models.ServicePackage{
		CustomerID: in.CustomerID,
		ServiceIDs: serviceIDs,
		ExpiresOn:  in.ExpiresOn,
		Status:     models.EntitlementActive,
	}

	if err := uc.db.WithContext(ctx).Create(&pkg).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		Action:   "package_granted",
		Entity:   "package",
		EntityID: &pkg.ID,
	})

	return &pkg, nil
}
