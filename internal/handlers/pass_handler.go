package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/models"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
	ucEntitlement "github.com/MLSatya/spark-scheduler/internal/usecase/entitlement"
)

// ======================================================
// HANDLER
// ======================================================

type PassHandler struct {
	db      *gorm.DB
	grantUC *ucEntitlement.Grant
	listUC  *ucEntitlement.List
}

func NewPassHandler(db *gorm.DB, grantUC *ucEntitlement.Grant, listUC *ucEntitlement.List) *PassHandler {
	return &PassHandler{
		db:      db,
		grantUC: grantUC,
		listUC:  listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type GrantPassRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceID  uint   `json:"service_id"`
	Count      int    `json:"count" binding:"required,min=1"`
	ExpiresOn  string `json:"expires_on"` // YYYY-MM-DD, empty = never
}

type GrantPackageRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceIDs string `json:"service_ids"` // comma list or "all"
	ExpiresOn  string `json:"expires_on"`
}

// ======================================================
// GRANT
// ======================================================

func (h *PassHandler) GrantPass(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req GrantPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !h.customerBelongsToStudio(c, studioID, req.CustomerID) {
		return
	}

	pass, err := h.grantUC.Pass(c.Request.Context(), studioID, ucEntitlement.GrantPassInput{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Count:      req.Count,
		ExpiresOn:  req.ExpiresOn,
	})

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, pass)
}

func (h *PassHandler) GrantPackage(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req GrantPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !h.customerBelongsToStudio(c, studioID, req.CustomerID) {
		return
	}

	pkg, err := h.grantUC.Package(c.Request.Context(), studioID, ucEntitlement.GrantPackageInput{
		CustomerID: req.CustomerID,
		ServiceIDs: req.ServiceIDs,
		ExpiresOn:  req.ExpiresOn,
	})

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// ======================================================
// LIST
// ======================================================

func (h *PassHandler) ListForCustomer(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	if !h.customerBelongsToStudio(c, studioID, uint(customerID)) {
		return
	}

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		httperr.Internal(c, "studio_not_found", "Studio not found.")
		return
	}

	today := timezone.NowIn(studio.Timezone).Format("2006-01-02")

	result, err := h.listUC.Execute(c.Request.Context(), uint(customerID), today)
	if err != nil {
		httperr.Internal(c, "failed_to_list_entitlements", "Failed to list entitlements.")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PassHandler) customerBelongsToStudio(c *gin.Context, studioID, customerID uint) bool {
	var customer models.Customer
	if err := h.db.
		Where("id = ? AND studio_id = ?", customerID, studioID).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return false
	}
	return true
}
