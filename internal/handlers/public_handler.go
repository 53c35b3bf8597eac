package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
	ucBooking "github.com/MLSatya/spark-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucBooking.CreateBooking
	availabilityUC *ucBooking.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	availabilityUC *ucBooking.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`

	ServiceID   uint `json:"service_id" binding:"required"`
	VariationID uint `json:"variation_id"`
	StaffID     uint `json:"staff_id"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("studio_id = ? AND active = true", studio.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studio":   studio,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	staff, err := h.resolveStaff(&studio, uint(serviceID), c.Query("staff_id"))
	if err != nil {
		httperr.BadRequest(c, "staff_not_found", "Practitioner not found.")
		return
	}

	date, err := parseDateInStudio(&studio, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			StudioID:  studio.ID,
			StaffID:   staff.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Invalid service.")
			return
		}

		httperr.Internal(c, "availability_failed", "Failed to compute available slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING (PUBLIC, REUSES THE PRIVATE USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	staffIDStr := ""
	if req.StaffID != 0 {
		staffIDStr = strconv.FormatUint(uint64(req.StaffID), 10)
	}

	staff, err := h.resolveStaff(&studio, req.ServiceID, staffIDStr)
	if err != nil {
		httperr.BadRequest(c, "staff_not_found", "Practitioner not found.")
		return
	}

	result, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			StudioID:      studio.ID,
			StaffID:       staff.ID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			ServiceID:     req.ServiceID,
			VariationID:   req.VariationID,
			Date:          req.Date,
			Time:          req.Time,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		},
	)

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":            result.Booking,
		"order":              result.Order,
		"deposit_disclosure": studio.DepositDisclosure,
	})
}

// resolveStaff picks the practitioner a public request targets. The service's
// required practitioner always wins; next comes the explicit staff_id; the
// studio owner is the last resort.
func (h *PublicHandler) resolveStaff(
	studio *models.Studio,
	serviceID uint,
	staffIDStr string,
) (*models.Staff, error) {

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", serviceID, studio.ID).
		First(&service).Error; err == nil && service.RequiredStaffID != nil {

		var staff models.Staff
		if err := h.db.
			Where("id = ? AND studio_id = ?", *service.RequiredStaffID, studio.ID).
			First(&staff).Error; err != nil {
			return nil, err
		}
		return &staff, nil
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}

		var staff models.Staff
		if err := h.db.
			Where("id = ? AND studio_id = ?", staffID, studio.ID).
			First(&staff).Error; err != nil {
			return nil, err
		}
		return &staff, nil
	}

	var owner models.Staff
	if err := h.db.
		Where("studio_id = ? AND role = ?", studio.ID, "owner").
		First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}
