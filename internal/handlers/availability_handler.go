package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/models"
	ucBooking "github.com/MLSatya/spark-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
}

func NewAvailabilityHandler(db *gorm.DB, availabilityUC *ucBooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:             db,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityRuleConfig struct {
	ServiceID uint `json:"service_id"`

	Date    string `json:"date"` // YYYY-MM-DD, empty for recurring
	Weekday int    `json:"weekday" binding:"min=0,max=6"`

	RecurringType    string `json:"recurring_type"`
	RecurringEndDate string `json:"recurring_end_date"`

	BiweeklyPattern   int  `json:"biweekly_pattern"`
	SkipFifthWeek     bool `json:"skip_fifth_week"`
	MonthlyOccurrence int  `json:"monthly_occurrence"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Closed bool `json:"closed"`
}

type AvailabilityRulesUpdateRequest struct {
	Rules []AvailabilityRuleConfig `json:"rules" binding:"required"`
}

type DayDefaultConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	DayOff    bool   `json:"day_off"`
}

type DayDefaultsUpdateRequest struct {
	Days []DayDefaultConfig `json:"days" binding:"required"`
}

// targetStaffID resolves which staff member the request operates on. Owners
// may manage any colleague in the same studio via ?staff_id; everyone else
// only manages their own schedule.
func (h *AvailabilityHandler) targetStaffID(c *gin.Context) (uint, bool) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)
	role, _ := c.Get(middleware.ContextUserRole)

	staffIDStr := c.Query("staff_id")
	if staffIDStr == "" {
		return callerID, true
	}

	staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
		return 0, false
	}

	if uint(staffID) == callerID {
		return callerID, true
	}

	if role != "owner" {
		httperr.Forbidden(c, "owner_only", "Only the studio owner can manage other schedules.")
		return 0, false
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND studio_id = ?", staffID, studioID).
		First(&staff).Error; err != nil {

		httperr.NotFound(c, "staff_not_found", "Practitioner not found.")
		return 0, false
	}

	return staff.ID, true
}

// ======================================================
// RULES
// ======================================================

func (h *AvailabilityHandler) GetRules(c *gin.Context) {
	staffID, ok := h.targetStaffID(c)
	if !ok {
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("date ASC, weekday ASC, id ASC").
		Find(&rules).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdateRules replaces the staff member's full rule set in one transaction,
// so a half-applied update can never leave a mixed schedule behind.
func (h *AvailabilityHandler) UpdateRules(c *gin.Context) {
	staffID, ok := h.targetStaffID(c)
	if !ok {
		return
	}

	var req AvailabilityRulesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, r := range req.Rules {
		if r.Date == "" && r.RecurringType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rule_needs_date_or_recurrence"})
			return
		}
		switch r.RecurringType {
		case "", models.RecurringWeekly, models.RecurringBiweekly, models.RecurringMonthly:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_recurring_type"})
			return
		}
		if !r.Closed && (r.StartTime == "" || r.EndTime == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rule_needs_hours"})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ?", staffID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		var toCreate []models.AvailabilityRule
		for _, r := range req.Rules {
			toCreate = append(toCreate, models.AvailabilityRule{
				StaffID:           staffID,
				ServiceID:         r.ServiceID,
				Date:              r.Date,
				Weekday:           r.Weekday,
				RecurringType:     r.RecurringType,
				RecurringEndDate:  r.RecurringEndDate,
				BiweeklyPattern:   r.BiweeklyPattern,
				SkipFifthWeek:     r.SkipFifthWeek,
				MonthlyOccurrence: r.MonthlyOccurrence,
				StartTime:         r.StartTime,
				EndTime:           r.EndTime,
				Closed:            r.Closed,
				Active:            true,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_rules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// DAY DEFAULTS
// ======================================================

func (h *AvailabilityHandler) GetDayDefaults(c *gin.Context) {
	staffID, ok := h.targetStaffID(c)
	if !ok {
		return
	}

	var days []models.StaffDayDefault
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_day_defaults"})
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *AvailabilityHandler) UpdateDayDefaults(c *gin.Context) {
	staffID, ok := h.targetStaffID(c)
	if !ok {
		return
	}

	var req DayDefaultsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ?", staffID).
			Delete(&models.StaffDayDefault{}).Error; err != nil {
			return err
		}

		var toCreate []models.StaffDayDefault
		for _, d := range req.Days {
			toCreate = append(toCreate, models.StaffDayDefault{
				StaffID:   staffID,
				Weekday:   d.Weekday,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
				DayOff:    d.DayOff,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_day_defaults"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// SLOTS
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	staffID, ok := h.targetStaffID(c)
	if !ok {
		return
	}

	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		httperr.Internal(c, "studio_not_found", "Studio not found.")
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
			StudioID:  studioID,
			StaffID:   staffID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
