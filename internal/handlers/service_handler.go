package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMin     int     `json:"duration_min" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"required"`
	Category        string  `json:"category"`
	RequiredStaffID *uint   `json:"required_staff_id"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMin     *int     `json:"duration_min,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	RequiredStaffID *uint    `json:"required_staff_id,omitempty"`
}

type SetAttributeRequest struct {
	AttributeType string  `json:"attribute_type" binding:"required"`
	Value         string  `json:"value" binding:"required"`
	Price         float64 `json:"price"`
	VariationID   uint    `json:"variation_id"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("studio_id = ?", studioID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		StudioID:        studioID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		Price:           req.Price,
		Active:          true,
		Category:        strings.ToLower(req.Category),
		RequiredStaffID: req.RequiredStaffID,
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.RequiredStaffID != nil {
		service.RequiredStaffID = req.RequiredStaffID
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// --------- Attributes ---------

func (h *ServiceHandler) ListAttributes(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var attrs []models.ServiceAttribute
	if err := h.db.
		Where("service_id = ?", service.ID).
		Order("attribute_type ASC, value ASC").
		Find(&attrs).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_attributes"})
		return
	}

	c.JSON(http.StatusOK, attrs)
}

// SetAttribute upserts one variant row; the unique index on
// (service, type, value, variation) makes repeated saves idempotent.
func (h *ServiceHandler) SetAttribute(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var req SetAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	attrType := strings.ToLower(strings.TrimSpace(req.AttributeType))
	switch attrType {
	case models.AttributeDuration, models.AttributePasses, models.AttributePackage, models.AttributeCustom:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_attribute_type"})
		return
	}

	attr := models.ServiceAttribute{
		ServiceID:     service.ID,
		AttributeType: attrType,
		Value:         strings.TrimSpace(req.Value),
		VariationID:   req.VariationID,
	}

	var existing models.ServiceAttribute
	err := h.db.
		Where(
			"service_id = ? AND attribute_type = ? AND value = ? AND variation_id = ?",
			attr.ServiceID, attr.AttributeType, attr.Value, attr.VariationID,
		).
		First(&existing).Error

	if err == nil {
		existing.Price = req.Price
		if err := h.db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_attribute"})
			return
		}
		c.JSON(http.StatusOK, existing)
		return
	}

	attr.Price = req.Price
	if err := h.db.Create(&attr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_attribute"})
		return
	}

	c.JSON(http.StatusCreated, attr)
}

func (h *ServiceHandler) DeleteAttribute(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	id := c.Param("id")
	attrID := c.Param("attrId")

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	res := h.db.
		Where("id = ? AND service_id = ?", attrID, service.ID).
		Delete(&models.ServiceAttribute{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_attribute"})
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "attribute_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
