package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var staff models.Staff
	if err := h.db.Preload("Studio").First(&staff, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        staff.ID,
			"name":      staff.Name,
			"email":     staff.Email,
			"phone":     staff.Phone,
			"role":      staff.Role,
			"studio_id": staff.StudioID,
		},
		"studio": gin.H{
			"id":       staff.Studio.ID,
			"name":     staff.Studio.Name,
			"slug":     staff.Studio.Slug,
			"phone":    staff.Studio.Phone,
			"address":  staff.Studio.Address,
			"timezone": staff.Studio.Timezone,
		},
	})
}
