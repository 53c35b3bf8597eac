package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/httpresp"
	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

func (h *CustomerHandler) List(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("studio_id = ?", studioID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	httpresp.List(c, customers)
}
