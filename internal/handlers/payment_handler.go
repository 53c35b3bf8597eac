package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MLSatya/spark-scheduler/internal/payments"
	ucBooking "github.com/MLSatya/spark-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	checkout  *payments.Checkout // nil when payments are not configured
	confirmUC *ucBooking.ConfirmBooking
}

func NewPaymentHandler(checkout *payments.Checkout, confirmUC *ucBooking.ConfirmBooking) *PaymentHandler {
	return &PaymentHandler{
		checkout:  checkout,
		confirmUC: confirmUC,
	}
}

// Webhook handles payment notifications. The provider retries on any
// non-2xx, so unknown topics and replays all answer 200; only a transient
// lookup failure returns 500 to force a retry.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.checkout == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	topic := c.Query("type")
	if topic == "" {
		topic = c.Query("topic")
	}
	if topic != "payment" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	idStr := c.Query("data.id")
	if idStr == "" {
		idStr = c.Query("id")
	}

	paymentID, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	state, err := h.checkout.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment_lookup_failed"})
		return
	}

	if !state.Approved {
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}

	if _, err := h.confirmUC.SettlePayment(c.Request.Context(), state.Reference, state.OrderID); err != nil {
		// unknown reference is terminal, retrying will not help
		c.JSON(http.StatusOK, gin.H{"status": "unmatched"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "settled"})
}
