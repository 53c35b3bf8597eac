package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/middleware"
	ucBooking "github.com/MLSatya/spark-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC      *ucBooking.CreateBooking
	confirmUC     *ucBooking.ConfirmBooking
	cancelUC      *ucBooking.CancelBooking
	rescheduleUC  *ucBooking.RescheduleBooking
	completeUC    *ucBooking.CompleteBooking
	listByDateUC  *ucBooking.ListBookingsByDate
	listByMonthUC *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	rescheduleUC *ucBooking.RescheduleBooking,
	completeUC *ucBooking.CompleteBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		rescheduleUC:  rescheduleUC,
		completeUC:    completeUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`

	ServiceID   uint `json:"service_id" binding:"required"`
	VariationID uint `json:"variation_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudioID:      studioID,
		StaffID:       staffID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		VariationID:   req.VariationID,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateInStudio(nil, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), staffID, studioID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, studioID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, func(studioID, staffID, bookingID uint) (any, error) {
		return h.confirmUC.Execute(c.Request.Context(), studioID, staffID, bookingID)
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	h.transition(c, func(studioID, staffID, bookingID uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), studioID, staffID, bookingID, req.Reason)
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, func(studioID, staffID, bookingID uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), studioID, staffID, bookingID)
	})
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.transition(c, func(studioID, staffID, bookingID uint) (any, error) {
		return h.completeUC.MarkNoShow(c.Request.Context(), studioID, staffID, bookingID)
	})
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	h.transition(c, func(studioID, staffID, bookingID uint) (any, error) {
		return h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleBookingInput{
			StudioID:  studioID,
			StaffID:   staffID,
			BookingID: bookingID,
			NewDate:   req.Date,
			NewTime:   req.Time,
		})
	})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	if err := h.cancelUC.Delete(c.Request.Context(), studioID, staffID, uint(bookingID)); err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *BookingHandler) transition(
	c *gin.Context,
	run func(studioID, staffID, bookingID uint) (any, error),
) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	result, err := run(studioID, staffID, uint(bookingID))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
