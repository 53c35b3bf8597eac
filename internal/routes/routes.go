package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MLSatya/spark-scheduler/internal/audit"
	"github.com/MLSatya/spark-scheduler/internal/config"
	"github.com/MLSatya/spark-scheduler/internal/handlers"
	infraRepo "github.com/MLSatya/spark-scheduler/internal/infra/repository"
	"github.com/MLSatya/spark-scheduler/internal/middleware"
	"github.com/MLSatya/spark-scheduler/internal/notify"
	"github.com/MLSatya/spark-scheduler/internal/payments"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	ucBooking "github.com/MLSatya/spark-scheduler/internal/usecase/booking"
	ucEntitlement "github.com/MLSatya/spark-scheduler/internal/usecase/entitlement"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	mirror *readmodel.ScheduleMirror,
	notifier *notify.Notifier,
	cfg *config.Config,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var checkout *payments.Checkout
	if cfg.MercadoPagoToken != "" {
		var err error
		checkout, err = payments.NewCheckout(cfg.MercadoPagoToken, cfg.WebhookBaseURL)
		if err != nil {
			log.Printf("payments disabled: %v", err)
			checkout = nil
		}
	}

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		mirror,
		checkout,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		mirror,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		mirror,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		mirror,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
		mirror,
	)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(
		bookingRepo,
		mirror,
	)

	listBookingsByMonthUC := ucBooking.NewListBookingsByMonth(
		bookingRepo,
	)

	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// USE CASES: ENTITLEMENTS
	// ======================================================
	grantUC := ucEntitlement.NewGrant(db, auditDispatcher)
	listEntitlementsUC := ucEntitlement.NewList(db)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	studioHandler := handlers.NewStudioHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, getAvailabilityUC)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		completeBookingUC,
		listBookingsByDateUC,
		listBookingsByMonthUC,
	)

	passHandler := handlers.NewPassHandler(db, grantUC, listEntitlementsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createBookingUC, getAvailabilityUC)
	paymentHandler := handlers.NewPaymentHandler(checkout, confirmBookingUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// PAYMENT WEBHOOK
		// ------------------------------
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/studio", studioHandler.GetMeStudio)
			secured.PATCH("/me/studio", studioHandler.UpdateMeStudio)

			secured.GET("/me/customers", customerHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.GET("/me/services/:id/attributes", serviceHandler.ListAttributes)
			secured.PUT("/me/services/:id/attributes", serviceHandler.SetAttribute)
			secured.DELETE("/me/services/:id/attributes/:attrId", serviceHandler.DeleteAttribute)

			secured.GET("/me/availability/rules", availabilityHandler.GetRules)
			secured.PUT("/me/availability/rules", availabilityHandler.UpdateRules)
			secured.GET("/me/availability/days", availabilityHandler.GetDayDefaults)
			secured.PUT("/me/availability/days", availabilityHandler.UpdateDayDefaults)
			secured.GET("/me/availability/slots", availabilityHandler.Slots)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/no-show", bookingHandler.NoShow)
			secured.DELETE("/me/bookings/:id", bookingHandler.Delete)

			// ------------------------------
			// ENTITLEMENTS (OWNER ONLY)
			// ------------------------------
			entitlements := secured.Group("/me")
			entitlements.Use(middleware.RequireOwner())
			{
				entitlements.POST("/passes", passHandler.GrantPass)
				entitlements.POST("/packages", passHandler.GrantPackage)
				entitlements.GET("/customers/:customerId/entitlements", passHandler.ListForCustomer)
			}

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
