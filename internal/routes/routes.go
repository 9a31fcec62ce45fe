package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwell-app/booking-api/internal/audit"
	"github.com/bookwell-app/booking-api/internal/config"
	"github.com/bookwell-app/booking-api/internal/dedup"
	"github.com/bookwell-app/booking-api/internal/gateway"
	"github.com/bookwell-app/booking-api/internal/handlers"
	infraRepo "github.com/bookwell-app/booking-api/internal/infra/repository"
	"github.com/bookwell-app/booking-api/internal/middleware"
	ucBooking "github.com/bookwell-app/booking-api/internal/usecase/booking"
	ucPayment "github.com/bookwell-app/booking-api/internal/usecase/payment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cache dedup.Cache,
) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	subscriptionMgr := infraRepo.NewSubscriptionGormManager(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var stripeGateway *gateway.StripeGateway
	if cfg.StripeSecretKey != "" {
		stripeGateway = gateway.NewStripeGateway(
			cfg.StripeSecretKey,
			cfg.StripeCurrency,
			cfg.PaymentSuccessURL,
			cfg.PaymentCancelURL,
		)
	}

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	addPaymentUC := ucBooking.NewAddPayment(
		bookingRepo,
		auditDispatcher,
	)

	getAvailabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
	)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(
		bookingRepo,
	)

	listBookingsByMonthUC := ucBooking.NewListBookingsByMonth(
		bookingRepo,
	)

	// ======================================================
	// 🧠 USE CASES — PAYMENT RECONCILIATION
	// ======================================================
	reconcileUC := ucPayment.NewReconcile(
		bookingRepo,
		cache,
		subscriptionMgr,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	accountHandler := handlers.NewAccountHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	blockedRangeHandler := handlers.NewBlockedRangeHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		addPaymentUC,
		listBookingsByDateUC,
		listBookingsByMonthUC,
		bookingRepo,
		stripeGateway,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		getAvailabilityUC,
		createBookingUC,
	)

	webhookHandler := handlers.NewWebhookHandler(reconcileUC, cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// 💳 GATEWAY WEBHOOK
		// ------------------------------
		api.POST("/webhook/stripe", webhookHandler.HandleStripe)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/account", accountHandler.GetMeAccount)
			secured.PATCH("/me/account", accountHandler.UpdateMeAccount)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/blocked-ranges", blockedRangeHandler.List)
			secured.POST("/me/blocked-ranges", blockedRangeHandler.Create)
			secured.DELETE("/me/blocked-ranges/:id", blockedRangeHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/me/bookings/:id/payments", bookingHandler.AddPayment)
			secured.POST("/me/bookings/:id/payment-link", bookingHandler.PaymentLink)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
