package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamosbarber/booking-engine/internal/audit"
	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/config"
	"github.com/chamosbarber/booking-engine/internal/handlers"
	infraRepo "github.com/chamosbarber/booking-engine/internal/infra/repository"
	"github.com/chamosbarber/booking-engine/internal/middleware"
	ucBooking "github.com/chamosbarber/booking-engine/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, availCache *cache.AvailabilityCache, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(
		schedulingRepo,
		availCache,
		cfg,
	)

	commitUC := ucBooking.NewCommitBooking(
		schedulingRepo,
		availCache,
		auditDispatcher,
		cfg,
	)

	completeUC := ucBooking.NewCompleteAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	noShowUC := ucBooking.NewMarkNoShow(
		schedulingRepo,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		schedulingRepo,
		availCache,
		auditDispatcher,
	)

	cancelByReferenceUC := ucBooking.NewCancelByReference(
		schedulingRepo,
		availCache,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListAppointmentsByDate(
		schedulingRepo,
	)

	listByMonthUC := ucBooking.NewListAppointmentsByMonth(
		schedulingRepo,
	)

	lookupByPhoneUC := ucBooking.NewLookupAppointmentsByPhone(
		schedulingRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	shiftHandler := handlers.NewShiftHandler(db, availCache, auditDispatcher)
	blockedIntervalHandler := handlers.NewBlockedIntervalHandler(db, availCache, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		commitUC,
		completeUC,
		cancelUC,
		noShowUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		commitUC,
		lookupByPhoneUC,
		cancelByReferenceUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)

			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments", publicHandler.LookupByPhone)
			publicAPI.POST("/appointments/:reference/cancel", publicHandler.CancelByReference)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.Get)
			secured.PATCH("/me/shop", shopHandler.Update)

			secured.GET("/me/customers", customerHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id", barberHandler.Update)

			secured.GET("/me/barbers/:id/shifts", shiftHandler.Get)
			secured.PUT("/me/barbers/:id/shifts", shiftHandler.Update)

			secured.GET("/me/blocked-intervals", blockedIntervalHandler.List)
			secured.POST("/me/blocked-intervals", blockedIntervalHandler.Create)
			secured.DELETE("/me/blocked-intervals/:id", blockedIntervalHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
