package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	"github.com/dermaline/studio-scheduler/internal/config"
	"github.com/dermaline/studio-scheduler/internal/handlers"
	infraRepo "github.com/dermaline/studio-scheduler/internal/infra/repository"
	"github.com/dermaline/studio-scheduler/internal/middleware"
	ucBooking "github.com/dermaline/studio-scheduler/internal/usecase/booking"
	ucRetention "github.com/dermaline/studio-scheduler/internal/usecase/retention"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	reports *cache.ReportCache,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	retentionRepo := infraRepo.NewRetentionGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	checkSlotUC := ucBooking.NewCheckSlot(bookingRepo)

	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		reports,
	)

	editAppointmentUC := ucBooking.NewEditAppointment(
		bookingRepo,
		auditDispatcher,
		reports,
	)

	registerDepositUC := ucBooking.NewRegisterDeposit(
		bookingRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
		reports,
		cfg.Timezone,
	)

	markNoShowUC := ucBooking.NewMarkNoShow(
		bookingRepo,
		auditDispatcher,
		reports,
		cfg.Timezone,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
		reports,
		cfg.Timezone,
	)

	setReconfirmationUC := ucBooking.NewSetReconfirmation(
		bookingRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucBooking.NewDeleteAppointment(
		bookingRepo,
		auditDispatcher,
		reports,
	)

	listAppointmentsUC := ucBooking.NewListAppointments(
		bookingRepo,
		cfg.Timezone,
		cfg.Specialists,
	)

	// ======================================================
	// USE CASES — RETENTION
	// ======================================================
	buildReportUC := ucRetention.NewBuildReport(
		retentionRepo,
		reports,
		cfg.Timezone,
	)

	updateStateUC := ucRetention.NewUpdateState(
		retentionRepo,
		auditDispatcher,
		reports,
		cfg.Timezone,
	)

	archiveStateUC := ucRetention.NewArchiveState(
		retentionRepo,
		auditDispatcher,
		reports,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		cfg.Timezone,
		checkSlotUC,
		createAppointmentUC,
		editAppointmentUC,
		registerDepositUC,
		completeAppointmentUC,
		markNoShowUC,
		cancelAppointmentUC,
		setReconfirmationUC,
		deleteAppointmentUC,
		listAppointmentsUC,
	)

	retentionHandler := handlers.NewRetentionHandler(
		buildReportUC,
		updateStateUC,
		archiveStateUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
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

			secured.GET("/clients", clientHandler.List)
			secured.PUT("/clients", clientHandler.Upsert)

			secured.GET("/schedule", scheduleHandler.Get)
			secured.PUT("/schedule", scheduleHandler.Update)

			secured.POST("/appointments/check", appointmentHandler.Check)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/occupancy", appointmentHandler.Occupancy)
			secured.PUT("/appointments/:id", appointmentHandler.Edit)
			secured.POST("/appointments/:id/deposit", appointmentHandler.RegisterDeposit)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/noshow", appointmentHandler.NoShow)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/reconfirm", appointmentHandler.Reconfirm)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/transactions", transactionHandler.List)
			secured.POST("/transactions", transactionHandler.CreateSale)

			secured.GET("/retention/followups", retentionHandler.FollowUps)
			secured.GET("/retention/archive", retentionHandler.Archive)
			secured.GET("/retention/reactivation", retentionHandler.Reactivation)
			secured.GET("/retention/metrics", retentionHandler.Metrics)
			secured.PATCH("/retention/states/:id", retentionHandler.UpdateState)

			// privileged surface
			privileged := secured.Group("/")
			privileged.Use(middleware.RequirePrivileged())
			{
				privileged.POST("/users", authHandler.Register)
				privileged.POST("/retention/states/:id/archive", retentionHandler.SetArchived)
				privileged.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
