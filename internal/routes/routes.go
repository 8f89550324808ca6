package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	"github.com/clinicsched/medical-scheduler/internal/config"
	"github.com/clinicsched/medical-scheduler/internal/handlers"
	infraRepo "github.com/clinicsched/medical-scheduler/internal/infra/repository"
	"github.com/clinicsched/medical-scheduler/internal/lock"
	"github.com/clinicsched/medical-scheduler/internal/middleware"
	ucAppointment "github.com/clinicsched/medical-scheduler/internal/usecase/appointment"
	ucSlot "github.com/clinicsched/medical-scheduler/internal/usecase/slot"
	ucWindow "github.com/clinicsched/medical-scheduler/internal/usecase/window"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, locker lock.Locker, cfg *config.Config) {

	// ------------------------------
	// Infra singletons
	// ------------------------------
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ------------------------------
	// Use cases
	// ------------------------------
	createWindowUC := ucWindow.NewCreateWindow(schedulingRepo, auditDispatcher)
	updateWindowUC := ucWindow.NewUpdateWindow(schedulingRepo, auditDispatcher)
	deleteWindowUC := ucWindow.NewDeleteWindow(schedulingRepo, auditDispatcher)
	windowQueries := ucWindow.NewWindowQueries(schedulingRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(schedulingRepo, auditDispatcher)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(schedulingRepo, auditDispatcher)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(schedulingRepo, auditDispatcher)
	removeAppointmentUC := ucAppointment.NewRemoveAppointment(schedulingRepo, auditDispatcher)
	appointmentQueries := ucAppointment.NewAppointmentQueries(schedulingRepo)

	findAvailableSlotsUC := ucSlot.NewFindAvailableSlots(schedulingRepo)
	bookSlotUC := ucSlot.NewBookSlot(schedulingRepo, locker, auditDispatcher)

	// ------------------------------
	// Handlers
	// ------------------------------
	windowHandler := handlers.NewWindowHandler(
		createWindowUC,
		updateWindowUC,
		deleteWindowUC,
		windowQueries,
	)

	slotHandler := handlers.NewSlotHandler(
		findAvailableSlotsUC,
		bookSlotUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		updateStatusUC,
		removeAppointmentUC,
		appointmentQueries,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// Public booking surface
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/slots", slotHandler.FindAvailable)
			publicAPI.POST("/slots/book", slotHandler.Book)
			publicAPI.GET("/doctors/:doctorId/windows", windowHandler.ListByDoctor)
		}

		// ------------------------------
		// Scheduling management
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/windows", windowHandler.Create)
			secured.GET("/windows", windowHandler.List)
			secured.GET("/windows/:id", windowHandler.GetByID)
			secured.PATCH("/windows/:id", windowHandler.Update)
			secured.DELETE("/windows/:id", windowHandler.Delete)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.GetByID)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.GET("/doctors/:doctorId/appointments", appointmentHandler.ListByDoctor)
			secured.GET("/patients/:patientId/appointments", appointmentHandler.ListByPatient)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
