package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/handlers"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

// Deps are the long lived collaborators built by main (or by a test).
type Deps struct {
	Repo        domain.Repository
	Roster      *domain.Roster
	Audit       *audit.Dispatcher
	Limiter     *middleware.RateLimiter
	Logger      *zap.Logger
	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.ZapLogger(deps.Logger),
		middleware.ZapRecovery(deps.Logger),
		middleware.CORSMiddleware(deps.CORSOrigins),
	)
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookAppointmentUC := ucAppointment.NewBookAppointment(deps.Repo, deps.Audit)
	viewAppointmentUC := ucAppointment.NewViewAppointment(deps.Repo)
	listAppointmentsByDoctorUC := ucAppointment.NewListAppointmentsByDoctor(deps.Repo)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(deps.Repo, deps.Audit)
	modifyAppointmentUC := ucAppointment.NewModifyAppointment(deps.Repo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		viewAppointmentUC,
		listAppointmentsByDoctorUC,
		cancelAppointmentUC,
		modifyAppointmentUC,
		deps.Roster,
		deps.Logger,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	appointments := r.Group("/api/v1/appointments")
	{
		appointments.POST("/book", appointmentHandler.Book)
		appointments.GET("/appointment", appointmentHandler.View)
		appointments.GET("/:doctorName", appointmentHandler.ListByDoctor)
		appointments.DELETE("/cancel", appointmentHandler.Cancel)
		appointments.PATCH("/modify", appointmentHandler.Modify)
	}
}
