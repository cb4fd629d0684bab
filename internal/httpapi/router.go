// Package httpapi — JSON-over-HTTP поверх доменных сервисов (gin).
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Leganyst/trainer-booking/internal/auth"
	"github.com/Leganyst/trainer-booking/internal/service"
)

type Handler struct {
	Appointments *service.AppointmentService
	WorkHours    *service.WorkHoursService
	Statistics   *service.StatisticsService
	Identity     *service.IdentityService
	Verifier     *auth.Verifier
	Rules        service.Rules

	log zerolog.Logger
}

func NewRouter(h *Handler, log zerolog.Logger) *gin.Engine {
	h.log = log.With().Str("component", "http").Logger()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.log))

	r.GET("/healthz", h.Health)

	r.POST("/clients", h.RegisterClient)
	r.GET("/services", h.ListServices)
	r.GET("/trainers", h.ListTrainers)
	r.GET("/trainers/:id", h.GetTrainer)

	api := r.Group("/api")
	api.Use(AuthMiddleware(h.Verifier, h.log))
	{
		api.POST("/trainers", h.CreateTrainer)

		api.GET("/availability", h.CheckAvailability)
		api.GET("/trainers/:id/slots", h.ListFreeSlots)

		appointments := api.Group("/appointments")
		{
			appointments.POST("", h.CreateAppointment)
			appointments.GET("", h.ListAllAppointments)
			appointments.GET("/me", h.ListMyAppointments)
			appointments.POST("/cancel-all", h.CancelAll)
			appointments.PATCH("/:id", h.RescheduleAppointment)
			appointments.POST("/:id/cancel", h.CancelAppointment)
		}
		api.GET("/cancellations", h.ListCancellations)

		api.GET("/work-hours", h.GetEffectiveWorkHours)
		api.PUT("/work-hours/global", h.SetGlobalWorkHours)
		api.PUT("/trainers/:id/work-hours", h.SetTrainerWorkHours)
		api.GET("/trainers/:id/work-hours/overrides", h.ListOverrides)
		api.POST("/trainers/:id/work-hours/overrides", h.SetOverride)

		api.GET("/statistics", h.GetStatistics)
	}

	return r
}
