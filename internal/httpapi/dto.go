package httpapi

import (
	"time"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/catalog"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTrainerRequest struct {
	Name            string  `json:"name" binding:"required"`
	Surname         string  `json:"surname" binding:"required"`
	Sex             *string `json:"sex"`
	Age             *int    `json:"age"`
	YearsExperience int     `json:"years_experience"`
	ProfilePic      *string `json:"profile_pic"`
	Type            string  `json:"type"`
	ClientID        *string `json:"client_id"`
}

type createAppointmentRequest struct {
	ClientID  *string   `json:"client_id"`
	TrainerID string    `json:"trainer_id" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	ServiceID string    `json:"service_id"`
}

type rescheduleRequest struct {
	TrainerID *string    `json:"trainer_id"`
	Start     *time.Time `json:"start"`
	ServiceID *string    `json:"service_id"`
}

type cancelRequest struct {
	Reason *string `json:"reason"`
}

type cancelAllRequest struct {
	ClientID *string `json:"client_id"`
	All      bool    `json:"all"`
	Reason   *string `json:"reason"`
}

type hoursRequest struct {
	OpenHour  *int `json:"open_hour" binding:"required"`
	CloseHour *int `json:"close_hour" binding:"required"`
}

type overrideRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	OpenHour  *int   `json:"open_hour" binding:"required"`
	CloseHour *int   `json:"close_hour" binding:"required"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toClient(c *model.Client) clientResponse {
	return clientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Surname:   c.Surname,
		Email:     c.Email,
		IsAdmin:   c.IsAdmin,
		CreatedAt: c.CreatedAt,
	}
}

type trainerResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Surname         string  `json:"surname"`
	Sex             *string `json:"sex,omitempty"`
	Age             *int    `json:"age,omitempty"`
	YearsExperience int     `json:"years_experience"`
	ProfilePic      *string `json:"profile_pic,omitempty"`
	Type            string  `json:"type"`
	ClientID        *string `json:"client_id,omitempty"`
}

func toTrainer(t *model.Trainer) trainerResponse {
	out := trainerResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Surname:         t.Surname,
		Sex:             t.Sex,
		Age:             t.Age,
		YearsExperience: t.YearsExperience,
		ProfilePic:      t.ProfilePic,
		Type:            t.Type,
	}
	if t.ClientID != nil {
		id := t.ClientID.String()
		out.ClientID = &id
	}
	return out
}

type serviceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

func toService(s catalog.Service) serviceResponse {
	return serviceResponse{ID: s.ID, Name: s.Name, DurationMinutes: s.DurationMinutes}
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	TrainerID       string    `json:"trainer_id"`
	TrainerName     string    `json:"trainer_name,omitempty"`
	ClientName      string    `json:"client_name,omitempty"`
	ClientEmail     string    `json:"client_email,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceName     *string   `json:"service_name"`
	CreatedAt       time.Time `json:"created_at"`
	Locked          bool      `json:"locked"`
}

func toAppointment(v service.AppointmentView) appointmentResponse {
	return appointmentResponse{
		ID:              v.ID.String(),
		ClientID:        v.ClientID.String(),
		TrainerID:       v.TrainerID.String(),
		TrainerName:     v.TrainerName,
		ClientName:      v.ClientName,
		ClientEmail:     v.ClientEmail,
		ScheduledAt:     v.ScheduledAt,
		EndsAt:          v.EndsAt,
		DurationMinutes: v.DurationMinutes,
		ServiceName:     v.ServiceName,
		CreatedAt:       v.CreatedAt,
		Locked:          v.Locked,
	}
}

type cancellationResponse struct {
	ID              string    `json:"id"`
	AppointmentID   string    `json:"appointment_id"`
	ClientID        string    `json:"client_id"`
	TrainerID       string    `json:"trainer_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceName     *string   `json:"service_name"`
	CancelledAt     time.Time `json:"cancelled_at"`
	CancelledBy     string    `json:"cancelled_by"`
	Reason          *string   `json:"reason"`
}

func toCancellation(c model.Cancellation) cancellationResponse {
	return cancellationResponse{
		ID:              c.ID.String(),
		AppointmentID:   c.AppointmentID.String(),
		ClientID:        c.ClientID.String(),
		TrainerID:       c.TrainerID.String(),
		ScheduledAt:     c.ScheduledAt,
		DurationMinutes: c.DurationMinutes,
		ServiceName:     c.ServiceName,
		CancelledAt:     c.CancelledAt,
		CancelledBy:     c.CancelledBy,
		Reason:          c.Reason,
	}
}

type pageResponse[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
}

func toPage[T, R any](p calendar.Page[T], fn func(T) R) pageResponse[R] {
	m := calendar.MapPage(p, fn)
	return pageResponse[R]{
		Items:    m.Items,
		Page:     m.Page,
		PageSize: m.PageSize,
		Total:    m.Total,
		HasNext:  m.HasNext,
		HasPrev:  m.HasPrev,
	}
}

type hoursResponse struct {
	OpenHour  int    `json:"open_hour"`
	CloseHour int    `json:"close_hour"`
	Source    string `json:"source,omitempty"`
}

type overrideResponse struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOverride(o model.TrainerWorkHourOverride) overrideResponse {
	return overrideResponse{
		ID:        o.ID.String(),
		TrainerID: o.TrainerID.String(),
		StartDate: time.Time(o.StartDate).Format(service.DateLayout),
		EndDate:   time.Time(o.EndDate).Format(service.DateLayout),
		OpenHour:  o.OpenHour,
		CloseHour: o.CloseHour,
		UpdatedAt: o.UpdatedAt,
	}
}

type slotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

type trainerCountResponse struct {
	TrainerID string `json:"trainer_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type bucketResponse struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type statisticsResponse struct {
	TotalAppointments       int64                  `json:"total_appointments"`
	TotalCancellations      int64                  `json:"total_cancellations"`
	CancellationsLast30Days int64                  `json:"cancellations_last_30_days"`
	ByService               []bucketResponse       `json:"by_service"`
	ByTrainer               []trainerCountResponse `json:"by_trainer"`
	ByHour                  [24]int                `json:"by_hour"`
	CancellationsByActor    []bucketResponse       `json:"cancellations_by_actor"`
	CancellationsByReason   []bucketResponse       `json:"cancellations_by_reason"`
}

func toBuckets(b []calendar.CountBucket) []bucketResponse {
	out := make([]bucketResponse, 0, len(b))
	for _, x := range b {
		out = append(out, bucketResponse{Key: x.Key, Count: x.Count})
	}
	return out
}

func toStatistics(s *service.Statistics) statisticsResponse {
	out := statisticsResponse{
		TotalAppointments:       s.TotalAppointments,
		TotalCancellations:      s.TotalCancellations,
		CancellationsLast30Days: s.CancellationsLast30Days,
		ByService:               toBuckets(s.ByService),
		ByTrainer:               make([]trainerCountResponse, 0, len(s.ByTrainer)),
		ByHour:                  s.ByHour,
		CancellationsByActor:    toBuckets(s.CancellationsByActor),
		CancellationsByReason:   toBuckets(s.CancellationsByReason),
	}
	for _, t := range s.ByTrainer {
		out.ByTrainer = append(out.ByTrainer, trainerCountResponse{
			TrainerID: t.TrainerID.String(),
			Name:      t.Name,
			Count:     t.Count,
		})
	}
	return out
}
