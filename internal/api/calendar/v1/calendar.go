// Package calendarv1 — контракт gRPC-сервиса записи к тренерам.
// Сообщения передаются кодеком JSON (см. codec.go).
package calendarv1

import "time"

type Appointment struct {
	Id              string    `json:"id"`
	ClientId        string    `json:"client_id"`
	TrainerId       string    `json:"trainer_id"`
	TrainerName     string    `json:"trainer_name,omitempty"`
	ClientName      string    `json:"client_name,omitempty"`
	ClientEmail     string    `json:"client_email,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int32     `json:"duration_minutes"`
	ServiceName     *string   `json:"service_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Locked          bool      `json:"locked"`
}

type Cancellation struct {
	Id              string    `json:"id"`
	AppointmentId   string    `json:"appointment_id"`
	ClientId        string    `json:"client_id"`
	TrainerId       string    `json:"trainer_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int32     `json:"duration_minutes"`
	ServiceName     *string   `json:"service_name,omitempty"`
	CancelledAt     time.Time `json:"cancelled_at"`
	CancelledBy     string    `json:"cancelled_by"`
	Reason          *string   `json:"reason,omitempty"`
}

type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type WorkHours struct {
	OpenHour  int32  `json:"open_hour"`
	CloseHour int32  `json:"close_hour"`
	Source    string `json:"source"`
}

type CountBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type TrainerCount struct {
	TrainerId string `json:"trainer_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

// --- CheckAvailability ---

type CheckAvailabilityRequest struct {
	TrainerId            string    `json:"trainer_id"`
	ClientId             string    `json:"client_id,omitempty"`
	Start                time.Time `json:"start"`
	ServiceId            string    `json:"service_id,omitempty"`
	ExcludeAppointmentId string    `json:"exclude_appointment_id,omitempty"`
}

func (x *CheckAvailabilityRequest) GetTrainerId() string {
	if x != nil {
		return x.TrainerId
	}
	return ""
}

func (x *CheckAvailabilityRequest) GetClientId() string {
	if x != nil {
		return x.ClientId
	}
	return ""
}

func (x *CheckAvailabilityRequest) GetStart() time.Time {
	if x != nil {
		return x.Start
	}
	return time.Time{}
}

func (x *CheckAvailabilityRequest) GetServiceId() string {
	if x != nil {
		return x.ServiceId
	}
	return ""
}

func (x *CheckAvailabilityRequest) GetExcludeAppointmentId() string {
	if x != nil {
		return x.ExcludeAppointmentId
	}
	return ""
}

type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

// --- ListFreeSlots ---

type ListFreeSlotsRequest struct {
	TrainerId string `json:"trainer_id"`
	// YYYY-MM-DD
	Date      string `json:"date"`
	ServiceId string `json:"service_id,omitempty"`
}

func (x *ListFreeSlotsRequest) GetTrainerId() string {
	if x != nil {
		return x.TrainerId
	}
	return ""
}

func (x *ListFreeSlotsRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *ListFreeSlotsRequest) GetServiceId() string {
	if x != nil {
		return x.ServiceId
	}
	return ""
}

type ListFreeSlotsResponse struct {
	Slots []*Slot `json:"slots"`
}

// --- CreateAppointment ---

type CreateAppointmentRequest struct {
	// Пусто — сам вызывающий.
	ClientId  string    `json:"client_id,omitempty"`
	TrainerId string    `json:"trainer_id"`
	Start     time.Time `json:"start"`
	ServiceId string    `json:"service_id,omitempty"`
}

func (x *CreateAppointmentRequest) GetClientId() string {
	if x != nil {
		return x.ClientId
	}
	return ""
}

func (x *CreateAppointmentRequest) GetTrainerId() string {
	if x != nil {
		return x.TrainerId
	}
	return ""
}

func (x *CreateAppointmentRequest) GetStart() time.Time {
	if x != nil {
		return x.Start
	}
	return time.Time{}
}

func (x *CreateAppointmentRequest) GetServiceId() string {
	if x != nil {
		return x.ServiceId
	}
	return ""
}

type CreateAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

// --- RescheduleAppointment ---

// Не заданные поля сохраняют текущие значения.
type RescheduleAppointmentRequest struct {
	AppointmentId string     `json:"appointment_id"`
	TrainerId     *string    `json:"trainer_id,omitempty"`
	Start         *time.Time `json:"start,omitempty"`
	ServiceId     *string    `json:"service_id,omitempty"`
}

func (x *RescheduleAppointmentRequest) GetAppointmentId() string {
	if x != nil {
		return x.AppointmentId
	}
	return ""
}

type RescheduleAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

// --- CancelAppointment ---

type CancelAppointmentRequest struct {
	AppointmentId string  `json:"appointment_id"`
	Reason        *string `json:"reason,omitempty"`
}

func (x *CancelAppointmentRequest) GetAppointmentId() string {
	if x != nil {
		return x.AppointmentId
	}
	return ""
}

type CancelAppointmentResponse struct {
	Cancellation *Cancellation `json:"cancellation"`
}

// --- CancelAllAppointments ---

type CancelAllAppointmentsRequest struct {
	// Пусто и All == false — записи самого вызывающего.
	ClientId string  `json:"client_id,omitempty"`
	All      bool    `json:"all,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

func (x *CancelAllAppointmentsRequest) GetClientId() string {
	if x != nil {
		return x.ClientId
	}
	return ""
}

func (x *CancelAllAppointmentsRequest) GetAll() bool {
	if x != nil {
		return x.All
	}
	return false
}

type CancelAllAppointmentsResponse struct {
	Cancelled int32 `json:"cancelled"`
	Skipped   int32 `json:"skipped"`
}

// --- ListMyAppointments ---

type ListMyAppointmentsRequest struct {
	Page     int32 `json:"page,omitempty"`
	PageSize int32 `json:"page_size,omitempty"`
}

func (x *ListMyAppointmentsRequest) GetPage() int32 {
	if x != nil {
		return x.Page
	}
	return 0
}

func (x *ListMyAppointmentsRequest) GetPageSize() int32 {
	if x != nil {
		return x.PageSize
	}
	return 0
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Page         int32          `json:"page"`
	PageSize     int32          `json:"page_size"`
	TotalCount   int64          `json:"total_count"`
	HasNext      bool           `json:"has_next"`
}

// --- GetEffectiveWorkHours ---

type GetEffectiveWorkHoursRequest struct {
	// Пусто — только глобальные часы.
	TrainerId string `json:"trainer_id,omitempty"`
	// YYYY-MM-DD
	Date string `json:"date"`
}

func (x *GetEffectiveWorkHoursRequest) GetTrainerId() string {
	if x != nil {
		return x.TrainerId
	}
	return ""
}

func (x *GetEffectiveWorkHoursRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type GetEffectiveWorkHoursResponse struct {
	Hours *WorkHours `json:"hours"`
}

// --- GetStatistics ---

type GetStatisticsRequest struct{}

type GetStatisticsResponse struct {
	TotalAppointments       int64           `json:"total_appointments"`
	TotalCancellations      int64           `json:"total_cancellations"`
	CancellationsLast30Days int64           `json:"cancellations_last_30_days"`
	ByService               []*CountBucket  `json:"by_service"`
	ByTrainer               []*TrainerCount `json:"by_trainer"`
	ByHour                  []int32         `json:"by_hour"`
	CancellationsByActor    []*CountBucket  `json:"cancellations_by_actor"`
	CancellationsByReason   []*CountBucket  `json:"cancellations_by_reason"`
}
