package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	calendarpb "github.com/Leganyst/trainer-booking/internal/api/calendar/v1"
	"github.com/Leganyst/trainer-booking/internal/auth"
	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
)

// DateLayout — формат календарной даты в запросах.
const DateLayout = "2006-01-02"

// CalendarService — gRPC-адаптер над доменными сервисами.
type CalendarService struct {
	calendarpb.UnimplementedCalendarServiceServer

	appointments *AppointmentService
	workHours    *WorkHoursService
	stats        *StatisticsService
	rules        Rules
}

func NewCalendarService(
	appointments *AppointmentService,
	workHours *WorkHoursService,
	stats *StatisticsService,
	rules Rules,
) *CalendarService {
	return &CalendarService{
		appointments: appointments,
		workHours:    workHours,
		stats:        stats,
		rules:        rules,
	}
}

func (s *CalendarService) CheckAvailability(
	ctx context.Context,
	req *calendarpb.CheckAvailabilityRequest,
) (*calendarpb.CheckAvailabilityResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	trainerID, err := parseID("trainer_id", req.GetTrainerId())
	if err != nil {
		return nil, err
	}
	clientID, err := parseOptionalID("client_id", req.GetClientId())
	if err != nil {
		return nil, err
	}
	excludeID, err := parseOptionalID("exclude_appointment_id", req.GetExcludeAppointmentId())
	if err != nil {
		return nil, err
	}

	res, err := s.appointments.CheckAvailability(ctx, caller, CheckAvailabilityInput{
		ClientID:  clientID,
		TrainerID: trainerID,
		Start:     req.GetStart(),
		ServiceID: req.GetServiceId(),
		ExcludeID: excludeID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.CheckAvailabilityResponse{
		Available: res.OK,
		Reason:    string(res.Reason),
		Message:   res.Message,
	}, nil
}

func (s *CalendarService) ListFreeSlots(
	ctx context.Context,
	req *calendarpb.ListFreeSlotsRequest,
) (*calendarpb.ListFreeSlotsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	trainerID, err := parseID("trainer_id", req.GetTrainerId())
	if err != nil {
		return nil, err
	}
	date, err := s.parseDate(req.GetDate())
	if err != nil {
		return nil, err
	}

	slots, err := s.appointments.ListFreeSlots(ctx, caller, trainerID, date, req.GetServiceId())
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &calendarpb.ListFreeSlotsResponse{Slots: make([]*calendarpb.Slot, 0, len(slots))}
	for _, sl := range slots {
		resp.Slots = append(resp.Slots, &calendarpb.Slot{
			Start:     sl.Start,
			End:       sl.End,
			Available: sl.Available,
			Reason:    string(sl.Reason),
		})
	}
	return resp, nil
}

func (s *CalendarService) CreateAppointment(
	ctx context.Context,
	req *calendarpb.CreateAppointmentRequest,
) (*calendarpb.CreateAppointmentResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	trainerID, err := parseID("trainer_id", req.GetTrainerId())
	if err != nil {
		return nil, err
	}
	clientID, err := parseOptionalID("client_id", req.GetClientId())
	if err != nil {
		return nil, err
	}

	v, err := s.appointments.Create(ctx, caller, CreateAppointmentInput{
		ClientID:  clientID,
		TrainerID: trainerID,
		Start:     req.GetStart(),
		ServiceID: req.GetServiceId(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.CreateAppointmentResponse{Appointment: mapAppointment(v)}, nil
}

func (s *CalendarService) RescheduleAppointment(
	ctx context.Context,
	req *calendarpb.RescheduleAppointmentRequest,
) (*calendarpb.RescheduleAppointmentResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("appointment_id", req.GetAppointmentId())
	if err != nil {
		return nil, err
	}

	in := RescheduleInput{Start: req.Start, ServiceID: req.ServiceId}
	if req.TrainerId != nil {
		tid, err := parseID("trainer_id", *req.TrainerId)
		if err != nil {
			return nil, err
		}
		in.TrainerID = &tid
	}

	v, err := s.appointments.Reschedule(ctx, caller, id, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.RescheduleAppointmentResponse{Appointment: mapAppointment(v)}, nil
}

func (s *CalendarService) CancelAppointment(
	ctx context.Context,
	req *calendarpb.CancelAppointmentRequest,
) (*calendarpb.CancelAppointmentResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("appointment_id", req.GetAppointmentId())
	if err != nil {
		return nil, err
	}

	rec, err := s.appointments.Cancel(ctx, caller, id, req.Reason)
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.CancelAppointmentResponse{Cancellation: mapCancellation(rec)}, nil
}

func (s *CalendarService) CancelAllAppointments(
	ctx context.Context,
	req *calendarpb.CancelAllAppointmentsRequest,
) (*calendarpb.CancelAllAppointmentsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	var clientID *uuid.UUID
	switch {
	case req.GetAll():
	case req.GetClientId() != "":
		if clientID, err = parseOptionalID("client_id", req.GetClientId()); err != nil {
			return nil, err
		}
	default:
		clientID = &caller.ClientID
	}

	res, err := s.appointments.CancelAll(ctx, caller, clientID, req.Reason)
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.CancelAllAppointmentsResponse{
		Cancelled: int32(res.Cancelled),
		Skipped:   int32(res.Skipped),
	}, nil
}

func (s *CalendarService) ListMyAppointments(
	ctx context.Context,
	req *calendarpb.ListMyAppointmentsRequest,
) (*calendarpb.ListAppointmentsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.appointments.ListMyAppointments(ctx, caller, int(req.GetPage()), int(req.GetPageSize()))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &calendarpb.ListAppointmentsResponse{
		Appointments: make([]*calendarpb.Appointment, 0, len(page.Items)),
		Page:         int32(page.Page),
		PageSize:     int32(page.PageSize),
		TotalCount:   page.Total,
		HasNext:      page.HasNext,
	}
	for i := range page.Items {
		resp.Appointments = append(resp.Appointments, mapAppointment(&page.Items[i]))
	}
	return resp, nil
}

func (s *CalendarService) GetEffectiveWorkHours(
	ctx context.Context,
	req *calendarpb.GetEffectiveWorkHoursRequest,
) (*calendarpb.GetEffectiveWorkHoursResponse, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}
	trainerID, err := parseOptionalID("trainer_id", req.GetTrainerId())
	if err != nil {
		return nil, err
	}
	date, err := s.parseDate(req.GetDate())
	if err != nil {
		return nil, err
	}

	h, err := s.workHours.GetEffectiveWorkHours(ctx, trainerID, date)
	if err != nil {
		return nil, toStatus(err)
	}
	return &calendarpb.GetEffectiveWorkHoursResponse{Hours: &calendarpb.WorkHours{
		OpenHour:  int32(h.Open),
		CloseHour: int32(h.Close),
		Source:    string(h.Source),
	}}, nil
}

func (s *CalendarService) GetStatistics(
	ctx context.Context,
	_ *calendarpb.GetStatisticsRequest,
) (*calendarpb.GetStatisticsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.stats.GetStatistics(ctx, caller)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &calendarpb.GetStatisticsResponse{
		TotalAppointments:       st.TotalAppointments,
		TotalCancellations:      st.TotalCancellations,
		CancellationsLast30Days: st.CancellationsLast30Days,
		ByService:               mapBuckets(st.ByService),
		ByTrainer:               make([]*calendarpb.TrainerCount, 0, len(st.ByTrainer)),
		ByHour:                  make([]int32, len(st.ByHour)),
		CancellationsByActor:    mapBuckets(st.CancellationsByActor),
		CancellationsByReason:   mapBuckets(st.CancellationsByReason),
	}
	for _, t := range st.ByTrainer {
		resp.ByTrainer = append(resp.ByTrainer, &calendarpb.TrainerCount{
			TrainerId: t.TrainerID.String(),
			Name:      t.Name,
			Count:     t.Count,
		})
	}
	for h, n := range st.ByHour {
		resp.ByHour[h] = int32(n)
	}
	return resp, nil
}

// parseDate: YYYY-MM-DD в поясе бизнеса.
func (s *CalendarService) parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, status.Error(codes.InvalidArgument, "date is required")
	}
	d, err := time.ParseInLocation(DateLayout, v, s.rules.loc())
	if err != nil {
		return time.Time{}, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func callerFrom(ctx context.Context) (calendar.Caller, error) {
	c, ok := auth.CallerFrom(ctx)
	if !ok {
		return calendar.Caller{}, status.Error(codes.Unauthenticated, "caller is not authenticated")
	}
	return c, nil
}

func parseID(field, v string) (uuid.UUID, error) {
	if v == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s must be a UUID", field)
	}
	return id, nil
}

func parseOptionalID(field, v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := parseID(field, v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// toStatus переводит причину отказа в код gRPC; сбои хранилища — Internal.
func toStatus(err error) error {
	var e *calendar.Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, "internal error")
	}

	var code codes.Code
	switch e.Reason {
	case calendar.ReasonValidation, calendar.ReasonOutOfHours:
		code = codes.InvalidArgument
	case calendar.ReasonForbidden:
		code = codes.PermissionDenied
	case calendar.ReasonNotFound:
		code = codes.NotFound
	case calendar.ReasonLocked:
		code = codes.FailedPrecondition
	case calendar.ReasonTrainerConflict, calendar.ReasonClientConflict, calendar.ReasonConflict:
		code = codes.AlreadyExists
	default:
		code = codes.Unknown
	}
	// Причина в начале сообщения: клиент различает TRAINER_CONFLICT и CLIENT_CONFLICT.
	return status.Error(code, string(e.Reason)+": "+e.Message)
}

func mapAppointment(v *AppointmentView) *calendarpb.Appointment {
	if v == nil {
		return nil
	}
	return &calendarpb.Appointment{
		Id:              v.ID.String(),
		ClientId:        v.ClientID.String(),
		TrainerId:       v.TrainerID.String(),
		TrainerName:     v.TrainerName,
		ClientName:      v.ClientName,
		ClientEmail:     v.ClientEmail,
		ScheduledAt:     v.ScheduledAt,
		EndsAt:          v.EndsAt,
		DurationMinutes: int32(v.DurationMinutes),
		ServiceName:     v.ServiceName,
		CreatedAt:       v.CreatedAt,
		Locked:          v.Locked,
	}
}

func mapCancellation(c *model.Cancellation) *calendarpb.Cancellation {
	if c == nil {
		return nil
	}
	return &calendarpb.Cancellation{
		Id:              c.ID.String(),
		AppointmentId:   c.AppointmentID.String(),
		ClientId:        c.ClientID.String(),
		TrainerId:       c.TrainerID.String(),
		ScheduledAt:     c.ScheduledAt,
		DurationMinutes: int32(c.DurationMinutes),
		ServiceName:     c.ServiceName,
		CancelledAt:     c.CancelledAt,
		CancelledBy:     c.CancelledBy,
		Reason:          c.Reason,
	}
}

func mapBuckets(b []calendar.CountBucket) []*calendarpb.CountBucket {
	out := make([]*calendarpb.CountBucket, 0, len(b))
	for _, x := range b {
		out = append(out, &calendarpb.CountBucket{Key: x.Key, Count: x.Count})
	}
	return out
}
