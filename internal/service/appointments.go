package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/catalog"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

// AppointmentView — запись с данными для отображения.
type AppointmentView struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	TrainerID       uuid.UUID
	TrainerName     string
	ClientName      string
	ClientEmail     string
	ScheduledAt     time.Time
	EndsAt          time.Time
	DurationMinutes int
	ServiceName     *string
	CreatedAt       time.Time
	// Клиент уже не может перенести или отменить запись.
	Locked bool
}

type CreateAppointmentInput struct {
	// Запись от имени другого клиента (только администратор); nil — сам вызывающий.
	ClientID  *uuid.UUID
	TrainerID uuid.UUID
	Start     time.Time
	// Пустой — без услуги, 60 минут.
	ServiceID string
}

// RescheduleInput: nil-поля оставляют текущие значения.
type RescheduleInput struct {
	TrainerID *uuid.UUID
	Start     *time.Time
	ServiceID *string
}

type CancelAllResult struct {
	Cancelled int
	Skipped   int
}

// FreeSlot — кандидат в сетке свободных часов.
type FreeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
	Reason    calendar.Reason
}

var errLeadTime = &calendar.Error{
	Reason:  calendar.ReasonLocked,
	Message: "bookings and changes must be made at least 24 hours in advance",
}

// AppointmentService — жизненный цикл записи: создание, перенос, отмена.
// Проверка слота и запись выполняются в одной транзакции; уникальные индексы
// слота ловят гонку, которую проверка пропустила.
type AppointmentService struct {
	store   *repository.Store
	checker *AvailabilityChecker
	rules   Rules
	now     Clock
	log     zerolog.Logger
}

func NewAppointmentService(store *repository.Store, rules Rules, clock Clock, log zerolog.Logger) *AppointmentService {
	if clock == nil {
		clock = systemClock
	}
	return &AppointmentService{
		store:   store,
		checker: NewAvailabilityChecker(store, rules),
		rules:   rules,
		now:     clock,
		log:     log.With().Str("component", "appointments").Logger(),
	}
}

type CheckAvailabilityInput struct {
	// Чужой клиент — только администратор; nil — сам вызывающий.
	ClientID  *uuid.UUID
	TrainerID uuid.UUID
	Start     time.Time
	ServiceID string
	// Переносимая запись, не считается занятостью.
	ExcludeID *uuid.UUID
}

// CheckAvailability — проверка слота без записи.
func (s *AppointmentService) CheckAvailability(ctx context.Context, caller calendar.Caller, in CheckAvailabilityInput) (Availability, error) {
	clientID := caller.ClientID
	if in.ClientID != nil && *in.ClientID != caller.ClientID {
		if err := requireAdmin(caller); err != nil {
			return Availability{}, err
		}
		clientID = *in.ClientID
		if _, err := s.store.Clients.GetByID(ctx, clientID); err != nil {
			return Availability{}, storeError("get client", err)
		}
	}
	if in.TrainerID == uuid.Nil {
		return Availability{}, calendar.Validationf("trainer_id is required")
	}
	duration, _, err := catalog.Resolve(in.ServiceID)
	if err != nil {
		return Availability{}, calendar.Validationf("unknown service %q", in.ServiceID)
	}
	if _, err := s.store.Trainers.GetByID(ctx, in.TrainerID); err != nil {
		return Availability{}, storeError("get trainer", err)
	}

	return s.checker.IsAvailable(ctx, SlotQuery{
		TrainerID:       in.TrainerID,
		ClientID:        clientID,
		Start:           in.Start,
		DurationMinutes: duration,
		ExcludeID:       in.ExcludeID,
	})
}

func (s *AppointmentService) Create(ctx context.Context, caller calendar.Caller, in CreateAppointmentInput) (*AppointmentView, error) {
	clientID := caller.ClientID
	if in.ClientID != nil && *in.ClientID != caller.ClientID {
		if !caller.IsAdmin() {
			return nil, calendar.Errorf(calendar.ReasonForbidden, "cannot book on behalf of another client")
		}
		clientID = *in.ClientID
	}
	if in.TrainerID == uuid.Nil {
		return nil, calendar.Validationf("trainer_id is required")
	}

	duration, serviceName, err := catalog.Resolve(in.ServiceID)
	if err != nil {
		return nil, calendar.Validationf("unknown service %q", in.ServiceID)
	}

	now := s.now()
	if err := s.checkLeadTime(caller, in.Start, now); err != nil {
		return nil, s.rejected(err, "create", uuid.Nil)
	}

	appt := &model.Appointment{
		ClientID:        clientID,
		TrainerID:       in.TrainerID,
		ScheduledAt:     in.Start.UTC(),
		DurationMinutes: duration,
		ServiceName:     serviceName,
	}

	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		trainer, err := tx.Trainers.GetByIDForUpdate(ctx, in.TrainerID)
		if err != nil {
			return storeError("get trainer", err)
		}
		client, err := tx.Clients.GetByIDForUpdate(ctx, clientID)
		if err != nil {
			return storeError("get client", err)
		}

		if err := checkSlot(ctx, tx, s.rules.loc(), SlotQuery{
			TrainerID:       in.TrainerID,
			ClientID:        clientID,
			Start:           in.Start,
			DurationMinutes: duration,
		}); err != nil {
			return err
		}

		if err := tx.Appointments.Create(ctx, appt); err != nil {
			return storeError("create appointment", err)
		}
		appt.Trainer = trainer
		appt.Client = client
		return nil
	})
	if err != nil {
		return nil, s.rejected(err, "create", uuid.Nil)
	}

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("client_id", clientID.String()).
		Str("trainer_id", in.TrainerID.String()).
		Time("scheduled_at", appt.ScheduledAt).
		Str("actor", string(caller.Actor())).
		Msg("appointment created")

	return s.view(appt, now), nil
}

func (s *AppointmentService) Reschedule(
	ctx context.Context,
	caller calendar.Caller,
	id uuid.UUID,
	in RescheduleInput,
) (*AppointmentView, error) {
	now := s.now()

	var updated model.Appointment
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		current, err := tx.Appointments.GetByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("get appointment", err)
		}
		if !caller.CanManage(current.ClientID) {
			return calendar.Errorf(calendar.ReasonForbidden, "appointment belongs to another client")
		}
		if !caller.IsAdmin() && calendar.IsLocked(current.ScheduledAt, now, s.rules.LockWindow) {
			return calendar.ErrLocked
		}

		next := *current
		if in.TrainerID != nil {
			next.TrainerID = *in.TrainerID
		}
		if in.Start != nil {
			if err := s.checkLeadTime(caller, *in.Start, now); err != nil {
				return err
			}
			next.ScheduledAt = in.Start.UTC()
		}
		if in.ServiceID != nil {
			duration, name, err := catalog.Resolve(*in.ServiceID)
			if err != nil {
				return calendar.Validationf("unknown service %q", *in.ServiceID)
			}
			next.DurationMinutes = duration
			next.ServiceName = name
		}

		trainer, err := tx.Trainers.GetByIDForUpdate(ctx, next.TrainerID)
		if err != nil {
			return storeError("get trainer", err)
		}
		if _, err := tx.Clients.GetByIDForUpdate(ctx, next.ClientID); err != nil {
			return storeError("get client", err)
		}

		if err := checkSlot(ctx, tx, s.rules.loc(), SlotQuery{
			TrainerID:       next.TrainerID,
			ClientID:        next.ClientID,
			Start:           next.ScheduledAt,
			DurationMinutes: next.DurationMinutes,
			ExcludeID:       &current.ID,
		}); err != nil {
			return err
		}

		if err := tx.Appointments.Update(ctx, &next); err != nil {
			return storeError("update appointment", err)
		}
		next.Trainer = trainer
		updated = next
		return nil
	})
	if err != nil {
		return nil, s.rejected(err, "reschedule", id)
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Str("trainer_id", updated.TrainerID.String()).
		Time("scheduled_at", updated.ScheduledAt).
		Str("actor", string(caller.Actor())).
		Msg("appointment rescheduled")

	return s.view(&updated, now), nil
}

// Cancel пишет снимок в журнал отмен и удаляет запись в одной транзакции.
// Повторная отмена той же записи — NOT_FOUND.
func (s *AppointmentService) Cancel(
	ctx context.Context,
	caller calendar.Caller,
	id uuid.UUID,
	reason *string,
) (*model.Cancellation, error) {
	now := s.now()

	var rec *model.Cancellation
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		a, err := tx.Appointments.GetByIDForUpdate(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// Строки нет: либо её не было, либо уже отменили.
			if prev, perr := tx.Cancellations.GetByAppointmentID(ctx, id); perr == nil && caller.CanManage(prev.ClientID) {
				return calendar.Errorf(calendar.ReasonNotFound, "appointment already cancelled at %s", prev.CancelledAt.Format(time.RFC3339))
			}
		}
		if err != nil {
			return storeError("get appointment", err)
		}
		if !caller.CanManage(a.ClientID) {
			return calendar.Errorf(calendar.ReasonForbidden, "appointment belongs to another client")
		}
		if !caller.IsAdmin() && calendar.IsLocked(a.ScheduledAt, now, s.rules.LockWindow) {
			return calendar.ErrLocked
		}

		rec = model.NewCancellation(a, string(caller.Actor()), cleanReason(reason), now)
		if err := tx.Cancellations.Create(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				return calendar.Errorf(calendar.ReasonNotFound, "appointment already cancelled")
			}
			return storeError("create cancellation", err)
		}
		if err := tx.Appointments.Delete(ctx, a.ID); err != nil {
			return storeError("delete appointment", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.rejected(err, "cancel", id)
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Str("cancelled_by", rec.CancelledBy).
		Msg("appointment cancelled")

	return rec, nil
}

// CancelAll отменяет будущие записи клиента (clientID == nil — всех клиентов,
// только администратор). Запись, которую нельзя отменить по правилу блокировки
// или которая уже исчезла, пропускается.
func (s *AppointmentService) CancelAll(
	ctx context.Context,
	caller calendar.Caller,
	clientID *uuid.UUID,
	reason *string,
) (CancelAllResult, error) {
	var res CancelAllResult
	if clientID == nil || !caller.Owns(*clientID) {
		if err := requireAdmin(caller); err != nil {
			return res, err
		}
	}

	upcoming, err := s.store.Appointments.ListUpcoming(ctx, clientID, s.now())
	if err != nil {
		return res, storeError("list upcoming appointments", err)
	}

	for _, a := range upcoming {
		_, err := s.Cancel(ctx, caller, a.ID, reason)
		switch {
		case err == nil:
			res.Cancelled++
		case errors.Is(err, calendar.ErrLocked), errors.Is(err, calendar.ErrNotFound):
			res.Skipped++
		default:
			return res, err
		}
	}

	s.log.Info().
		Int("cancelled", res.Cancelled).
		Int("skipped", res.Skipped).
		Str("actor", string(caller.Actor())).
		Msg("bulk cancel finished")

	return res, nil
}

// ListMyAppointments — записи вызывающего, свежие сверху.
func (s *AppointmentService) ListMyAppointments(
	ctx context.Context,
	caller calendar.Caller,
	page, pageSize int,
) (calendar.Page[AppointmentView], error) {
	page, limit, offset := calendar.PageBounds(page, pageSize)

	rows, total, err := s.store.Appointments.ListByClientPaged(ctx, caller.ClientID, limit, offset)
	if err != nil {
		return calendar.Page[AppointmentView]{}, storeError("list appointments", err)
	}
	return s.page(rows, total, page, limit), nil
}

// ListAllAppointments — все записи студии (только администратор).
func (s *AppointmentService) ListAllAppointments(
	ctx context.Context,
	caller calendar.Caller,
	page, pageSize int,
) (calendar.Page[AppointmentView], error) {
	if err := requireAdmin(caller); err != nil {
		return calendar.Page[AppointmentView]{}, err
	}
	page, limit, offset := calendar.PageBounds(page, pageSize)

	rows, total, err := s.store.Appointments.ListAllPaged(ctx, limit, offset)
	if err != nil {
		return calendar.Page[AppointmentView]{}, storeError("list appointments", err)
	}
	return s.page(rows, total, page, limit), nil
}

// ListCancellations — журнал отмен (только администратор).
func (s *AppointmentService) ListCancellations(
	ctx context.Context,
	caller calendar.Caller,
	page, pageSize int,
) (calendar.Page[model.Cancellation], error) {
	if err := requireAdmin(caller); err != nil {
		return calendar.Page[model.Cancellation]{}, err
	}
	page, limit, offset := calendar.PageBounds(page, pageSize)

	rows, total, err := s.store.Cancellations.ListPaged(ctx, limit, offset)
	if err != nil {
		return calendar.Page[model.Cancellation]{}, storeError("list cancellations", err)
	}
	return calendar.NewPage(rows, total, page, limit), nil
}

// ListFreeSlots раскладывает рабочее окно тренера на дату по часам
// (от открытия до закрытия включительно) и помечает занятость каждого старта.
func (s *AppointmentService) ListFreeSlots(
	ctx context.Context,
	caller calendar.Caller,
	trainerID uuid.UUID,
	date time.Time,
	serviceID string,
) ([]FreeSlot, error) {
	if date.IsZero() {
		return nil, calendar.Validationf("date is required")
	}
	duration, _, err := catalog.Resolve(serviceID)
	if err != nil {
		return nil, calendar.Validationf("unknown service %q", serviceID)
	}
	if _, err := s.store.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, storeError("get trainer", err)
	}

	loc := s.rules.loc()
	day := calendar.DateOnly(date, loc)
	hours, err := resolveHours(ctx, s.store, &trainerID, day)
	if err != nil {
		return nil, err
	}

	workday, err := calendar.NormalizeTimeRange(
		day.Add(time.Duration(hours.Open)*time.Hour),
		day.Add(time.Duration(hours.Close+1)*time.Hour),
		loc,
		24*time.Hour,
	)
	if err != nil {
		return nil, err
	}
	grid, err := calendar.SplitToTimeSlots(workday, time.Hour)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return []FreeSlot{}, nil
	}

	window := calendar.BusyWindow(calendar.TimeRange{
		Start: grid[0].Start,
		End:   grid[len(grid)-1].Start.Add(time.Duration(duration) * time.Minute),
	})
	trainerAppts, err := s.store.Appointments.ListForTrainer(ctx, trainerID, &window)
	if err != nil {
		return nil, storeError("list trainer appointments", err)
	}
	clientAppts, err := s.store.Appointments.ListForClient(ctx, caller.ClientID, &window)
	if err != nil {
		return nil, storeError("list client appointments", err)
	}
	trainerBusy := busyRanges(trainerAppts, nil)
	clientBusy := busyRanges(clientAppts, nil)

	now := s.now()
	out := make([]FreeSlot, 0, len(grid))
	for _, g := range grid {
		slot := FreeSlot{Start: g.Start, End: g.Start.Add(time.Duration(duration) * time.Minute)}

		err := s.checkLeadTime(caller, g.Start, now)
		if err == nil {
			err = calendar.CheckSlot(calendar.SlotRequest{
				Start:           g.Start,
				DurationMinutes: duration,
				Hours:           hours,
				TrainerBusy:     trainerBusy,
				ClientBusy:      clientBusy,
			}, loc)
		}
		if err != nil {
			slot.Reason = calendar.ReasonOf(err)
		} else {
			slot.Available = true
		}
		out = append(out, slot)
	}
	return out, nil
}

// checkLeadTime: клиент не может бронировать ближе BookingLeadTime к началу.
func (s *AppointmentService) checkLeadTime(caller calendar.Caller, start, now time.Time) error {
	if caller.IsAdmin() || start.IsZero() {
		return nil
	}
	if start.Sub(now) < s.rules.BookingLeadTime {
		return errLeadTime
	}
	return nil
}

// rejected логирует отказ: бизнес-отказ на debug, занятый слот на info, сбой хранилища на error.
func (s *AppointmentService) rejected(err error, op string, id uuid.UUID) error {
	ev := s.log.Debug()
	switch {
	case calendar.ReasonOf(err) == "":
		ev = s.log.Error()
	case calendar.IsConflict(err):
		ev = s.log.Info()
	}
	ev = ev.Err(err).Str("op", op).Str("reason", string(calendar.ReasonOf(err)))
	if id != uuid.Nil {
		ev = ev.Str("appointment_id", id.String())
	}
	ev.Msg("appointment request rejected")
	return err
}

func (s *AppointmentService) page(rows []model.Appointment, total int64, page, limit int) calendar.Page[AppointmentView] {
	now := s.now()
	p := calendar.NewPage(rows, total, page, limit)
	return calendar.MapPage(p, func(a model.Appointment) AppointmentView {
		return *s.view(&a, now)
	})
}

func (s *AppointmentService) view(a *model.Appointment, now time.Time) *AppointmentView {
	v := &AppointmentView{
		ID:              a.ID,
		ClientID:        a.ClientID,
		TrainerID:       a.TrainerID,
		ScheduledAt:     a.ScheduledAt,
		EndsAt:          a.EndsAt(),
		DurationMinutes: a.DurationMinutes,
		ServiceName:     a.ServiceName,
		CreatedAt:       a.CreatedAt,
		Locked:          calendar.IsLocked(a.ScheduledAt, now, s.rules.LockWindow),
	}
	if a.Trainer != nil {
		v.TrainerName = a.Trainer.FullName()
	}
	if a.Client != nil {
		v.ClientName = a.Client.FullName()
		v.ClientEmail = a.Client.Email
	}
	return v
}

func cleanReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	r := strings.TrimSpace(*reason)
	if r == "" {
		return nil
	}
	return &r
}
