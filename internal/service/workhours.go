package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

// WorkHoursService — резолвер рабочих часов и их настройка администратором.
// Часы каждый раз читаются из хранилища, в памяти ничего не кешируется.
type WorkHoursService struct {
	store *repository.Store
	rules Rules
	log   zerolog.Logger
}

func NewWorkHoursService(store *repository.Store, rules Rules, log zerolog.Logger) *WorkHoursService {
	return &WorkHoursService{
		store: store,
		rules: rules,
		log:   log.With().Str("component", "workhours").Logger(),
	}
}

// Resolve: override > trainer > global > 8-20. trainerID == nil — только глобальные.
func (s *WorkHoursService) Resolve(ctx context.Context, trainerID *uuid.UUID, date time.Time) (calendar.EffectiveHours, error) {
	return resolveHours(ctx, s.store, trainerID, date.In(s.rules.loc()))
}

// GetEffectiveWorkHours — Resolve с проверкой, что тренер существует.
func (s *WorkHoursService) GetEffectiveWorkHours(ctx context.Context, trainerID *uuid.UUID, date time.Time) (calendar.EffectiveHours, error) {
	if date.IsZero() {
		return calendar.EffectiveHours{}, calendar.Validationf("date is required")
	}
	if trainerID != nil {
		if _, err := s.store.Trainers.GetByID(ctx, *trainerID); err != nil {
			return calendar.EffectiveHours{}, storeError("get trainer", err)
		}
	}
	return s.Resolve(ctx, trainerID, date)
}

// resolveHours работает с любым Store, в том числе транзакционным.
// date уже должна быть в поясе бизнеса.
func resolveHours(ctx context.Context, store *repository.Store, trainerID *uuid.UUID, date time.Time) (calendar.EffectiveHours, error) {
	var (
		overrides []calendar.DateRangeHours
		base      *calendar.Hours
		global    *calendar.Hours
	)

	if trainerID != nil {
		o, err := store.WorkHours.GetOverride(ctx, *trainerID, date)
		if err != nil {
			return calendar.EffectiveHours{}, storeError("get override", err)
		}
		if o != nil {
			overrides = append(overrides, repository.OverrideRange(*o))
		}

		b, err := store.WorkHours.GetTrainer(ctx, *trainerID)
		if err != nil {
			return calendar.EffectiveHours{}, storeError("get trainer hours", err)
		}
		if b != nil {
			base = &calendar.Hours{Open: b.OpenHour, Close: b.CloseHour}
		}
	}

	g, err := store.WorkHours.GetGlobal(ctx)
	if err != nil {
		return calendar.EffectiveHours{}, storeError("get global hours", err)
	}
	if g != nil {
		global = &calendar.Hours{Open: g.OpenHour, Close: g.CloseHour}
	}

	return calendar.ResolveHours(date, overrides, base, global), nil
}

func (s *WorkHoursService) SetGlobalWorkHours(ctx context.Context, caller calendar.Caller, open, close int) (*model.WorkHours, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	h, err := s.store.WorkHours.SetGlobal(ctx, open, close)
	if err != nil {
		return nil, storeError("set global hours", err)
	}
	s.log.Info().Int("open_hour", open).Int("close_hour", close).Msg("global work hours updated")
	return h, nil
}

func (s *WorkHoursService) SetTrainerWorkHours(
	ctx context.Context,
	caller calendar.Caller,
	trainerID uuid.UUID,
	open, close int,
) (*model.TrainerWorkHours, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if _, err := s.store.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, storeError("get trainer", err)
	}

	h, err := s.store.WorkHours.SetTrainer(ctx, trainerID, open, close)
	if err != nil {
		return nil, storeError("set trainer hours", err)
	}
	s.log.Info().
		Str("trainer_id", trainerID.String()).
		Int("open_hour", open).
		Int("close_hour", close).
		Msg("trainer work hours updated")
	return h, nil
}

func (s *WorkHoursService) SetTrainerWorkHourOverride(
	ctx context.Context,
	caller calendar.Caller,
	trainerID uuid.UUID,
	startDate, endDate time.Time,
	open, close int,
) (*model.TrainerWorkHourOverride, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if _, err := s.store.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, storeError("get trainer", err)
	}

	o, err := s.store.WorkHours.SetOverride(ctx, trainerID, startDate, endDate, open, close)
	if err != nil {
		return nil, storeError("set override", err)
	}
	s.log.Info().
		Str("trainer_id", trainerID.String()).
		Time("start_date", startDate).
		Time("end_date", endDate).
		Int("open_hour", open).
		Int("close_hour", close).
		Msg("trainer work hours override saved")
	return o, nil
}

func (s *WorkHoursService) ListTrainerWorkHourOverrides(ctx context.Context, trainerID uuid.UUID) ([]model.TrainerWorkHourOverride, error) {
	if _, err := s.store.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, storeError("get trainer", err)
	}
	out, err := s.store.WorkHours.ListOverrides(ctx, trainerID)
	if err != nil {
		return nil, storeError("list overrides", err)
	}
	return out, nil
}
