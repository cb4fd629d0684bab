package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

// Clock — источник текущего времени; в тестах фиксированный.
type Clock func() time.Time

// Rules — правила бронирования, общие для всех сервисов.
type Rules struct {
	// Пояс, в котором считаются час суток и календарная дата.
	Location *time.Location
	// Клиент не может менять и отменять запись, до начала которой меньше LockWindow.
	LockWindow time.Duration
	// Клиент бронирует не позже чем за BookingLeadTime до начала.
	BookingLeadTime time.Duration
}

func DefaultRules() Rules {
	return Rules{
		Location:        time.UTC,
		LockWindow:      24 * time.Hour,
		BookingLeadTime: 24 * time.Hour,
	}
}

func (r Rules) loc() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func systemClock() time.Time { return time.Now().UTC() }

// storeError переводит ошибки репозитория в бизнес-отказы;
// всё остальное — инфраструктурная ошибка с контекстом op.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if calendar.ReasonOf(err) != "" {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &calendar.Error{Reason: calendar.ReasonNotFound, Message: op + ": not found", Err: err}
	}
	if errors.Is(err, repository.ErrConstraintViolation) {
		return conflictError(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// conflictError: нарушение уникального индекса слота — конфликт
// той стороны, чей индекс сработал.
func conflictError(err error) error {
	var ce *repository.ConstraintError
	if errors.As(err, &ce) {
		switch ce.Constraint {
		case model.IndexTrainerSlot:
			return &calendar.Error{Reason: calendar.ReasonTrainerConflict, Message: calendar.ErrTrainerConflict.Message, Err: err}
		case model.IndexClientSlot:
			return &calendar.Error{Reason: calendar.ReasonClientConflict, Message: calendar.ErrClientConflict.Message, Err: err}
		}
	}
	return &calendar.Error{Reason: calendar.ReasonConflict, Message: calendar.ErrConflict.Message, Err: err}
}

func requireAdmin(caller calendar.Caller) error {
	if !caller.IsAdmin() {
		return calendar.Errorf(calendar.ReasonForbidden, "admin role required")
	}
	return nil
}
