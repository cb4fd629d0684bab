package calendar

import (
	"errors"
	"fmt"
)

// Reason — стабильный код отказа, по которому клиент (UI) выбирает сообщение.
type Reason string

const (
	ReasonNotFound        Reason = "NOT_FOUND"
	ReasonForbidden       Reason = "FORBIDDEN"
	ReasonLocked          Reason = "LOCKED"
	ReasonOutOfHours      Reason = "OUT_OF_HOURS"
	ReasonTrainerConflict Reason = "TRAINER_CONFLICT"
	ReasonClientConflict  Reason = "CLIENT_CONFLICT"
	ReasonConflict        Reason = "CONFLICT"
	ReasonValidation      Reason = "VALIDATION_ERROR"
)

// Error — бизнес-отказ с кодом причины.
type Error struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is сравнивает только код причины, поэтому errors.Is(err, ErrLocked) работает
// для любого сообщения.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrNotFound        = &Error{Reason: ReasonNotFound, Message: "not found"}
	ErrForbidden       = &Error{Reason: ReasonForbidden, Message: "forbidden"}
	ErrLocked          = &Error{Reason: ReasonLocked, Message: "too late to change this booking"}
	ErrOutOfHours      = &Error{Reason: ReasonOutOfHours, Message: "outside of working hours"}
	ErrTrainerConflict = &Error{Reason: ReasonTrainerConflict, Message: "trainer is busy at this time"}
	ErrClientConflict  = &Error{Reason: ReasonClientConflict, Message: "you already have an appointment at this time"}
	ErrConflict        = &Error{Reason: ReasonConflict, Message: "slot is already taken"}
	ErrValidation      = &Error{Reason: ReasonValidation, Message: "invalid input"}
)

// Errorf создаёт отказ с кодом reason и уточнённым сообщением.
func Errorf(reason Reason, format string, args ...any) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Validationf — сокращение для ошибок валидации входных данных.
func Validationf(format string, args ...any) *Error {
	return Errorf(ReasonValidation, format, args...)
}

// ReasonOf возвращает код причины или "" для инфраструктурных ошибок.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// IsConflict — любая из конфликтных причин (тренер, клиент, ограничение БД).
func IsConflict(err error) bool {
	switch ReasonOf(err) {
	case ReasonTrainerConflict, ReasonClientConflict, ReasonConflict:
		return true
	}
	return false
}
