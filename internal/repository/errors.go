package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Leganyst/trainer-booking/internal/model"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// Коды PostgreSQL: unique_violation и exclusion_violation.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// ConstraintError — нарушение уникальности, пойманное самим хранилищем.
type ConstraintError struct {
	// Имя индекса, если драйвер его сообщил (model.IndexTrainerSlot и т.п.).
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return "constraint violation: " + e.Constraint
	}
	return "constraint violation"
}

func (e *ConstraintError) Unwrap() error { return e.Err }

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraintViolation }

// translateError приводит ошибки драйверов к ошибкам репозитория.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation) {
		return &ConstraintError{Constraint: pgErr.ConstraintName, Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConstraintError{Err: err}
	}

	// sqlite: "UNIQUE constraint failed: appointments.trainer_id, appointments.scheduled_at"
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return &ConstraintError{Constraint: sqliteConstraintName(msg), Err: err}
	}

	return err
}

func sqliteConstraintName(msg string) string {
	switch {
	case strings.Contains(msg, "appointments.trainer_id"):
		return model.IndexTrainerSlot
	case strings.Contains(msg, "appointments.client_id"):
		return model.IndexClientSlot
	}
	return ""
}
