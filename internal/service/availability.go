package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

// SlotQuery — кандидат на запись.
type SlotQuery struct {
	TrainerID       uuid.UUID
	ClientID        uuid.UUID
	Start           time.Time
	DurationMinutes int
	// При переносе сама переносимая запись не считается занятостью.
	ExcludeID *uuid.UUID
}

// Availability — результат проверки слота.
type Availability struct {
	OK      bool
	Reason  calendar.Reason
	Message string
}

// AvailabilityChecker проверяет слот по текущему состоянию хранилища.
type AvailabilityChecker struct {
	store *repository.Store
	rules Rules
}

func NewAvailabilityChecker(store *repository.Store, rules Rules) *AvailabilityChecker {
	return &AvailabilityChecker{store: store, rules: rules}
}

// IsAvailable возвращает отказ с причиной в Availability;
// error — только сбой хранилища.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, q SlotQuery) (Availability, error) {
	err := checkSlot(ctx, c.store, c.rules.loc(), q)
	if err == nil {
		return Availability{OK: true}, nil
	}

	var e *calendar.Error
	if errors.As(err, &e) {
		return Availability{Reason: e.Reason, Message: e.Message}, nil
	}
	return Availability{}, err
}

// checkSlot — проверка внутри переданного Store. Вызывается в той же
// транзакции, что и вставка/обновление.
func checkSlot(ctx context.Context, store *repository.Store, loc *time.Location, q SlotQuery) error {
	if q.Start.IsZero() {
		return calendar.Validationf("start time is required")
	}
	if !calendar.IsHourAligned(q.Start, loc) {
		return calendar.Validationf("appointments must start on the hour")
	}

	hours, err := resolveHours(ctx, store, &q.TrainerID, q.Start.In(loc))
	if err != nil {
		return err
	}

	req := calendar.SlotRequest{
		Start:           q.Start,
		DurationMinutes: q.DurationMinutes,
		Hours:           hours,
	}
	if q.DurationMinutes > 0 && q.DurationMinutes <= calendar.MaxDurationMinutes {
		window := calendar.BusyWindow(calendar.RangeFor(q.Start, q.DurationMinutes))

		trainerAppts, err := store.Appointments.ListForTrainer(ctx, q.TrainerID, &window)
		if err != nil {
			return storeError("list trainer appointments", err)
		}
		clientAppts, err := store.Appointments.ListForClient(ctx, q.ClientID, &window)
		if err != nil {
			return storeError("list client appointments", err)
		}
		req.TrainerBusy = busyRanges(trainerAppts, q.ExcludeID)
		req.ClientBusy = busyRanges(clientAppts, q.ExcludeID)
	}

	return calendar.CheckSlot(req, loc)
}

func busyRanges(appts []model.Appointment, exclude *uuid.UUID) []calendar.TimeRange {
	out := make([]calendar.TimeRange, 0, len(appts))
	for _, a := range appts {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		out = append(out, calendar.RangeFor(a.ScheduledAt, a.DurationMinutes))
	}
	return out
}
