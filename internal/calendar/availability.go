package calendar

import (
	"time"
)

// Максимальная длительность записи; ограничивает окно выборки занятых интервалов.
const MaxDurationMinutes = 24 * 60

// SlotRequest описывает проверяемый слот.
type SlotRequest struct {
	Start           time.Time
	DurationMinutes int
	Hours           EffectiveHours
	// Занятые интервалы тренера и клиента (без переносимой записи).
	TrainerBusy []TimeRange
	ClientBusy  []TimeRange
}

// CheckSlot проверяет слот по порядку: выравнивание по часу, рабочие часы,
// пересечение с записями тренера, затем клиента. loc — пояс бизнеса.
func CheckSlot(req SlotRequest, loc *time.Location) error {
	if req.Start.IsZero() {
		return Validationf("start time is required")
	}
	if !IsHourAligned(req.Start, loc) {
		return Validationf("appointments must start on the hour")
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > MaxDurationMinutes {
		return Validationf("duration must be between 1 and %d minutes", MaxDurationMinutes)
	}

	local := req.Start
	if loc != nil {
		local = local.In(loc)
	}
	if !req.Hours.Admits(local.Hour()) {
		return Errorf(ReasonOutOfHours, "trainer works from %02d:00 to %02d:00", req.Hours.Open, req.Hours.Close)
	}

	candidate := RangeFor(req.Start, req.DurationMinutes)
	if busy, _ := HasOverlap(candidate, req.TrainerBusy); busy {
		return ErrTrainerConflict
	}
	if busy, _ := HasOverlap(candidate, req.ClientBusy); busy {
		return ErrClientConflict
	}
	return nil
}

// BusyWindow — интервал выборки существующих записей, способных пересечь candidate.
func BusyWindow(candidate TimeRange) TimeRange {
	return TimeRange{
		Start: candidate.Start.Add(-time.Duration(MaxDurationMinutes) * time.Minute),
		End:   candidate.End,
	}
}

// IsLocked: до начала осталось меньше window или запись уже в прошлом.
func IsLocked(start, now time.Time, window time.Duration) bool {
	return start.Sub(now) < window
}
