package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSlotDuration     = errors.New("slot duration must be positive")
)

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и делает простую валидацию.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// RangeFor строит интервал записи по началу и длительности в минутах.
func RangeFor(start time.Time, durationMinutes int) TimeRange {
	return TimeRange{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// NormalizeTimeRange нормализует интервал:
//   - меняет местами границы, если они перепутаны;
//   - переводит в часовой пояс loc;
//   - при превышении maxDuration обрезает интервал до start+maxDuration.
//
// Если maxDuration <= 0, ограничение по длительности не применяется.
func NormalizeTimeRange(
	start, end time.Time,
	loc *time.Location,
	maxDuration time.Duration,
) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrInvalidTimeRange
	}

	if end.Before(start) {
		start, end = end, start
	}

	if loc != nil {
		start = start.In(loc)
		end = end.In(loc)
	}

	if maxDuration > 0 && end.Sub(start) > maxDuration {
		end = start.Add(maxDuration)
	}

	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}

	return TimeRange{Start: start, End: end}, nil
}

// SplitToTimeSlots разбивает интервал на старты с шагом step.
// "Хвост" короче step отбрасывается.
func SplitToTimeSlots(tr TimeRange, step time.Duration) ([]TimeRange, error) {
	if step <= 0 {
		return nil, ErrSlotDuration
	}
	if !tr.End.After(tr.Start) {
		return []TimeRange{}, nil
	}

	var slots []TimeRange
	for cur := tr.Start; !cur.Add(step).After(tr.End); cur = cur.Add(step) {
		slots = append(slots, TimeRange{Start: cur, End: cur.Add(step)})
	}
	return slots, nil
}

// HasOverlap проверяет, пересекается ли newRange с existing.
// Интервалы полуоткрытые: касание концами пересечением не считается.
func HasOverlap(newRange TimeRange, existing []TimeRange) (bool, []TimeRange) {
	var conflicts []TimeRange
	for _, tr := range existing {
		if Overlaps(newRange, tr) {
			conflicts = append(conflicts, tr)
		}
	}
	return len(conflicts) > 0, conflicts
}

// Overlaps: [a.Start, a.End) и [b.Start, b.End) пересекаются,
// если a.Start < b.End && b.Start < a.End.
func Overlaps(a, b TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// IsHourAligned — минуты, секунды и наносекунды равны нулю в поясе loc.
func IsHourAligned(t time.Time, loc *time.Location) bool {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// DateOnly отбрасывает время, оставляя полночь календарной даты в поясе loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
