package calendar

import "time"

// Источник эффективного рабочего окна.
type HoursSource string

const (
	SourceOverride HoursSource = "override"
	SourceTrainer  HoursSource = "trainer"
	SourceGlobal   HoursSource = "global"
)

// Окно по умолчанию, если в хранилище нет глобальной записи.
const (
	DefaultOpenHour  = 8
	DefaultCloseHour = 20
)

// Hours — окно работы в часах суток [Open, Close].
type Hours struct {
	Open  int
	Close int
}

// Validate: 0 <= open < close <= 23.
func (h Hours) Validate() error {
	if h.Open < 0 || h.Open > 23 {
		return Validationf("open_hour must be between 0 and 23, got %d", h.Open)
	}
	if h.Close < 0 || h.Close > 23 {
		return Validationf("close_hour must be between 0 and 23, got %d", h.Close)
	}
	if h.Open >= h.Close {
		return Validationf("open_hour (%d) must be less than close_hour (%d)", h.Open, h.Close)
	}
	return nil
}

// DateRangeHours — переопределение часов тренера на диапазон дат (включительно).
type DateRangeHours struct {
	StartDate time.Time
	EndDate   time.Time
	Hours
	UpdatedAt time.Time
}

func (o DateRangeHours) Validate() error {
	if o.StartDate.IsZero() || o.EndDate.IsZero() {
		return Validationf("start_date and end_date are required")
	}
	if civilDay(o.StartDate) > civilDay(o.EndDate) {
		return Validationf("start_date must not be after end_date")
	}
	return o.Hours.Validate()
}

// Contains проверяет попадание календарной даты в диапазон.
func (o DateRangeHours) Contains(date time.Time) bool {
	d := civilDay(date)
	return civilDay(o.StartDate) <= d && d <= civilDay(o.EndDate)
}

// EffectiveHours — итоговое окно и уровень, из которого оно взято.
type EffectiveHours struct {
	Hours
	Source HoursSource
}

// Admits: час начала попадает в окно, закрывающий час включительно.
func (e EffectiveHours) Admits(hour int) bool {
	return hour >= e.Open && hour <= e.Close
}

// SelectOverride выбирает переопределение, содержащее date.
// При нескольких совпадениях побеждает самое свежее по UpdatedAt.
func SelectOverride(overrides []DateRangeHours, date time.Time) (DateRangeHours, bool) {
	var (
		best  DateRangeHours
		found bool
	)
	for _, o := range overrides {
		if !o.Contains(date) {
			continue
		}
		if !found || o.UpdatedAt.After(best.UpdatedAt) {
			best = o
			found = true
		}
	}
	return best, found
}

// ResolveHours применяет приоритет: override > trainer > global > default.
// base и global могут быть nil.
func ResolveHours(date time.Time, overrides []DateRangeHours, base, global *Hours) EffectiveHours {
	if o, ok := SelectOverride(overrides, date); ok {
		return EffectiveHours{Hours: o.Hours, Source: SourceOverride}
	}
	if base != nil {
		return EffectiveHours{Hours: *base, Source: SourceTrainer}
	}
	if global != nil {
		return EffectiveHours{Hours: *global, Source: SourceGlobal}
	}
	return EffectiveHours{
		Hours:  Hours{Open: DefaultOpenHour, Close: DefaultCloseHour},
		Source: SourceGlobal,
	}
}

// civilDay переводит дату в число вида YYYYMMDD в её собственном поясе.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
