package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

func TestCreate_TrainerConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	first, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 16, 0), ServiceID: "func"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60", first.DurationMinutes)
	}
	if !first.EndsAt.Equal(jan(15, 17, 0)) {
		t.Fatalf("ends_at = %s, want 17:00", first.EndsAt)
	}

	// Тот же старт, 45 минут.
	_, err = env.appts.Create(ctx, b, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 16, 0), ServiceID: "crossfit"})
	requireReason(t, err, calendar.ReasonTrainerConflict)

	// 15:00–16:30 заходит на 16:00–17:00.
	_, err = env.appts.Create(ctx, b, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 15, 0), ServiceID: "masaza"})
	requireReason(t, err, calendar.ReasonTrainerConflict)

	// Старт не на начале часа отклоняется раньше проверки пересечений.
	_, err = env.appts.Create(ctx, b, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 16, 30), ServiceID: "crossfit"})
	requireReason(t, err, calendar.ReasonValidation)

	// Впритык после окончания — свободно.
	if _, err := env.appts.Create(ctx, b, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 17, 0), ServiceID: "crossfit"}); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}
	mustCount(t, "appointments", env.countAppointments(t), 2)
}

func TestCreate_ClientConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	marko := env.trainer(t, "Marko", 8, 20)
	ivan := env.trainer(t, "Ivan", 8, 20)
	a := env.caller(t, "a@gym.test")

	if _, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: marko, Start: jan(15, 16, 0)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: ivan, Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonClientConflict)
}

func TestCreate_OutOfHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	_, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 21, 0)})
	requireReason(t, err, calendar.ReasonOutOfHours)

	_, err = env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 7, 0)})
	requireReason(t, err, calendar.ReasonOutOfHours)

	// Час закрытия допустим как старт.
	if _, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 20, 0)}); err != nil {
		t.Fatalf("start at close hour: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	_, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 10, 0), ServiceID: "yoga"})
	requireReason(t, err, calendar.ReasonValidation)

	_, err = env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer})
	requireReason(t, err, calendar.ReasonValidation)

	_, err = env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: uuid.New(), Start: jan(15, 10, 0)})
	requireReason(t, err, calendar.ReasonNotFound)

	_, err = env.appts.Create(ctx, a, CreateAppointmentInput{ClientID: &b.ClientID, TrainerID: trainer, Start: jan(15, 10, 0)})
	requireReason(t, err, calendar.ReasonForbidden)

	// Администратор может записать клиента.
	v, err := env.appts.Create(ctx, env.admin, CreateAppointmentInput{ClientID: &b.ClientID, TrainerID: trainer, Start: jan(15, 10, 0)})
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if v.ClientID != b.ClientID {
		t.Fatalf("client_id = %s, want %s", v.ClientID, b.ClientID)
	}
	if v.ServiceName != nil {
		t.Fatalf("service_name = %q, want nil", *v.ServiceName)
	}
	if v.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60", v.DurationMinutes)
	}
}

func TestCreate_LeadTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	// 18 часов до начала.
	_, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(14, 20, 0)})
	requireReason(t, err, calendar.ReasonLocked)
	if !strings.Contains(err.Error(), "24 hours in advance") {
		t.Fatalf("unexpected message: %v", err)
	}

	if _, err := env.appts.Create(ctx, env.admin, CreateAppointmentInput{ClientID: &a.ClientID, TrainerID: trainer, Start: jan(14, 20, 0)}); err != nil {
		t.Fatalf("admin inside lead time: %v", err)
	}
}

func TestCreate_ServiceSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	v, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: trainer, Start: jan(15, 10, 0), ServiceID: "masaza"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ServiceName == nil || *v.ServiceName != "Masaža" {
		t.Fatalf("service_name = %v, want Masaža", v.ServiceName)
	}
	if v.DurationMinutes != 90 {
		t.Fatalf("duration = %d, want 90", v.DurationMinutes)
	}
	if v.TrainerName != "Marko Coach" {
		t.Fatalf("trainer_name = %q", v.TrainerName)
	}
	if v.Locked {
		t.Fatalf("new appointment must not be locked")
	}

	stored, err := env.store.Appointments.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.ServiceName == nil || *stored.ServiceName != "Masaža" {
		t.Fatalf("stored service_name = %v", stored.ServiceName)
	}
}

// blindAppointments не видит занятости, как будто параллельная вставка
// случилась между проверкой и записью.
type blindAppointments struct {
	repository.AppointmentRepository
}

func (blindAppointments) ListForTrainer(context.Context, uuid.UUID, *calendar.TimeRange) ([]model.Appointment, error) {
	return nil, nil
}

func (blindAppointments) ListForClient(context.Context, uuid.UUID, *calendar.TimeRange) ([]model.Appointment, error) {
	return nil, nil
}

func TestCreate_UniqueIndexCatchesRace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	marko := env.trainer(t, "Marko", 8, 20)
	ivan := env.trainer(t, "Ivan", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	if _, err := env.appts.Create(ctx, a, CreateAppointmentInput{TrainerID: marko, Start: jan(15, 16, 0)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	blind := env.store.WithTxFactory(func(tx *gorm.DB) *repository.Store {
		s := repository.NewStore(tx)
		s.Appointments = blindAppointments{s.Appointments}
		return s
	})
	racy := NewAppointmentService(blind, env.rules, func() time.Time { return testNow }, env.appts.log)

	_, err := racy.Create(ctx, b, CreateAppointmentInput{TrainerID: marko, Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonTrainerConflict)

	_, err = racy.Create(ctx, a, CreateAppointmentInput{TrainerID: ivan, Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonClientConflict)

	mustCount(t, "appointments", env.countAppointments(t), 1)
}

func TestReschedule_MutatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	// +30ч → +40ч
	orig := env.seed(t, a.ClientID, trainer, testNow.Add(30*time.Hour), 60)
	target := testNow.Add(40 * time.Hour)

	v, err := env.appts.Reschedule(ctx, a, orig.ID, RescheduleInput{Start: &target})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if v.ID != orig.ID {
		t.Fatalf("id changed: %s -> %s", orig.ID, v.ID)
	}
	if !v.ScheduledAt.Equal(target) {
		t.Fatalf("scheduled_at = %s, want %s", v.ScheduledAt, target)
	}

	mustCount(t, "appointments", env.countAppointments(t), 1)
	mustCount(t, "cancellations", env.countCancellations(t), 0)

	stored, err := env.store.Appointments.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !stored.ScheduledAt.Equal(target) {
		t.Fatalf("stored scheduled_at = %s, want %s", stored.ScheduledAt, target)
	}
}

func TestReschedule_OwnSlotIsNotAConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	orig := env.seed(t, a.ClientID, trainer, jan(15, 16, 0), 60)
	crossfit := "crossfit"

	v, err := env.appts.Reschedule(ctx, a, orig.ID, RescheduleInput{ServiceID: &crossfit})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if v.DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", v.DurationMinutes)
	}
	if v.ServiceName == nil || *v.ServiceName != "Crossfit" {
		t.Fatalf("service_name = %v, want Crossfit", v.ServiceName)
	}
}

func TestReschedule_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	marko := env.trainer(t, "Marko", 8, 20)
	ivan := env.trainer(t, "Ivan", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	mine := env.seed(t, a.ClientID, marko, jan(15, 10, 0), 60)
	env.seed(t, b.ClientID, ivan, jan(15, 12, 0), 60)

	tooSoon := env.seed(t, a.ClientID, marko, testNow.Add(10*time.Hour), 60)

	t.Run("another client", func(t *testing.T) {
		start := jan(15, 14, 0)
		_, err := env.appts.Reschedule(ctx, b, mine.ID, RescheduleInput{Start: &start})
		requireReason(t, err, calendar.ReasonForbidden)
	})

	t.Run("trainer busy", func(t *testing.T) {
		start := jan(15, 12, 0)
		_, err := env.appts.Reschedule(ctx, a, mine.ID, RescheduleInput{TrainerID: &ivan, Start: &start})
		requireReason(t, err, calendar.ReasonTrainerConflict)

		stored, err := env.store.Appointments.GetByID(ctx, mine.ID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if stored.TrainerID != marko || !stored.ScheduledAt.Equal(jan(15, 10, 0)) {
			t.Fatalf("rejected reschedule changed the row: %+v", stored)
		}
	})

	t.Run("locked", func(t *testing.T) {
		start := jan(16, 10, 0)
		_, err := env.appts.Reschedule(ctx, a, tooSoon.ID, RescheduleInput{Start: &start})
		requireReason(t, err, calendar.ReasonLocked)
	})

	t.Run("target inside lead time", func(t *testing.T) {
		start := jan(14, 20, 0)
		_, err := env.appts.Reschedule(ctx, a, mine.ID, RescheduleInput{Start: &start})
		requireReason(t, err, calendar.ReasonLocked)
	})

	t.Run("admin bypasses the lock", func(t *testing.T) {
		start := jan(14, 18, 0)
		v, err := env.appts.Reschedule(ctx, env.admin, tooSoon.ID, RescheduleInput{Start: &start})
		if err != nil {
			t.Fatalf("admin reschedule: %v", err)
		}
		if !v.ScheduledAt.Equal(start) {
			t.Fatalf("scheduled_at = %s, want %s", v.ScheduledAt, start)
		}
	})

	t.Run("missing", func(t *testing.T) {
		start := jan(16, 10, 0)
		_, err := env.appts.Reschedule(ctx, a, uuid.New(), RescheduleInput{Start: &start})
		requireReason(t, err, calendar.ReasonNotFound)
	})
}

func TestCancel_LockedForClientAdminOverrides(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	appt := env.seed(t, a.ClientID, trainer, testNow.Add(10*time.Hour), 60)

	_, err := env.appts.Cancel(ctx, a, appt.ID, nil)
	requireReason(t, err, calendar.ReasonLocked)
	mustCount(t, "cancellations", env.countCancellations(t), 0)

	reason := "  trainer is sick "
	rec, err := env.appts.Cancel(ctx, env.admin, appt.ID, &reason)
	if err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	if rec.CancelledBy != string(calendar.ActorAdmin) {
		t.Fatalf("cancelled_by = %q, want admin", rec.CancelledBy)
	}
	if rec.Reason == nil || *rec.Reason != "trainer is sick" {
		t.Fatalf("reason = %v, want trimmed text", rec.Reason)
	}
	if rec.AppointmentID != appt.ID {
		t.Fatalf("appointment_id = %s, want %s", rec.AppointmentID, appt.ID)
	}
	if !rec.ScheduledAt.Equal(appt.ScheduledAt) || rec.DurationMinutes != 60 {
		t.Fatalf("snapshot mismatch: %+v", rec)
	}
	if !rec.CancelledAt.Equal(testNow) {
		t.Fatalf("cancelled_at = %s, want %s", rec.CancelledAt, testNow)
	}

	mustCount(t, "appointments", env.countAppointments(t), 0)
	mustCount(t, "cancellations", env.countCancellations(t), 1)

	// Повторная отмена.
	_, err = env.appts.Cancel(ctx, env.admin, appt.ID, nil)
	requireReason(t, err, calendar.ReasonNotFound)
	if !strings.Contains(err.Error(), "already cancelled") {
		t.Fatalf("unexpected message: %v", err)
	}
	mustCount(t, "cancellations", env.countCancellations(t), 1)
}

func TestCancel_LockBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 0, 23)
	a := env.caller(t, "a@gym.test")

	cases := []struct {
		name  string
		start time.Time
		want  calendar.Reason
	}{
		{"24h and a minute ahead", testNow.Add(24*time.Hour + time.Minute), ""},
		{"23h59m ahead", testNow.Add(23*time.Hour + 59*time.Minute), calendar.ReasonLocked},
		{"already started", testNow.Add(-2 * time.Hour), calendar.ReasonLocked},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			appt := env.seed(t, a.ClientID, trainer, c.start, 60)
			rec, err := env.appts.Cancel(ctx, a, appt.ID, nil)
			if c.want == "" {
				if err != nil {
					t.Fatalf("cancel: %v", err)
				}
				if rec.CancelledBy != string(calendar.ActorUser) {
					t.Fatalf("cancelled_by = %q, want user", rec.CancelledBy)
				}
				if rec.Reason != nil {
					t.Fatalf("reason = %q, want nil", *rec.Reason)
				}
				return
			}
			requireReason(t, err, c.want)
		})
	}
}

func TestCancel_OtherClientForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	appt := env.seed(t, a.ClientID, trainer, jan(16, 10, 0), 60)
	_, err := env.appts.Cancel(ctx, b, appt.ID, nil)
	requireReason(t, err, calendar.ReasonForbidden)
}

func TestCancelAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 0, 23)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	env.seed(t, a.ClientID, trainer, testNow.Add(10*time.Hour), 60) // заблокирована
	env.seed(t, a.ClientID, trainer, jan(16, 10, 0), 60)
	env.seed(t, a.ClientID, trainer, jan(17, 10, 0), 60)
	env.seed(t, a.ClientID, trainer, testNow.Add(-5*time.Hour), 60) // прошлая, не трогаем
	env.seed(t, b.ClientID, trainer, jan(18, 10, 0), 60)

	_, err := env.appts.CancelAll(ctx, a, &b.ClientID, nil)
	requireReason(t, err, calendar.ReasonForbidden)

	_, err = env.appts.CancelAll(ctx, a, nil, nil)
	requireReason(t, err, calendar.ReasonForbidden)

	res, err := env.appts.CancelAll(ctx, a, &a.ClientID, nil)
	if err != nil {
		t.Fatalf("cancel all own: %v", err)
	}
	if res != (CancelAllResult{Cancelled: 2, Skipped: 1}) {
		t.Fatalf("own result = %+v, want 2 cancelled / 1 skipped", res)
	}

	res, err = env.appts.CancelAll(ctx, env.admin, nil, nil)
	if err != nil {
		t.Fatalf("cancel all admin: %v", err)
	}
	if res != (CancelAllResult{Cancelled: 2, Skipped: 0}) {
		t.Fatalf("admin result = %+v, want 2 cancelled / 0 skipped", res)
	}

	mustCount(t, "appointments", env.countAppointments(t), 1)
	mustCount(t, "cancellations", env.countCancellations(t), 4)
}

func TestCheckAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	existing := env.seed(t, a.ClientID, trainer, jan(15, 16, 0), 60)

	res, err := env.appts.CheckAvailability(ctx, b, CheckAvailabilityInput{TrainerID: trainer, Start: jan(15, 16, 0), ServiceID: "crossfit"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.OK || res.Reason != calendar.ReasonTrainerConflict {
		t.Fatalf("res = %+v, want TRAINER_CONFLICT", res)
	}

	res, err = env.appts.CheckAvailability(ctx, a, CheckAvailabilityInput{TrainerID: trainer, Start: jan(15, 16, 0), ExcludeID: &existing.ID})
	if err != nil {
		t.Fatalf("check excluding own: %v", err)
	}
	if !res.OK {
		t.Fatalf("own appointment must not block itself: %+v", res)
	}

	_, err = env.appts.CheckAvailability(ctx, b, CheckAvailabilityInput{ClientID: &a.ClientID, TrainerID: trainer, Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonForbidden)

	res, err = env.appts.CheckAvailability(ctx, env.admin, CheckAvailabilityInput{ClientID: &a.ClientID, TrainerID: trainer, Start: jan(15, 21, 0)})
	if err != nil {
		t.Fatalf("admin check: %v", err)
	}
	if res.Reason != calendar.ReasonOutOfHours {
		t.Fatalf("reason = %q, want OUT_OF_HOURS", res.Reason)
	}
}

func TestCheckAvailability_UnknownParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")

	// Несуществующий тренер не должен выглядеть свободным.
	_, err := env.appts.CheckAvailability(ctx, a, CheckAvailabilityInput{TrainerID: uuid.New(), Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonNotFound)

	ghost := uuid.New()
	_, err = env.appts.CheckAvailability(ctx, env.admin, CheckAvailabilityInput{ClientID: &ghost, TrainerID: trainer, Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonNotFound)

	_, err = env.appts.CheckAvailability(ctx, a, CheckAvailabilityInput{Start: jan(15, 16, 0)})
	requireReason(t, err, calendar.ReasonValidation)
}

func TestListFreeSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 8, 20)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	env.seed(t, a.ClientID, trainer, jan(15, 16, 0), 60)
	env.seed(t, b.ClientID, trainer, jan(15, 10, 0), 60)

	slots, err := env.appts.ListFreeSlots(ctx, b, trainer, jan(15, 0, 0), "crossfit")
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if len(slots) != 13 { // 08:00 … 20:00 включительно
		t.Fatalf("slots = %d, want 13", len(slots))
	}

	byHour := map[int]FreeSlot{}
	for _, s := range slots {
		byHour[s.Start.Hour()] = s
	}
	if !byHour[8].Available || !byHour[8].End.Equal(jan(15, 8, 45)) {
		t.Fatalf("08:00 slot = %+v", byHour[8])
	}
	if !byHour[15].Available {
		t.Fatalf("15:00 must be free: %+v", byHour[15])
	}
	if byHour[16].Available || byHour[16].Reason != calendar.ReasonTrainerConflict {
		t.Fatalf("16:00 slot = %+v, want TRAINER_CONFLICT", byHour[16])
	}
	if byHour[10].Reason != calendar.ReasonTrainerConflict {
		t.Fatalf("10:00 slot = %+v, want TRAINER_CONFLICT", byHour[10])
	}
	if !byHour[20].Available {
		t.Fatalf("20:00 must be free: %+v", byHour[20])
	}

	// Сегодня всё ближе 24 часов.
	today, err := env.appts.ListFreeSlots(ctx, b, trainer, jan(14, 0, 0), "")
	if err != nil {
		t.Fatalf("list today: %v", err)
	}
	for _, s := range today {
		if s.Available || s.Reason != calendar.ReasonLocked {
			t.Fatalf("slot %s = %+v, want LOCKED", s.Start, s)
		}
	}

	_, err = env.appts.ListFreeSlots(ctx, b, uuid.New(), jan(15, 0, 0), "")
	requireReason(t, err, calendar.ReasonNotFound)
}

func TestListAppointments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	trainer := env.trainer(t, "Marko", 0, 23)
	a := env.caller(t, "a@gym.test")
	b := env.caller(t, "b@gym.test")

	env.seed(t, a.ClientID, trainer, testNow.Add(10*time.Hour), 60)
	env.seed(t, a.ClientID, trainer, jan(16, 10, 0), 60)
	env.seed(t, a.ClientID, trainer, jan(17, 10, 0), 60)
	env.seed(t, b.ClientID, trainer, jan(18, 10, 0), 60)

	page, err := env.appts.ListMyAppointments(ctx, a, 1, 2)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || !page.HasNext {
		t.Fatalf("page = total %d, items %d, has_next %v", page.Total, len(page.Items), page.HasNext)
	}
	if !page.Items[0].ScheduledAt.Equal(jan(17, 10, 0)) {
		t.Fatalf("first item = %s, want newest", page.Items[0].ScheduledAt)
	}
	if page.Items[0].TrainerName != "Marko Coach" {
		t.Fatalf("trainer_name = %q", page.Items[0].TrainerName)
	}

	last, err := env.appts.ListMyAppointments(ctx, a, 2, 2)
	if err != nil {
		t.Fatalf("list mine page 2: %v", err)
	}
	if len(last.Items) != 1 || !last.Items[0].Locked {
		t.Fatalf("page 2 = %+v, want one locked item", last.Items)
	}

	_, err = env.appts.ListAllAppointments(ctx, a, 1, 10)
	requireReason(t, err, calendar.ReasonForbidden)

	all, err := env.appts.ListAllAppointments(ctx, env.admin, 1, 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 4 || all.Items[0].ClientEmail == "" {
		t.Fatalf("all = total %d, first email %q", all.Total, all.Items[0].ClientEmail)
	}

	_, err = env.appts.ListCancellations(ctx, a, 1, 10)
	requireReason(t, err, calendar.ReasonForbidden)

	if _, err := env.appts.CancelAll(ctx, env.admin, &b.ClientID, nil); err != nil {
		t.Fatalf("cancel all b: %v", err)
	}
	log, err := env.appts.ListCancellations(ctx, env.admin, 1, 10)
	if err != nil {
		t.Fatalf("list cancellations: %v", err)
	}
	if len(log.Items) != 1 || log.Items[0].ClientID != b.ClientID {
		t.Fatalf("cancellations = %+v, want one for b", log.Items)
	}
}
