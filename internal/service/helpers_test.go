package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/db"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

// Фиксированное "сейчас": 2026-01-14 02:00 UTC. Отсюда +30ч = 15-е 08:00, +40ч = 15-е 18:00.
var testNow = time.Date(2026, 1, 14, 2, 0, 0, 0, time.UTC)

func jan(day, hour, min int) time.Time {
	return time.Date(2026, 1, day, hour, min, 0, 0, time.UTC)
}

type testEnv struct {
	store    *repository.Store
	appts    *AppointmentService
	hours    *WorkHoursService
	stats    *StatisticsService
	identity *IdentityService
	rules    Rules
	admin    calendar.Caller
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := db.NewSQLiteDB(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return newEnvWithStore(t, repository.NewStore(gormDB))
}

func newEnvWithStore(t *testing.T, store *repository.Store) *testEnv {
	t.Helper()

	rules := DefaultRules()
	clock := func() time.Time { return testNow }
	env := &testEnv{
		store:    store,
		appts:    NewAppointmentService(store, rules, clock, zerolog.Nop()),
		hours:    NewWorkHoursService(store, rules, zerolog.Nop()),
		stats:    NewStatisticsService(store, rules, clock),
		identity: NewIdentityService(store, zerolog.Nop()),
		rules:    rules,
	}
	admin := env.client(t, "admin@gym.test", true)
	env.admin = calendar.NewCaller(admin.ID, true)
	return env
}

func (e *testEnv) client(t *testing.T, email string, isAdmin bool) *model.Client {
	t.Helper()
	c := &model.Client{Name: "Test", Surname: email, Email: email, PasswordHash: "x", IsAdmin: isAdmin}
	if err := e.store.Clients.Create(context.Background(), c); err != nil {
		t.Fatalf("seed client %s: %v", email, err)
	}
	return c
}

func (e *testEnv) caller(t *testing.T, email string) calendar.Caller {
	t.Helper()
	return calendar.NewCaller(e.client(t, email, false).ID, false)
}

// trainer создаёт тренера; open < 0 — без собственных часов.
func (e *testEnv) trainer(t *testing.T, name string, open, close int) uuid.UUID {
	t.Helper()
	tr := &model.Trainer{Name: name, Surname: "Coach"}
	if err := e.store.Trainers.Create(context.Background(), tr); err != nil {
		t.Fatalf("seed trainer %s: %v", name, err)
	}
	if open >= 0 {
		if _, err := e.hours.SetTrainerWorkHours(context.Background(), e.admin, tr.ID, open, close); err != nil {
			t.Fatalf("set hours for %s: %v", name, err)
		}
	}
	return tr.ID
}

// seed кладёт запись напрямую в хранилище, минуя проверки.
func (e *testEnv) seed(t *testing.T, clientID, trainerID uuid.UUID, start time.Time, minutes int) *model.Appointment {
	t.Helper()
	a := &model.Appointment{ClientID: clientID, TrainerID: trainerID, ScheduledAt: start, DurationMinutes: minutes}
	if err := e.store.Appointments.Create(context.Background(), a); err != nil {
		t.Fatalf("seed appointment at %s: %v", start, err)
	}
	return a
}

func (e *testEnv) countAppointments(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.store.DB().Model(&model.Appointment{}).Count(&n).Error; err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	return n
}

func (e *testEnv) countCancellations(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.store.DB().Model(&model.Cancellation{}).Count(&n).Error; err != nil {
		t.Fatalf("count cancellations: %v", err)
	}
	return n
}

func requireReason(t *testing.T, err error, want calendar.Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	if got := calendar.ReasonOf(err); got != want {
		t.Fatalf("reason = %q, want %q (error: %v)", got, want, err)
	}
}

func mustCount(t *testing.T, name string, got, want int64) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %d, want %d", name, got, want)
	}
}
