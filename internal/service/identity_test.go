package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leganyst/trainer-booking/internal/calendar"
)

func TestRegisterClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.identity.RegisterClient(ctx, RegisterClientInput{
		Name: " Ana ", Surname: "Petrović", Email: " Ana@Gym.Test ", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Name != "Ana" || c.Email != "ana@gym.test" {
		t.Fatalf("not normalized: name %q, email %q", c.Name, c.Email)
	}
	if c.IsAdmin {
		t.Fatalf("registration must not grant admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("password hash does not match: %v", err)
	}

	_, err = env.identity.RegisterClient(ctx, RegisterClientInput{
		Name: "Ana", Surname: "Dup", Email: "ana@gym.test", Password: "secret1",
	})
	requireReason(t, err, calendar.ReasonValidation)

	cases := []RegisterClientInput{
		{Name: "", Surname: "X", Email: "x@gym.test", Password: "secret1"},
		{Name: "X", Surname: "X", Email: "not-an-email", Password: "secret1"},
		{Name: "X", Surname: "X", Email: "y@gym.test", Password: "123"},
	}
	for _, in := range cases {
		_, err := env.identity.RegisterClient(ctx, in)
		requireReason(t, err, calendar.ReasonValidation)
	}
}

func TestCreateTrainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.caller(t, "a@gym.test")

	_, err := env.identity.CreateTrainer(ctx, a, CreateTrainerInput{Name: "Marko", Surname: "M"})
	requireReason(t, err, calendar.ReasonForbidden)

	age := 31
	tr, err := env.identity.CreateTrainer(ctx, env.admin, CreateTrainerInput{
		Name: "Marko", Surname: "M", Age: &age, YearsExperience: 5, ClientID: &a.ClientID,
	})
	if err != nil {
		t.Fatalf("create trainer: %v", err)
	}
	if tr.Type != "personal" {
		t.Fatalf("type = %q, want personal", tr.Type)
	}

	_, err = env.identity.CreateTrainer(ctx, env.admin, CreateTrainerInput{Name: "Ivan", Surname: "I", ClientID: &a.ClientID})
	requireReason(t, err, calendar.ReasonValidation)

	missing := uuid.New()
	_, err = env.identity.CreateTrainer(ctx, env.admin, CreateTrainerInput{Name: "Ivan", Surname: "I", ClientID: &missing})
	requireReason(t, err, calendar.ReasonNotFound)

	_, err = env.identity.CreateTrainer(ctx, env.admin, CreateTrainerInput{Name: "Ivan", Surname: "I", YearsExperience: -1})
	requireReason(t, err, calendar.ReasonValidation)

	list, err := env.identity.ListTrainers(ctx)
	if err != nil {
		t.Fatalf("list trainers: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("trainers = %d, want 1", len(list))
	}

	got, err := env.identity.GetTrainer(ctx, tr.ID)
	if err != nil {
		t.Fatalf("get trainer: %v", err)
	}
	if got.Name != "Marko" {
		t.Fatalf("name = %q, want Marko", got.Name)
	}
}

func TestEnsureAdmin_UpsertsOnEveryStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.identity.EnsureAdmin(ctx, "boss@gym.test", "verysecret")
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if !first.IsAdmin {
		t.Fatalf("admin flag not set")
	}

	// Второй старт с новым паролем: тот же клиент, пароль обновлён.
	second, err := env.identity.EnsureAdmin(ctx, "BOSS@gym.test", "other-password")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("id = %s, want %s", second.ID, first.ID)
	}
	stored, err := env.store.Clients.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("other-password")); err != nil {
		t.Fatalf("password was not rotated: %v", err)
	}
}

func TestEnsureAdmin_PromotesExistingClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.identity.RegisterClient(ctx, RegisterClientInput{
		Name: "Ana", Surname: "P", Email: "ana@gym.test", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	admin, err := env.identity.EnsureAdmin(ctx, "ana@gym.test", "adminpass")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if admin.ID != c.ID || !admin.IsAdmin {
		t.Fatalf("admin = %+v, want promoted %s", admin, c.ID)
	}

	stored, err := env.store.Clients.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("load client: %v", err)
	}
	if !stored.IsAdmin {
		t.Fatalf("is_admin not persisted")
	}
	caller, err := calendar.ValidateCaller(ctx, env.store.Clients, c.ID)
	if err != nil {
		t.Fatalf("validate caller: %v", err)
	}
	if !caller.IsAdmin() {
		t.Fatalf("caller role = %s, want admin", caller.Role)
	}

	_, err = env.identity.EnsureAdmin(ctx, "ana@gym.test", "123")
	requireReason(t, err, calendar.ReasonValidation)
}
