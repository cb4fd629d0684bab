package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

type RegisterClientInput struct {
	Name     string `validate:"required,max=255"`
	Surname  string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=320"`
	Password string `validate:"required,min=6,max=72"`
	IsAdmin  bool
}

type CreateTrainerInput struct {
	Name            string `validate:"required,max=255"`
	Surname         string `validate:"required,max=255"`
	Sex             *string
	Age             *int
	YearsExperience int
	ProfilePic      *string
	Type            string
	ClientID        *uuid.UUID
}

// IdentityService — регистрация клиентов и справочник тренеров.
// Проверка пароля и выдача токенов сюда не входят.
type IdentityService struct {
	store    *repository.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func NewIdentityService(store *repository.Store, log zerolog.Logger) *IdentityService {
	return &IdentityService{
		store:    store,
		validate: validator.New(),
		log:      log.With().Str("component", "identity").Logger(),
	}
}

// RegisterClient создаёт клиента с bcrypt-хэшем пароля. Email нормализуется.
func (s *IdentityService) RegisterClient(ctx context.Context, in RegisterClientInput) (*model.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = repository.NormalizeEmail(in.Email)

	if err := s.validate.Struct(in); err != nil {
		return nil, calendar.Validationf("invalid registration: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c := &model.Client{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsAdmin:      in.IsAdmin,
	}
	if err := s.store.Clients.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, calendar.Validationf("email %s is already registered", in.Email)
		}
		return nil, storeError("create client", err)
	}

	s.log.Info().Str("client_id", c.ID.String()).Bool("is_admin", c.IsAdmin).Msg("client registered")
	return c, nil
}

// CreateTrainer — только администратор.
func (s *IdentityService) CreateTrainer(ctx context.Context, caller calendar.Caller, in CreateTrainerInput) (*model.Trainer, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	if err := s.validate.Struct(in); err != nil {
		return nil, calendar.Validationf("invalid trainer: %v", err)
	}
	if in.YearsExperience < 0 {
		return nil, calendar.Validationf("years_experience must not be negative")
	}
	if in.Age != nil && *in.Age <= 0 {
		return nil, calendar.Validationf("age must be positive")
	}
	if in.ClientID != nil {
		if _, err := s.store.Clients.GetByID(ctx, *in.ClientID); err != nil {
			return nil, storeError("get client", err)
		}
	}

	t := &model.Trainer{
		Name:            in.Name,
		Surname:         in.Surname,
		Sex:             in.Sex,
		Age:             in.Age,
		YearsExperience: in.YearsExperience,
		ProfilePic:      in.ProfilePic,
		Type:            strings.TrimSpace(in.Type),
		ClientID:        in.ClientID,
	}
	if err := s.store.Trainers.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, calendar.Validationf("client account is already linked to a trainer")
		}
		return nil, storeError("create trainer", err)
	}

	s.log.Info().Str("trainer_id", t.ID.String()).Str("type", t.Type).Msg("trainer created")
	return t, nil
}

func (s *IdentityService) ListTrainers(ctx context.Context) ([]model.Trainer, error) {
	out, err := s.store.Trainers.List(ctx)
	if err != nil {
		return nil, storeError("list trainers", err)
	}
	return out, nil
}

func (s *IdentityService) GetTrainer(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	t, err := s.store.Trainers.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get trainer", err)
	}
	return t, nil
}

// EnsureAdmin вызывается на каждом старте: создаёт администратора или
// заново выдаёт права существующему клиенту с этим email и ставит пароль из конфига.
func (s *IdentityService) EnsureAdmin(ctx context.Context, email, password string) (*model.Client, error) {
	existing, err := s.store.Clients.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.RegisterClient(ctx, RegisterClientInput{
			Name:     "Admin",
			Surname:  "Admin",
			Email:    email,
			Password: password,
			IsAdmin:  true,
		})
	case err != nil:
		return nil, storeError("get client", err)
	}

	if err := s.validate.Var(password, "required,min=6,max=72"); err != nil {
		return nil, calendar.Validationf("invalid admin password: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Clients.PromoteAdmin(ctx, existing.ID, string(hash)); err != nil {
		return nil, storeError("promote admin", err)
	}

	existing.IsAdmin = true
	existing.PasswordHash = string(hash)
	s.log.Info().Str("client_id", existing.ID.String()).Msg("admin account refreshed")
	return existing, nil
}
