package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
	// Create: занятый email — ErrConstraintViolation.
	Create(ctx context.Context, c *model.Client) error
	// PromoteAdmin выдаёт права администратора и заменяет хэш пароля.
	PromoteAdmin(ctx context.Context, id uuid.UUID, passwordHash string) error
	// FindAccount реализует calendar.AccountStore.
	FindAccount(ctx context.Context, id uuid.UUID) (*calendar.Account, error)
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// NormalizeEmail: без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *GormClientRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *GormClientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	n := NormalizeEmail(email)
	if n == "" {
		return nil, ErrNotFound
	}
	var c model.Client
	if err := r.db.WithContext(ctx).Where("email = ?", n).First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *GormClientRepository) Create(ctx context.Context, c *model.Client) error {
	c.Email = NormalizeEmail(c.Email)
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *GormClientRepository) PromoteAdmin(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_admin": true, "password_hash": passwordHash})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormClientRepository) FindAccount(ctx context.Context, id uuid.UUID) (*calendar.Account, error) {
	c, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &calendar.Account{ID: c.ID, IsAdmin: c.IsAdmin}, nil
}
