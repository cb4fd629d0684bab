package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/trainer-booking/internal/model"
)

type TrainerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	// Блокирует строку тренера: брони одного тренера выполняются по очереди.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	Create(ctx context.Context, t *model.Trainer) error
	List(ctx context.Context) ([]model.Trainer, error)
}

type GormTrainerRepository struct {
	db *gorm.DB
}

func NewGormTrainerRepository(db *gorm.DB) *GormTrainerRepository {
	return &GormTrainerRepository{db: db}
}

func (r *GormTrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	var t model.Trainer
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

func (r *GormTrainerRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	var t model.Trainer
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

func (r *GormTrainerRepository) Create(ctx context.Context, t *model.Trainer) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error)
}

func (r *GormTrainerRepository) List(ctx context.Context) ([]model.Trainer, error) {
	var out []model.Trainer
	err := r.db.WithContext(ctx).
		Order("surname ASC").
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
