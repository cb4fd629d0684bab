package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/trainer-booking/internal/model"
)

type CancellationRepository interface {
	// Повторная отмена той же записи — ErrConstraintViolation.
	Create(ctx context.Context, c *model.Cancellation) error
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*model.Cancellation, error)
	ListPaged(ctx context.Context, limit, offset int) ([]model.Cancellation, int64, error)
}

type GormCancellationRepository struct {
	db *gorm.DB
}

func NewGormCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

func (r *GormCancellationRepository) Create(ctx context.Context, c *model.Cancellation) error {
	c.ScheduledAt = c.ScheduledAt.UTC()
	c.CancelledAt = c.CancelledAt.UTC()
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *GormCancellationRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*model.Cancellation, error) {
	var c model.Cancellation
	if err := r.db.WithContext(ctx).First(&c, "appointment_id = ?", appointmentID).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *GormCancellationRepository) ListPaged(ctx context.Context, limit, offset int) ([]model.Cancellation, int64, error) {
	var (
		out   []model.Cancellation
		total int64
	)

	q := r.db.WithContext(ctx).Model(&model.Cancellation{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("cancelled_at DESC").Find(&out).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return out, total, nil
}
