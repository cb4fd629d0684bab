package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
)

type AppointmentRepository interface {
	// Создать запись. Занятый слот — ErrConstraintViolation.
	Create(ctx context.Context, a *model.Appointment) error
	// Получить запись по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// Получить запись с блокировкой строки до конца транзакции.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// Обновить тренера, время, длительность и услугу на месте.
	Update(ctx context.Context, a *model.Appointment) error
	// Удалить запись. Уже удалённая — ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// Записи тренера / клиента; window == nil — все записи.
	ListForTrainer(ctx context.Context, trainerID uuid.UUID, window *calendar.TimeRange) ([]model.Appointment, error)
	ListForClient(ctx context.Context, clientID uuid.UUID, window *calendar.TimeRange) ([]model.Appointment, error)
	// Страница записей клиента, свежие сверху, с данными тренера.
	ListByClientPaged(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]model.Appointment, int64, error)
	// Страница всех записей с данными клиента и тренера.
	ListAllPaged(ctx context.Context, limit, offset int) ([]model.Appointment, int64, error)
	// Будущие записи клиента (clientID == nil — всех клиентов).
	ListUpcoming(ctx context.Context, clientID *uuid.UUID, after time.Time) ([]model.Appointment, error)
}

// Реализация на GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	a.ScheduledAt = a.ScheduledAt.UTC()
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).Preload("Trainer").First(&a, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *GormAppointmentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *GormAppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"trainer_id":       a.TrainerID,
			"scheduled_at":     a.ScheduledAt.UTC(),
			"duration_minutes": a.DurationMinutes,
			"service_name":     a.ServiceName,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) ListForTrainer(
	ctx context.Context,
	trainerID uuid.UUID,
	window *calendar.TimeRange,
) ([]model.Appointment, error) {
	return r.listBy(ctx, "trainer_id = ?", trainerID, window)
}

func (r *GormAppointmentRepository) ListForClient(
	ctx context.Context,
	clientID uuid.UUID,
	window *calendar.TimeRange,
) ([]model.Appointment, error) {
	return r.listBy(ctx, "client_id = ?", clientID, window)
}

func (r *GormAppointmentRepository) listBy(
	ctx context.Context,
	cond string,
	id uuid.UUID,
	window *calendar.TimeRange,
) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{}).Where(cond, id)
	if window != nil {
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", window.Start.UTC(), window.End.UTC())
	}

	var out []model.Appointment
	if err := q.Order("scheduled_at ASC").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *GormAppointmentRepository) ListByClientPaged(
	ctx context.Context,
	clientID uuid.UUID,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{}).Where("client_id = ?", clientID)
	return r.page(q, limit, offset, "Trainer")
}

func (r *GormAppointmentRepository) ListAllPaged(ctx context.Context, limit, offset int) ([]model.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{})
	return r.page(q, limit, offset, "Trainer", "Client")
}

func (r *GormAppointmentRepository) page(q *gorm.DB, limit, offset int, preload ...string) ([]model.Appointment, int64, error) {
	var (
		out   []model.Appointment
		total int64
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	for _, p := range preload {
		q = q.Preload(p)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("scheduled_at DESC").Find(&out).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return out, total, nil
}

func (r *GormAppointmentRepository) ListUpcoming(
	ctx context.Context,
	clientID *uuid.UUID,
	after time.Time,
) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{}).Where("scheduled_at > ?", after.UTC())
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}

	var out []model.Appointment
	if err := q.Order("scheduled_at ASC").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
