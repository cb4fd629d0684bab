package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
)

// TrainerCount — число записей тренера.
type TrainerCount struct {
	TrainerID uuid.UUID
	Name      string
	Surname   string
	Total     int64
}

// Rollups — сырые агрегаты по записям и журналу отмен.
type Rollups struct {
	TotalAppointments   int64
	TotalCancellations  int64
	RecentCancellations int64

	ByService []calendar.CountBucket
	ByTrainer []TrainerCount
	// Старты всех записей; разбивка по часам считается в поясе бизнеса.
	Starts []time.Time

	ByActor  []calendar.CountBucket
	ByReason []calendar.CountBucket
}

type StatisticsRepository interface {
	// since — граница для RecentCancellations.
	GetRollups(ctx context.Context, since time.Time) (*Rollups, error)
}

type GormStatisticsRepository struct {
	db *gorm.DB
}

func NewGormStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

type bucketRow struct {
	BucketKey string
	Total     int64
}

func (r *GormStatisticsRepository) GetRollups(ctx context.Context, since time.Time) (*Rollups, error) {
	db := r.db.WithContext(ctx)
	out := &Rollups{}

	if err := db.Model(&model.Appointment{}).Count(&out.TotalAppointments).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&model.Cancellation{}).Count(&out.TotalCancellations).Error; err != nil {
		return nil, translateError(err)
	}
	err := db.Model(&model.Cancellation{}).
		Where("cancelled_at >= ?", since.UTC()).
		Count(&out.RecentCancellations).Error
	if err != nil {
		return nil, translateError(err)
	}

	if out.ByService, err = r.buckets(db, &model.Appointment{}, "COALESCE(service_name, '')"); err != nil {
		return nil, err
	}
	if out.ByActor, err = r.buckets(db, &model.Cancellation{}, "cancelled_by"); err != nil {
		return nil, err
	}
	if out.ByReason, err = r.buckets(db, &model.Cancellation{}, "COALESCE(reason, '')"); err != nil {
		return nil, err
	}

	err = db.Model(&model.Appointment{}).
		Select("appointments.trainer_id, trainers.name, trainers.surname, COUNT(*) AS total").
		Joins("JOIN trainers ON trainers.id = appointments.trainer_id").
		Group("appointments.trainer_id, trainers.name, trainers.surname").
		Order("total DESC").
		Scan(&out.ByTrainer).Error
	if err != nil {
		return nil, translateError(err)
	}

	if err := db.Model(&model.Appointment{}).Pluck("scheduled_at", &out.Starts).Error; err != nil {
		return nil, translateError(err)
	}

	return out, nil
}

// buckets: SELECT expr, COUNT(*) ... GROUP BY expr.
func (r *GormStatisticsRepository) buckets(db *gorm.DB, table any, expr string) ([]calendar.CountBucket, error) {
	var rows []bucketRow
	err := db.Model(table).
		Select(expr + " AS bucket_key, COUNT(*) AS total").
		Group(expr).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	out := make([]calendar.CountBucket, len(rows))
	for i, row := range rows {
		out[i] = calendar.CountBucket{Key: row.BucketKey, Count: row.Total}
	}
	calendar.SortBuckets(out)
	return out, nil
}
