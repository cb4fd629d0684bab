package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
)

// WorkHoursRepository хранит три уровня рабочих часов.
// Get* возвращают (nil, nil), если записи нет.
type WorkHoursRepository interface {
	GetGlobal(ctx context.Context) (*model.WorkHours, error)
	SetGlobal(ctx context.Context, open, close int) (*model.WorkHours, error)

	GetTrainer(ctx context.Context, trainerID uuid.UUID) (*model.TrainerWorkHours, error)
	SetTrainer(ctx context.Context, trainerID uuid.UUID, open, close int) (*model.TrainerWorkHours, error)

	// Переопределение, содержащее date; при нескольких — самое свежее.
	GetOverride(ctx context.Context, trainerID uuid.UUID, date time.Time) (*model.TrainerWorkHourOverride, error)
	SetOverride(ctx context.Context, trainerID uuid.UUID, startDate, endDate time.Time, open, close int) (*model.TrainerWorkHourOverride, error)
	ListOverrides(ctx context.Context, trainerID uuid.UUID) ([]model.TrainerWorkHourOverride, error)
}

type GormWorkHoursRepository struct {
	db *gorm.DB
}

func NewGormWorkHoursRepository(db *gorm.DB) *GormWorkHoursRepository {
	return &GormWorkHoursRepository{db: db}
}

func (r *GormWorkHoursRepository) GetGlobal(ctx context.Context) (*model.WorkHours, error) {
	var h model.WorkHours
	err := r.db.WithContext(ctx).First(&h, "id = ?", model.GlobalWorkHoursID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &h, nil
}

func (r *GormWorkHoursRepository) SetGlobal(ctx context.Context, open, close int) (*model.WorkHours, error) {
	if err := (calendar.Hours{Open: open, Close: close}).Validate(); err != nil {
		return nil, err
	}

	row := model.WorkHours{ID: model.GlobalWorkHoursID, OpenHour: open, CloseHour: close}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_hour", "close_hour", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetGlobal(ctx)
}

func (r *GormWorkHoursRepository) GetTrainer(ctx context.Context, trainerID uuid.UUID) (*model.TrainerWorkHours, error) {
	var h model.TrainerWorkHours
	err := r.db.WithContext(ctx).First(&h, "trainer_id = ?", trainerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &h, nil
}

func (r *GormWorkHoursRepository) SetTrainer(ctx context.Context, trainerID uuid.UUID, open, close int) (*model.TrainerWorkHours, error) {
	if err := (calendar.Hours{Open: open, Close: close}).Validate(); err != nil {
		return nil, err
	}

	row := model.TrainerWorkHours{TrainerID: trainerID, OpenHour: open, CloseHour: close}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trainer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_hour", "close_hour", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetTrainer(ctx, trainerID)
}

func (r *GormWorkHoursRepository) GetOverride(ctx context.Context, trainerID uuid.UUID, date time.Time) (*model.TrainerWorkHourOverride, error) {
	overrides, err := r.ListOverrides(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	ranges := make([]calendar.DateRangeHours, len(overrides))
	for i, o := range overrides {
		ranges[i] = OverrideRange(o)
	}
	best, ok := calendar.SelectOverride(ranges, date)
	if !ok {
		return nil, nil
	}
	for i := range overrides {
		if OverrideRange(overrides[i]) == best {
			return &overrides[i], nil
		}
	}
	return nil, nil
}

func (r *GormWorkHoursRepository) SetOverride(
	ctx context.Context,
	trainerID uuid.UUID,
	startDate, endDate time.Time,
	open, close int,
) (*model.TrainerWorkHourOverride, error) {
	rng := calendar.DateRangeHours{
		StartDate: startDate,
		EndDate:   endDate,
		Hours:     calendar.Hours{Open: open, Close: close},
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	row := model.TrainerWorkHourOverride{
		TrainerID: trainerID,
		StartDate: model.CivilDate(startDate),
		EndDate:   model.CivilDate(endDate),
		OpenHour:  open,
		CloseHour: close,
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trainer_id"}, {Name: "start_date"}, {Name: "end_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_hour", "close_hour", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, translateError(err)
	}

	var saved model.TrainerWorkHourOverride
	err = r.db.WithContext(ctx).
		Where("trainer_id = ? AND start_date = ? AND end_date = ?", trainerID, row.StartDate, row.EndDate).
		First(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (r *GormWorkHoursRepository) ListOverrides(ctx context.Context, trainerID uuid.UUID) ([]model.TrainerWorkHourOverride, error) {
	var out []model.TrainerWorkHourOverride
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("start_date ASC").
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// OverrideRange переводит строку переопределения в доменный тип.
func OverrideRange(o model.TrainerWorkHourOverride) calendar.DateRangeHours {
	return calendar.DateRangeHours{
		StartDate: time.Time(o.StartDate),
		EndDate:   time.Time(o.EndDate),
		Hours:     calendar.Hours{Open: o.OpenHour, Close: o.CloseHour},
		UpdatedAt: o.UpdatedAt,
	}
}
