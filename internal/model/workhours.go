package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Единственная строка глобальных часов.
const GlobalWorkHoursID = 1

// work_hours — глобальное окно по умолчанию (singleton).
type WorkHours struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	OpenHour  int   `gorm:"not null"`
	CloseHour int   `gorm:"not null"`
	UpdatedAt time.Time
}

// trainer_work_hours — базовые часы тренера, не более одной строки на тренера.
type TrainerWorkHours struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OpenHour  int       `gorm:"not null"`
	CloseHour int       `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (h *TrainerWorkHours) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// trainer_work_hour_overrides — часы тренера на диапазон дат включительно.
type TrainerWorkHourOverride struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_override_range,priority:1"`

	// Чистые даты без времени — datatypes.Date
	StartDate datatypes.Date `gorm:"type:date;not null;uniqueIndex:ux_override_range,priority:2"`
	EndDate   datatypes.Date `gorm:"type:date;not null;uniqueIndex:ux_override_range,priority:3"`

	OpenHour  int `gorm:"not null"`
	CloseHour int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (o *TrainerWorkHourOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// CivilDate приводит момент к полуночи UTC той же календарной даты,
// чтобы даты сравнивались одинаково в любом драйвере.
func CivilDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
