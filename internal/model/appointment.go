package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Имена уникальных индексов: последний рубеж против гонки "проверил — вставил".
const (
	IndexTrainerSlot = "ux_appointments_trainer_start"
	IndexClientSlot  = "ux_appointments_client_start"
)

// appointments — только подтверждённые записи; отменённые удаляются.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ClientID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_appointments_client_start,priority:1"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_appointments_trainer_start,priority:1"`

	// Всегда в UTC и ровно на начале часа.
	ScheduledAt time.Time `gorm:"not null;index;uniqueIndex:ux_appointments_trainer_start,priority:2;uniqueIndex:ux_appointments_client_start,priority:2"`

	DurationMinutes int `gorm:"not null;default:60"`

	// Снимок названия услуги на момент записи; nil — без услуги.
	ServiceName *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Client  *Client  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// EndsAt — конец полуоткрытого интервала записи.
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
