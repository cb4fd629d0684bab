package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cancellations — неизменяемый журнал отмен со снимком записи.
type Cancellation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Ссылка на удалённую запись; одна отмена на запись.
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;index"`

	ScheduledAt     time.Time `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	ServiceName     *string   `gorm:"type:varchar(255)"`

	CancelledAt time.Time `gorm:"not null;index"`
	// "user" или "admin"
	CancelledBy string  `gorm:"type:varchar(16);not null;index"`
	Reason      *string `gorm:"type:text"`
}

func (c *Cancellation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewCancellation снимает копию записи перед удалением.
func NewCancellation(a *Appointment, actor string, reason *string, at time.Time) *Cancellation {
	return &Cancellation{
		AppointmentID:   a.ID,
		ClientID:        a.ClientID,
		TrainerID:       a.TrainerID,
		ScheduledAt:     a.ScheduledAt,
		DurationMinutes: a.DurationMinutes,
		ServiceName:     a.ServiceName,
		CancelledAt:     at,
		CancelledBy:     actor,
		Reason:          reason,
	}
}
