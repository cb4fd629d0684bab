package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const TrainerTypePersonal = "personal"

// trainers
type Trainer struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"type:varchar(255);not null"`
	Surname string `gorm:"type:varchar(255);not null"`

	// Демографические поля необязательны.
	Sex *string `gorm:"type:varchar(8)"`
	Age *int

	YearsExperience int     `gorm:"not null;default:0"`
	ProfilePic      *string `gorm:"type:text"`

	// Категория: "personal", "group" и т.п.
	Type string `gorm:"type:varchar(32);not null;default:'personal';index"`

	// Необязательная привязка к учётной записи клиента (вход самого тренера).
	ClientID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (t *Trainer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Type == "" {
		t.Type = TrainerTypePersonal
	}
	return nil
}

func (t *Trainer) FullName() string {
	return joinName(t.Name, t.Surname)
}
