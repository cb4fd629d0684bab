package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// clients — учётные записи, от имени которых создаются записи.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"type:varchar(255);not null"`
	Surname string `gorm:"type:varchar(255);not null"`
	Email   string `gorm:"type:varchar(320);not null;uniqueIndex"`

	// bcrypt-хэш; сам пароль нигде не хранится.
	PasswordHash string `gorm:"type:varchar(255);not null"`

	IsAdmin bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FullName — имя для отображения.
func (c *Client) FullName() string {
	return joinName(c.Name, c.Surname)
}

func joinName(name, surname string) string {
	if surname == "" {
		return name
	}
	if name == "" {
		return surname
	}
	return name + " " + surname
}
