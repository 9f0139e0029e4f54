package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Icon      string    `gorm:"not null"`
	Color     string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:UserID"`
}
