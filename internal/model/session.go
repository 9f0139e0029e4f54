package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side record of an issued bearer token. The token
// column stores the signed token itself, so a presented token must both
// verify offline and still have a live row here.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}
