package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP rows are insert-mostly: the single lifecycle update is the is_used
// transition, and deletes happen only when delivery of a fresh code failed.
type OTP struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string     `gorm:"type:varchar(255);not null;index"`
	Code      string     `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	IsUsed    bool       `gorm:"not null;default:false"`
	UsedAt    *time.Time `gorm:"type:timestamp"`
	Purpose   string     `gorm:"type:varchar(50)"`
}

// TableName pins the table to the name used by the migrations.
func (OTP) TableName() string {
	return "otps"
}
