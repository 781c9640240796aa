package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string     `gorm:"type:varchar(100);not null"`
	PasswordHash       string     `gorm:"type:varchar(255);not null"`
	Role               string     `gorm:"type:varchar(50);not null;default:'USER'"`
	Phone              string     `gorm:"type:varchar(15);index"`
	ImageURL           string     `gorm:"type:text"`
	Address            string     `gorm:"type:text"`
	Pincode            string     `gorm:"type:varchar(10)"`
	DateOfBirth        string     `gorm:"type:varchar(20)"`
	Gender             string     `gorm:"type:varchar(20)"`
	LanguagePreference string     `gorm:"type:varchar(50)"`
	Bio                string     `gorm:"type:text"`
	SocialHandle       string     `gorm:"type:varchar(100)"`
	IsActive           bool       `gorm:"not null;default:true"`
	IsEmailVerified    bool       `gorm:"not null;default:false"`
	EmailVerifiedAt    *time.Time `gorm:"type:timestamp"`
	LastLogin          *time.Time `gorm:"type:timestamp"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
