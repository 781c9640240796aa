package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

// User represents a user account
type User struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	PasswordHash       string     `json:"-"`
	Role               UserRole   `json:"role"`
	Phone              string     `json:"phone,omitempty"`
	ImageURL           string     `json:"imageUrl,omitempty"`
	Address            string     `json:"address,omitempty"`
	Pincode            string     `json:"pincode,omitempty"`
	DateOfBirth        string     `json:"dateOfBirth,omitempty"`
	Gender             string     `json:"gender,omitempty"`
	LanguagePreference string     `json:"languagePreference,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	SocialHandle       string     `json:"socialHandle,omitempty"`
	IsActive           bool       `json:"isActive"`
	IsEmailVerified    bool       `json:"isEmailVerified"`
	EmailVerifiedAt    null.Time  `json:"emailVerifiedAt,omitempty"`
	LastLogin          null.Time  `json:"lastLogin,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	DeletedAt          *time.Time `json:"-"`
}

// CreateUserInput represents input for registering a user
type CreateUserInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileInput carries a partial profile update. Empty fields are left unchanged.
type UpdateProfileInput struct {
	Name               string `json:"name"`
	ImageURL           string `json:"imageUrl"`
	Address            string `json:"address"`
	Pincode            string `json:"pincode"`
	DateOfBirth        string `json:"dateOfBirth"`
	Gender             string `json:"gender"`
	LanguagePreference string `json:"languagePreference"`
	Bio                string `json:"bio"`
	SocialHandle       string `json:"socialHandle"`
}
