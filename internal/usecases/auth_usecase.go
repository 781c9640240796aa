package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/domain/repositories"
	"orama.backend/pkg/clock"
	"orama.backend/pkg/crypto"
	"orama.backend/pkg/jwt"
	"orama.backend/pkg/logger"
)

// AuthUsecase handles registration, login and token lifecycle for regular users.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	clock      clock.Clock
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, clk clock.Clock) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Register creates a new user account. New accounts start unverified; the
// verification flow flips the flag later.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.Conflict("User with this email already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	user := &entities.User{
		Email:        email,
		Name:         titleCase(input.Name),
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return user, nil
}

// Login authenticates a user and issues a token pair.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewAppError(401, domainerrors.CodeInvalidCredentials, "Invalid email or password", domainerrors.ErrInvalidCredentials)
		}
		return nil, domainerrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, domainerrors.NewAppError(403, domainerrors.CodeUserNotActive, "Account is deactivated", domainerrors.ErrUserNotActive)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.NewAppError(401, domainerrors.CodeInvalidCredentials, "Invalid email or password", domainerrors.ErrInvalidCredentials)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	// Login must not fail because the last-login stamp could not be written.
	now := u.clock.Now()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn(ctx, "failed to stamp last login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	} else {
		user.LastLogin.SetValid(now)
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.NewAppError(401, domainerrors.CodeUnauthorized, "Refresh token has expired", domainerrors.ErrTokenExpired)
		}
		return nil, domainerrors.Unauthorized("Invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("User no longer exists")
		}
		return nil, domainerrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, domainerrors.NewAppError(403, domainerrors.CodeUserNotActive, "Account is deactivated", domainerrors.ErrUserNotActive)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// GetUserByID loads the authenticated user's account.
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return domainerrors.InternalError(err)
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.NewAppError(401, domainerrors.CodeInvalidCredentials, "Current password is incorrect", domainerrors.ErrInvalidCredentials)
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	user.PasswordHash = hash

	if err := u.userRepo.Update(ctx, user); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}
