package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/domain/repositories"
	"orama.backend/pkg/clock"
	"orama.backend/pkg/crypto"
	"orama.backend/pkg/jwt"
)

// AdminUsecase handles admin onboarding and account administration.
type AdminUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	clock      clock.Clock
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, clk clock.Clock) *AdminUsecase {
	return &AdminUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clk,
	}
}

// RegisterAdmin creates a new admin account.
func (u *AdminUsecase) RegisterAdmin(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
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

	admin := &entities.User{
		Email:        email,
		Name:         titleCase(input.Name),
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return admin, nil
}

// Login authenticates an admin. Non-admin accounts are rejected even with
// valid credentials.
func (u *AdminUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewAppError(401, domainerrors.CodeInvalidCredentials, "Invalid email or password", domainerrors.ErrInvalidCredentials)
		}
		return nil, domainerrors.InternalError(err)
	}

	if user.Role != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("Admin access required")
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

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, u.clock.Now()); err == nil {
		user.LastLogin.SetValid(u.clock.Now())
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// ListUsers returns all regular user accounts.
func (u *AdminUsecase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := u.userRepo.ListByRole(ctx, entities.UserRoleUser)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return users, nil
}

// ListAdmins returns all admin accounts.
func (u *AdminUsecase) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	admins, err := u.userRepo.ListByRole(ctx, entities.UserRoleAdmin)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return admins, nil
}

// GetUserByID looks up any account by id.
func (u *AdminUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// GetUserByEmail looks up any account by email.
func (u *AdminUsecase) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domainerrors.BadRequest("Email is required")
	}
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// GetUserByPhone looks up any account by phone number.
func (u *AdminUsecase) GetUserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	if phone == "" {
		return nil, domainerrors.BadRequest("Phone is required")
	}
	user, err := u.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// ToggleActive flips an account's active flag and returns the updated user.
func (u *AdminUsecase) ToggleActive(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	if err := u.userRepo.SetActive(ctx, id, !user.IsActive); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	user.IsActive = !user.IsActive
	return user, nil
}

// UpdateUserProfile applies a partial profile update to any account.
func (u *AdminUsecase) UpdateUserProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	applyProfileUpdate(user, input)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// DeleteUser removes any account.
func (u *AdminUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}
