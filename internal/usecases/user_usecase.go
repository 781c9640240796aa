package usecases

import (
	"context"
	"errors"
	"unicode"

	"github.com/google/uuid"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/domain/repositories"
)

// UserUsecase handles profile operations for the authenticated user.
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetProfile loads a profile by email.
func (u *UserUsecase) GetProfile(ctx context.Context, email string) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, domainerrors.NewAppError(403, domainerrors.CodeUserNotActive, "Account is deactivated", domainerrors.ErrUserNotActive)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update.
func (u *UserUsecase) UpdateProfile(ctx context.Context, email string, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(user, input)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// UpdatePhone sets a new phone number after validating format and uniqueness.
func (u *UserUsecase) UpdatePhone(ctx context.Context, email, phone string) (*entities.User, error) {
	if !validPhone(phone) {
		return nil, domainerrors.BadRequest("Phone number must be 10 to 15 digits")
	}

	user, err := u.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	existing, err := u.userRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}
	if existing != nil && existing.ID != user.ID {
		return nil, domainerrors.Conflict("Phone number is already in use")
	}

	user.Phone = phone
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// DeleteAccount removes the user's account.
func (u *UserUsecase) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

func validPhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
