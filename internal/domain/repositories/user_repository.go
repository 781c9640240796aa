package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"orama.backend/internal/domain/entities"
)

// UserRepository defines user account data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// MarkEmailVerified flips the verification flag. The flag is monotonic:
	// it is never reset to false by this subsystem.
	MarkEmailVerified(ctx context.Context, email string, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
