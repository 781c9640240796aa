package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"orama.backend/internal/domain/entities"
)

// OTPRepository defines persistence for issued passcodes.
//
// Expiry is evaluated lazily: callers pass the current instant and the store
// compares it against expires_at. Nothing sweeps expired rows.
type OTPRepository interface {
	Create(ctx context.Context, record *entities.OTPRecord) error
	// CountActive counts unused, unexpired records for the address and purpose.
	CountActive(ctx context.Context, email, purpose string, now time.Time) (int64, error)
	// FindActive returns the latest (created_at desc) unused, unexpired record
	// matching the address and code, or ErrNotFound.
	FindActive(ctx context.Context, email, code string, now time.Time) (*entities.OTPRecord, error)
	// FindByEmailAndCode returns a record matching the address and code in any
	// state. Used to distinguish an expired code from one never issued.
	FindByEmailAndCode(ctx context.Context, email, code string) (*entities.OTPRecord, error)
	// MarkUsed flips is_used and stamps used_at, conditional on the record
	// still being unused, so a code can never verify two requests.
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	// Delete removes a record. Only the delivery-failure compensation path
	// calls this; consumed records stay behind as an audit trail.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEmail(ctx context.Context, email string) ([]*entities.OTPRecord, error)
}
