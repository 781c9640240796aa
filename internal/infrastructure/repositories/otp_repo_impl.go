package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/infrastructure/models"
)

// OTPRepository implements passcode persistence on GORM
type OTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create persists a freshly issued record
func (r *OTPRepository) Create(ctx context.Context, record *entities.OTPRecord) error {
	m := &models.OTP{
		ID:        record.ID,
		Email:     record.Email,
		Code:      record.Code,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
		IsUsed:    record.IsUsed,
		UsedAt:    record.UsedAt.Ptr(),
		Purpose:   record.Purpose,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	record.ID = m.ID
	return nil
}

// CountActive counts unused, unexpired records for an address and purpose
func (r *OTPRepository) CountActive(ctx context.Context, email, purpose string, now time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.OTP{}).
		Where("email = ? AND purpose = ? AND is_used = ? AND expires_at > ?", email, purpose, false, now).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindActive returns the latest unused, unexpired record matching email and code
func (r *OTPRepository) FindActive(ctx context.Context, email, code string, now time.Time) (*entities.OTPRecord, error) {
	var m models.OTP
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ? AND code = ? AND is_used = ? AND expires_at > ?", email, code, false, now).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return otpToEntity(&m), nil
}

// FindByEmailAndCode returns a matching record regardless of use or expiry state
func (r *OTPRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*entities.OTPRecord, error) {
	var m models.OTP
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ? AND code = ?", email, code).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return otpToEntity(&m), nil
}

// MarkUsed performs the one-way is_used transition. The WHERE clause keeps the
// update conditional on the prior value so racing verifications cannot both win.
func (r *OTPRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.OTP{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a record (delivery-failure compensation)
func (r *OTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.OTP{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByEmail returns every record for an address, newest first
func (r *OTPRepository) ListByEmail(ctx context.Context, email string) ([]*entities.OTPRecord, error) {
	var otpModels []models.OTP
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&otpModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entities.OTPRecord, 0, len(otpModels))
	for i := range otpModels {
		records = append(records, otpToEntity(&otpModels[i]))
	}
	return records, nil
}

func otpToEntity(m *models.OTP) *entities.OTPRecord {
	return &entities.OTPRecord{
		ID:        m.ID,
		Email:     m.Email,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
		UsedAt:    null.TimeFromPtr(m.UsedAt),
		Purpose:   m.Purpose,
	}
}
