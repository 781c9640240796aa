package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/domain/repositories"
	"orama.backend/pkg/clock"
	"orama.backend/pkg/logger"
)

// OTPSender delivers a passcode to an address. One synchronous attempt per
// call; the usecase compensates when the attempt fails.
type OTPSender interface {
	SendOTP(ctx context.Context, toEmail, code string, expiresAt time.Time) error
}

// CodeGenerator produces passcodes.
type CodeGenerator interface {
	Generate() string
}

// VerificationUsecase orchestrates passcode issuance and verification.
//
// Domain-expected outcomes (unknown address, policy denial, expiry, mismatch,
// delivery failure) come back inside the result structs; a non-nil error
// always means an infrastructure fault.
type VerificationUsecase struct {
	userRepo  repositories.UserRepository
	otpRepo   repositories.OTPRepository
	uow       repositories.UnitOfWork
	sender    OTPSender
	clock     clock.Clock
	generator CodeGenerator
	ttl       time.Duration
	maxActive int64
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPRepository,
	uow repositories.UnitOfWork,
	sender OTPSender,
	clk clock.Clock,
	generator CodeGenerator,
	ttl time.Duration,
	maxActive int,
) *VerificationUsecase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxActive <= 0 {
		maxActive = 2
	}
	return &VerificationUsecase{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		uow:       uow,
		sender:    sender,
		clock:     clk,
		generator: generator,
		ttl:       ttl,
		maxActive: int64(maxActive),
	}
}

// SendOTP issues a fresh passcode for the address and delivers it.
//
// At most one new record survives a call: if delivery fails, the record
// persisted for it is deleted again so an undelivered code can never be
// considered active.
func (u *VerificationUsecase) SendOTP(ctx context.Context, email string) (*entities.SendOTPResult, error) {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.SendOTPResult{
				Success: false,
				Message: fmt.Sprintf("User with email '%s' not found.", email),
				Email:   email,
			}, nil
		}
		return nil, err
	}

	if user.IsEmailVerified {
		return &entities.SendOTPResult{
			Success: true,
			Message: "Email is already verified",
			Email:   email,
		}, nil
	}

	now := u.clock.Now()

	activeCount, err := u.otpRepo.CountActive(ctx, email, entities.PurposeEmailVerification, now)
	if err != nil {
		return nil, err
	}
	if activeCount >= u.maxActive {
		return &entities.SendOTPResult{
			Success:   false,
			Message:   fmt.Sprintf("You already have %d active OTPs. Please use one of the existing OTPs or wait for them to expire before requesting a new one.", u.maxActive),
			Email:     email,
			ErrorType: entities.OTPErrorTooManyActive,
		}, nil
	}

	record := &entities.OTPRecord{
		Email:     email,
		Code:      u.generator.Generate(),
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
		Purpose:   entities.PurposeEmailVerification,
	}
	if err := u.otpRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if sendErr := u.sender.SendOTP(ctx, email, record.Code, record.ExpiresAt); sendErr != nil {
		// Compensating rollback: the code was never delivered, so it must
		// not stay active in storage.
		if delErr := u.otpRepo.Delete(ctx, record.ID); delErr != nil {
			logger.Error(ctx, "failed to roll back undelivered OTP",
				zap.String("email", email),
				zap.Error(delErr),
			)
		}
		return &entities.SendOTPResult{
			Success: false,
			Message: fmt.Sprintf("Failed to send email: %v", sendErr),
			Email:   email,
		}, nil
	}

	return &entities.SendOTPResult{
		Success: true,
		Message: "OTP sent successfully",
		Email:   email,
	}, nil
}

// ResendOTP re-runs issuance for the address. The same policy limits apply.
func (u *VerificationUsecase) ResendOTP(ctx context.Context, email string) (*entities.SendOTPResult, error) {
	result, err := u.SendOTP(ctx, email)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		logger.Warn(ctx, "resend OTP did not issue a code",
			zap.String("email", result.Email),
			zap.String("reason", result.Message),
		)
	}
	return result, nil
}

// VerifyOTP validates a submitted passcode and finalizes the verification.
func (u *VerificationUsecase) VerifyOTP(ctx context.Context, email, code string) (*entities.VerifyOTPResult, error) {
	email = normalizeEmail(email)

	if email == "" {
		return &entities.VerifyOTPResult{
			Success:   false,
			Message:   "Email address is required.",
			ErrorType: entities.OTPErrorInvalidEmail,
		}, nil
	}
	if code == "" {
		return &entities.VerifyOTPResult{
			Success:   false,
			Message:   "OTP is required.",
			ErrorType: entities.OTPErrorInvalidOTP,
		}, nil
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.VerifyOTPResult{
				Success:   false,
				Message:   fmt.Sprintf("User with email '%s' not found.", email),
				ErrorType: entities.OTPErrorUserNotFound,
			}, nil
		}
		return nil, err
	}

	if user.IsEmailVerified {
		verifiedAt := user.UpdatedAt
		if user.EmailVerifiedAt.Valid {
			verifiedAt = user.EmailVerifiedAt.Time
		}
		return &entities.VerifyOTPResult{
			Success:    true,
			Message:    "Email is already verified.",
			Email:      email,
			VerifiedAt: &verifiedAt,
		}, nil
	}

	now := u.clock.Now()

	record, err := u.otpRepo.FindActive(ctx, email, code, now)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		return u.classifyMiss(ctx, email, code, now)
	}

	// Flip the record and the account flag together; a half-applied
	// verification must never be observable.
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.otpRepo.MarkUsed(txCtx, record.ID, now); err != nil {
			return err
		}
		return u.userRepo.MarkEmailVerified(txCtx, email, now)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Lost the race: another request consumed the code first.
			return &entities.VerifyOTPResult{
				Success:   false,
				Message:   "Invalid OTP. Please check the code and try again.",
				ErrorType: entities.OTPErrorMismatch,
			}, nil
		}
		return nil, err
	}

	return &entities.VerifyOTPResult{
		Success:    true,
		Message:    "Email verified successfully!",
		Email:      email,
		VerifiedAt: &now,
	}, nil
}

// classifyMiss distinguishes an expired code from one that was never issued.
// A correct-but-already-used code also reports as mismatch.
func (u *VerificationUsecase) classifyMiss(ctx context.Context, email, code string, now time.Time) (*entities.VerifyOTPResult, error) {
	record, err := u.otpRepo.FindByEmailAndCode(ctx, email, code)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if record != nil && !record.ExpiresAt.After(now) {
		expiry := record.ExpiresAt
		return &entities.VerifyOTPResult{
			Success:    false,
			Message:    fmt.Sprintf("OTP has expired at %s. Please request a new OTP.", expiry.Format("15:04:05")),
			ErrorType:  entities.OTPErrorExpired,
			ExpiryTime: &expiry,
		}, nil
	}

	return &entities.VerifyOTPResult{
		Success:   false,
		Message:   "Invalid OTP. Please check the code and try again.",
		ErrorType: entities.OTPErrorMismatch,
	}, nil
}

// Inspect partitions every record for the address for operational visibility.
func (u *VerificationUsecase) Inspect(ctx context.Context, email string) (*entities.OTPDiagnostics, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domainerrors.BadRequest("Email is required.")
	}

	records, err := u.otpRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	diag := &entities.OTPDiagnostics{
		Email:         email,
		TotalCount:    len(records),
		CurrentTime:   now,
		ActiveDetails: []entities.OTPDetail{},
	}

	for _, record := range records {
		switch {
		case record.IsUsed:
			diag.UsedCount++
		case !record.ExpiresAt.After(now):
			diag.ExpiredCount++
		default:
			diag.ActiveCount++
			diag.ActiveDetails = append(diag.ActiveDetails, entities.OTPDetail{
				ID:            record.ID,
				Code:          record.Code,
				CreatedAt:     record.CreatedAt,
				ExpiresAt:     record.ExpiresAt,
				TimeRemaining: record.ExpiresAt.Sub(now),
			})
		}
	}

	return diag, nil
}
