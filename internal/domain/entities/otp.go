package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PurposeEmailVerification tags codes issued by the email verification flow.
// Other flows sharing the otps table use their own purpose tag.
const PurposeEmailVerification = "EmailVerification"

// Error kinds carried inside OTP result payloads. Domain-expected outcomes
// are always returned this way, never as Go errors.
const (
	OTPErrorInvalidEmail   = "INVALID_EMAIL"
	OTPErrorInvalidOTP     = "INVALID_OTP"
	OTPErrorUserNotFound   = "USER_NOT_FOUND"
	OTPErrorExpired        = "OTP_EXPIRED"
	OTPErrorMismatch       = "OTP_MISMATCH"
	OTPErrorTooManyActive  = "TOO_MANY_ACTIVE_OTPS"
)

// OTPRecord is one issued passcode bound to an email address.
//
// A record is active iff it is unused and unexpired. The only mutation a
// record ever sees is the one-way IsUsed transition; used records are kept
// as an audit trail. A record is deleted only when its delivery attempt
// failed (compensating rollback).
type OTPRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"otp"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsUsed    bool      `json:"isUsed"`
	UsedAt    null.Time `json:"usedAt,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
}

// Active reports whether the record is unused and unexpired at the given instant.
func (r *OTPRecord) Active(now time.Time) bool {
	return !r.IsUsed && now.Before(r.ExpiresAt)
}

// SendOTPResult is the structured outcome of a SendOTP call.
type SendOTPResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	ErrorType string `json:"errorType,omitempty"`
}

// VerifyOTPResult is the structured outcome of a VerifyOTP call.
type VerifyOTPResult struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Email      string     `json:"email,omitempty"`
	ErrorType  string     `json:"errorType,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	ExpiryTime *time.Time `json:"expiryTime,omitempty"`
}

// OTPDetail describes one active record in the diagnostics payload.
type OTPDetail struct {
	ID            uuid.UUID     `json:"id"`
	Code          string        `json:"otp"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	TimeRemaining time.Duration `json:"timeRemaining"`
}

// OTPDiagnostics partitions all records for an address into disjoint
// active / expired / used buckets: used records count as used regardless of
// expiry, unused-but-expired records count as expired, and only
// unused-and-unexpired records count as active.
type OTPDiagnostics struct {
	Email         string      `json:"email"`
	TotalCount    int         `json:"totalOtps"`
	ActiveCount   int         `json:"activeOtps"`
	ExpiredCount  int         `json:"expiredOtps"`
	UsedCount     int         `json:"usedOtps"`
	CurrentTime   time.Time   `json:"currentTime"`
	ActiveDetails []OTPDetail `json:"activeOtpDetails"`
}
