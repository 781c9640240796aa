package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/interfaces/http/response"
)

// VerificationService is the slice of the verification usecase the handler needs.
type VerificationService interface {
	SendOTP(ctx context.Context, email string) (*entities.SendOTPResult, error)
	ResendOTP(ctx context.Context, email string) (*entities.SendOTPResult, error)
	VerifyOTP(ctx context.Context, email, code string) (*entities.VerifyOTPResult, error)
	Inspect(ctx context.Context, email string) (*entities.OTPDiagnostics, error)
}

// VerificationHandler handles OTP email-verification endpoints
type VerificationHandler struct {
	verificationService VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

type sendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// SendOTP issues and delivers a verification code
// POST /api/v1/auth/send-otp
func (h *VerificationHandler) SendOTP(c *gin.Context) {
	var input sendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.verificationService.SendOTP(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, sendStatus(result), result)
}

// ResendOTP re-issues a verification code
// POST /api/v1/auth/resend-otp
func (h *VerificationHandler) ResendOTP(c *gin.Context) {
	var input sendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.verificationService.ResendOTP(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, sendStatus(result), result)
}

// VerifyOTP validates a submitted code and finalizes the verification
// POST /api/v1/auth/verify-otp
func (h *VerificationHandler) VerifyOTP(c *gin.Context) {
	var input verifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.verificationService.VerifyOTP(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, verifyStatus(result), result)
}

// InspectOTP returns the diagnostic partition for an address. Admin-gated:
// the payload contains live codes.
// GET /api/v1/admin/otp/inspect?email=...
func (h *VerificationHandler) InspectOTP(c *gin.Context) {
	email := c.Query("email")

	diagnostics, err := h.verificationService.Inspect(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, diagnostics)
}

// sendStatus maps an issuance result onto an HTTP status. The structured
// result travels in the body either way.
func sendStatus(result *entities.SendOTPResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.ErrorType {
	case entities.OTPErrorTooManyActive:
		return http.StatusTooManyRequests
	default:
		// Unknown address or delivery failure.
		return http.StatusBadRequest
	}
}

func verifyStatus(result *entities.VerifyOTPResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.ErrorType {
	case entities.OTPErrorUserNotFound:
		return http.StatusNotFound
	case entities.OTPErrorExpired:
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}
