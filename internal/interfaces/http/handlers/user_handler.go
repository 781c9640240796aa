package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
	"orama.backend/internal/interfaces/http/middleware"
	"orama.backend/internal/interfaces/http/response"
)

// UserService is the slice of the user usecase the handler needs.
type UserService interface {
	GetProfile(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, email string, input *entities.UpdateProfileInput) (*entities.User, error)
	UpdatePhone(ctx context.Context, email, phone string) (*entities.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles profile endpoints for the authenticated user
type UserHandler struct {
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the authenticated user's profile
// GET /api/v1/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies a partial update to the authenticated user's profile
// PATCH /api/v1/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), email, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdatePhone sets the authenticated user's phone number
// PUT /api/v1/users/phone
func (h *UserHandler) UpdatePhone(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.UpdatePhone(c.Request.Context(), email, input.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteAccount removes the authenticated user's account
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account deleted"})
}
