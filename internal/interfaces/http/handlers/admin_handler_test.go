package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"orama.backend/internal/domain/entities"
	domainerrors "orama.backend/internal/domain/errors"
)

type adminServiceStub struct {
	registerFn      func(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error)
	loginFn         func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	listUsersFn     func(ctx context.Context) ([]*entities.User, error)
	listAdminsFn    func(ctx context.Context) ([]*entities.User, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*entities.User, error)
	getByPhoneFn    func(ctx context.Context, phone string) (*entities.User, error)
	toggleActiveFn  func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	updateProfileFn func(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (s adminServiceStub) RegisterAdmin(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	return s.registerFn(ctx, input)
}

func (s adminServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}

func (s adminServiceStub) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.listUsersFn(ctx)
}

func (s adminServiceStub) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	return s.listAdminsFn(ctx)
}

func (s adminServiceStub) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s adminServiceStub) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s adminServiceStub) GetUserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return s.getByPhoneFn(ctx, phone)
}

func (s adminServiceStub) ToggleActive(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.toggleActiveFn(ctx, id)
}

func (s adminServiceStub) UpdateUserProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	return s.updateProfileFn(ctx, id, input)
}

func (s adminServiceStub) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func TestAdminHandler_Login_RejectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewAdminHandler(adminServiceStub{
		loginFn: func(_ context.Context, _ *entities.LoginInput) (*entities.AuthResponse, error) {
			return nil, domainerrors.Forbidden("Admin access required")
		},
	})
	r.POST("/admin/login", h.Login)

	w := postJSON(t, r, "/admin/login", `{"email":"user@orama.io","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewAdminHandler(adminServiceStub{
		listUsersFn: func(_ context.Context) ([]*entities.User, error) {
			return []*entities.User{
				{Email: "a@orama.io"},
				{Email: "b@orama.io"},
			}, nil
		},
	})
	r.GET("/admin/users", h.ListUsers)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestAdminHandler_GetUser_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewAdminHandler(adminServiceStub{})
	r.GET("/admin/users/:id", h.GetUser)

	req := httptest.NewRequest(http.MethodGet, "/admin/users/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_ToggleActive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	id := uuid.New()
	r := gin.New()
	h := NewAdminHandler(adminServiceStub{
		toggleActiveFn: func(_ context.Context, got uuid.UUID) (*entities.User, error) {
			require.Equal(t, id, got)
			return &entities.User{ID: got, IsActive: false}, nil
		},
	})
	r.PATCH("/admin/users/:id/toggle-active", h.ToggleActive)

	req := httptest.NewRequest(http.MethodPatch, "/admin/users/"+id.String()+"/toggle-active", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":false`)
}

func TestAdminHandler_DeleteUser_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	id := uuid.New()
	r := gin.New()
	h := NewAdminHandler(adminServiceStub{
		deleteFn: func(_ context.Context, _ uuid.UUID) error {
			return domainerrors.NotFound("User not found")
		},
	})
	r.DELETE("/admin/users/:id", h.DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
