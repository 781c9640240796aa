package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"orama.backend/internal/domain/entities"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) MarkEmailVerified(ctx context.Context, email string, at time.Time) error {
	return m.Called(ctx, email, at).Error(0)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	args := m.Called(ctx, role)
	if u := args.Get(0); u != nil {
		return u.([]*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockOTPRepo struct {
	mock.Mock
}

func (m *mockOTPRepo) Create(ctx context.Context, record *entities.OTPRecord) error {
	args := m.Called(ctx, record)
	if args.Error(0) == nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockOTPRepo) CountActive(ctx context.Context, email, purpose string, now time.Time) (int64, error) {
	args := m.Called(ctx, email, purpose, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOTPRepo) FindActive(ctx context.Context, email, code string, now time.Time) (*entities.OTPRecord, error) {
	args := m.Called(ctx, email, code, now)
	if r := args.Get(0); r != nil {
		return r.(*entities.OTPRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOTPRepo) FindByEmailAndCode(ctx context.Context, email, code string) (*entities.OTPRecord, error) {
	args := m.Called(ctx, email, code)
	if r := args.Get(0); r != nil {
		return r.(*entities.OTPRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOTPRepo) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return m.Called(ctx, id, usedAt).Error(0)
}

func (m *mockOTPRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOTPRepo) ListByEmail(ctx context.Context, email string) ([]*entities.OTPRecord, error) {
	args := m.Called(ctx, email)
	if r := args.Get(0); r != nil {
		return r.([]*entities.OTPRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeUOW runs the function inline; the repositories above ignore the
// transaction context anyway.
type fakeUOW struct {
	err error
}

func (f *fakeUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// fakeSender records delivery attempts and can be told to fail.
type fakeSender struct {
	err   error
	calls []sentOTP
}

type sentOTP struct {
	email     string
	code      string
	expiresAt time.Time
}

func (f *fakeSender) SendOTP(ctx context.Context, toEmail, code string, expiresAt time.Time) error {
	f.calls = append(f.calls, sentOTP{email: toEmail, code: code, expiresAt: expiresAt})
	return f.err
}

// fixedGenerator returns a canned sequence of codes.
type fixedGenerator struct {
	codes []string
	next  int
}

func (g *fixedGenerator) Generate() string {
	if g.next >= len(g.codes) {
		return "000000"
	}
	code := g.codes[g.next]
	g.next++
	return code
}
