package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]User
	err   error
}

func (m *memUsers) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = map[string]User{}
	}
	if _, ok := m.users[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.users[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return User{}, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *memUsers) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, u := range m.users {
		if u.ID == id {
			u.LastLoginAt = &at
			m.users[email] = u
			return nil
		}
	}
	return ErrNotFound
}

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, u User) (string, error) {
	return "token-" + u.ID.String(), nil
}

func newService() *authService {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &authService{
		repo:   &memUsers{},
		tokens: stubTokens{},
		cost:   bcrypt.MinCost,
		log:    zap.NewNop(),
		now:    func() time.Time { return now },
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "  Jane@Example.org ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.org", reg.User.Email)
	assert.Equal(t, "token-"+reg.User.ID.String(), reg.Token)
	assert.NotEqual(t, "correct horse", reg.User.PasswordHash)

	assert.Nil(t, reg.User.LastLoginAt)

	login, err := svc.Login(ctx, "JANE@example.org", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.Nil(t, login.User.LastLoginAt, "first login has no previous login")

	again, err := svc.Login(ctx, "jane@example.org", "correct horse")
	require.NoError(t, err)
	require.NotNil(t, again.User.LastLoginAt)
	assert.Equal(t, svc.now(), *again.User.LastLoginAt)

	_, err = svc.Login(ctx, "jane@example.org", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.org", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "long enough")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "a@b.co", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "a@b.co", "long enough")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "A@B.CO", "long enough")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginStorageFailure(t *testing.T) {
	svc := newService()
	down := errors.New("connection refused")
	svc.repo = &memUsers{err: down}

	_, err := svc.Login(context.Background(), "jane@example.org", "correct horse")
	require.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
