package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// User owns the comparison history saved for authenticated uploads.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time // nil until the first login
}

// UserRepository stores accounts. Emails are compared lower-cased.
type UserRepository interface {
	// Create returns ErrUserAlreadyExists for a taken email.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TokenGenerator issues access tokens (JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
