package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Authenticate(ctx context.Context, phone, password string) (User, error)
	Create(ctx context.Context, params SignUpParams) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// User represents a registered reader.
type User struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	Avatar    string
	Type      string
	Plan      string
	LastLogin *time.Time
	CreatedAt time.Time
}

// SignUpParams contains parameters to register a user.
type SignUpParams struct {
	Phone    string
	Password string
	Name     string
	Avatar   string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	User        User
	AccessToken string
}
