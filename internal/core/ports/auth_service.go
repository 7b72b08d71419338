package ports

import (
	"context"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// LogoutResult reports whether the token had already been revoked.
type LogoutResult struct {
	AlreadyRevoked bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) (*LogoutResult, error)
	// Authenticate runs the session guard checks for token and returns the
	// owning user without its password hash.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
