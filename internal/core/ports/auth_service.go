package ports

import (
	"context"
	"time"

	"github.com/crewhub/user-directory/internal/core/domain"
)

// RegisterInput carries a registration request. Confirmation matching is a
// transport concern; by the time input reaches the service it holds one
// password.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService defines account and token use cases. Register follows the
// register-then-login flow: a fresh token is returned alongside the created
// user.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token until expiresAt, after which the
	// token is dead on its own.
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}
