package ports

import (
	"context"

	"github.com/crewhub/user-directory/internal/core/domain"
)

// AuthRepository defines the persistence operations behind authentication.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
