package ports

import (
	"context"

	"github.com/crewhub/user-directory/internal/core/domain"
)

// UserRepository defines read operations over the directory. List returns the
// whole unordered collection; ordering and pagination are the service's job
// so every caller gets identical comparator semantics.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
}
