package ports

import (
	"context"
	"time"
)

// TokenDenylist abstracts the revocation store (Redis). Revoked tokens stay
// listed for their remaining lifetime; expiry handles the rest.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
