package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/crewhub/user-directory/internal/api/metrics"
	"github.com/crewhub/user-directory/internal/core/domain"
	"github.com/crewhub/user-directory/internal/core/ports"
	"github.com/crewhub/user-directory/pkg/listing"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService produces ordered pages of the directory. Ordering happens here,
// through pkg/listing, so the HTTP layer and the SDK agree on comparator
// semantics.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// ListUsers fetches the collection, orders it by in.Sort, and slices out the
// requested page. An empty directory yields an empty page, not an error.
func (s *UserService) ListUsers(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	ordered := listing.OrderedView(users, in.Sort, userKeys)

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total := int64(len(ordered))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	start := (page - 1) * limit
	if start > len(ordered) {
		start = len(ordered)
	}
	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}

	items := make([]ports.UserSummary, 0, end-start)
	for _, u := range ordered[start:end] {
		items = append(items, ports.UserSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}

	metrics.ListingsTotal.WithLabelValues(string(in.Sort.Field), string(in.Sort.Direction)).Inc()

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// userKeys extracts the comparable values from a user. A zero CreatedAt is a
// missing timestamp and sorts first.
func userKeys(u *domain.User) listing.Keys {
	k := listing.Keys{Name: u.Name, Email: u.Email}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		k.CreatedAt = &created
	}
	return k
}
