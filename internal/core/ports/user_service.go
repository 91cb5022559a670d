package ports

import (
	"context"
	"time"

	"github.com/crewhub/user-directory/pkg/listing"
)

// ListUsersInput carries the parameters for the directory listing endpoint.
type ListUsersInput struct {
	Sort  listing.State
	Page  int // 1-based
	Limit int // capped by the service
}

// UserSummary is one listed user, without credential material.
type UserSummary struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// ListUsersResult is one ordered page of the directory.
type ListUsersResult struct {
	Items      []UserSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations over the directory.
type UserService interface {
	ListUsers(ctx context.Context, in ListUsersInput) (*ListUsersResult, error)
}
