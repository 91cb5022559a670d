package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewhub/user-directory/internal/core/domain"
	"github.com/crewhub/user-directory/internal/core/ports"
	"github.com/crewhub/user-directory/pkg/listing"
)

type stubUserRepo struct {
	users []*domain.User
	err   error
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users, nil
}

func namedUsers(names ...string) []*domain.User {
	users := make([]*domain.User, len(names))
	for i, n := range names {
		users[i] = &domain.User{ID: n, Name: n, Email: n + "@example.com", CreatedAt: time.Unix(int64(i+1)*100, 0)}
	}
	return users
}

func itemNames(items []ports.UserSummary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUserService_ListUsers_OrdersByName(t *testing.T) {
	repo := &stubUserRepo{users: namedUsers("beta", "Alpha", "gamma")}
	svc := NewUserService(repo, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{Sort: listing.DefaultState()})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if got := itemNames(result.Items); !equalStrings(got, []string{"Alpha", "beta", "gamma"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if result.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Total)
	}
}

func TestUserService_ListUsers_DescendingByCreatedAt(t *testing.T) {
	repo := &stubUserRepo{users: namedUsers("oldest", "middle", "newest")}
	svc := NewUserService(repo, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{
		Sort: listing.State{Field: listing.FieldCreatedAt, Direction: listing.Descending},
	})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if got := itemNames(result.Items); !equalStrings(got, []string{"newest", "middle", "oldest"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestUserService_ListUsers_ZeroCreatedAtSortsFirst(t *testing.T) {
	users := namedUsers("known")
	users = append(users, &domain.User{ID: "x", Name: "unknown", Email: "x@example.com"})
	svc := NewUserService(&stubUserRepo{users: users}, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{
		Sort: listing.State{Field: listing.FieldCreatedAt, Direction: listing.Ascending},
	})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if got := itemNames(result.Items); !equalStrings(got, []string{"unknown", "known"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestUserService_ListUsers_Pagination(t *testing.T) {
	repo := &stubUserRepo{users: namedUsers("a", "b", "c", "d", "e")}
	svc := NewUserService(repo, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{
		Sort: listing.DefaultState(), Page: 2, Limit: 2,
	})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if got := itemNames(result.Items); !equalStrings(got, []string{"c", "d"}) {
		t.Fatalf("unexpected page: %v", got)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}
	if result.Total != 5 {
		t.Fatalf("expected total 5, got %d", result.Total)
	}
}

func TestUserService_ListUsers_PageBeyondEnd(t *testing.T) {
	repo := &stubUserRepo{users: namedUsers("a", "b")}
	svc := NewUserService(repo, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{
		Sort: listing.DefaultState(), Page: 9, Limit: 10,
	})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %v", itemNames(result.Items))
	}
	if result.Total != 2 {
		t.Fatalf("total should still count all users, got %d", result.Total)
	}
}

func TestUserService_ListUsers_EmptyDirectory(t *testing.T) {
	svc := NewUserService(&stubUserRepo{}, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{Sort: listing.DefaultState()})
	if err != nil {
		t.Fatalf("empty directory must not error: %v", err)
	}
	if len(result.Items) != 0 || result.Total != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestUserService_ListUsers_RepositoryError(t *testing.T) {
	wantErr := errors.New("mongo down")
	svc := NewUserService(&stubUserRepo{err: wantErr}, zerolog.Nop())

	if _, err := svc.ListUsers(context.Background(), ports.ListUsersInput{Sort: listing.DefaultState()}); !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestUserService_ListUsers_LimitClamped(t *testing.T) {
	repo := &stubUserRepo{users: namedUsers("a", "b", "c")}
	svc := NewUserService(repo, zerolog.Nop())

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{
		Sort: listing.DefaultState(), Limit: 10000,
	})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if result.Limit != maxPageSize {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageSize, result.Limit)
	}
}
