package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewhub/user-directory/internal/core/domain"
	"github.com/crewhub/user-directory/internal/core/ports"
)

type stubAuthRepo struct {
	users map[string]*domain.User
	next  int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.next++
	copy.ID = "u" + strconv.Itoa(r.next)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

type stubDenylist struct {
	entries map[string]time.Duration
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{entries: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.entries[token] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := d.entries[token]
	return ok, nil
}

func newAuthService(repo ports.AuthRepository, denylist ports.TokenDenylist) *AuthService {
	return NewAuthService(repo, denylist, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token from register-then-login")
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user with ID, got %+v", user)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@example.com", Password: "pass"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "a@example.com"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass1234"})
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bobby", Email: "bob@example.com", Password: "other123"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	_, created, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Fatalf("expected sub %s, got %v", created.ID, claims["sub"])
	}
	if claims["email"] != "carol@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), newStubDenylist())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_RevokesForRemainingLifetime(t *testing.T) {
	denylist := newStubDenylist()
	svc := newAuthService(newStubAuthRepo(), denylist)

	expires := time.Now().Add(30 * time.Minute)
	if err := svc.Logout(context.Background(), "some-token", expires); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl, ok := denylist.entries["some-token"]
	if !ok {
		t.Fatalf("token not revoked")
	}
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Fatalf("unexpected ttl: %s", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoOp(t *testing.T) {
	denylist := newStubDenylist()
	svc := newAuthService(newStubAuthRepo(), denylist)

	if err := svc.Logout(context.Background(), "expired-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(denylist.entries) != 0 {
		t.Fatalf("expected no denylist entry for expired token")
	}
}
