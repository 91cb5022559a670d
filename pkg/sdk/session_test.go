package sdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_EstablishCurrentRoundTrip(t *testing.T) {
	s := NewSession(nil)

	cred := Credential{
		Token: "tok-123",
		User:  Identity{ID: "u1", Name: "Alice", Email: "alice@example.com"},
	}
	s.Establish(cred)

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, cred, got)
}

func TestSession_AbsentByDefault(t *testing.T) {
	s := NewSession(nil)

	_, ok := s.Current()
	require.False(t, ok)
}

func TestSession_EstablishSupersedes(t *testing.T) {
	s := NewSession(nil)
	s.Establish(Credential{Token: "old", User: Identity{ID: "u1"}})
	s.Establish(Credential{Token: "new", User: Identity{ID: "u2"}})

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "new", got.Token)
	require.Equal(t, "u2", got.User.ID)
}

func TestSession_InvalidateIsIdempotent(t *testing.T) {
	s := NewSession(nil)
	s.Establish(Credential{Token: "tok", User: Identity{ID: "u1"}})

	s.Invalidate()
	_, ok := s.Current()
	require.False(t, ok)

	// Invalidating an already-empty session is a no-op.
	s.Invalidate()
	_, ok = s.Current()
	require.False(t, ok)
}

func TestSession_AttachSetsBearerHeader(t *testing.T) {
	s := NewSession(nil)
	s.Establish(Credential{Token: "tok-abc", User: Identity{ID: "u1"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	s.Attach(req)
	require.Equal(t, "Bearer tok-abc", req.Header.Get("Authorization"))
}

func TestSession_AttachWithoutSessionLeavesRequestAlone(t *testing.T) {
	s := NewSession(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	s.Attach(req)
	require.Empty(t, req.Header.Get("Authorization"))
}

func TestSession_HalfWrittenStoreCountsAsAbsent(t *testing.T) {
	store := NewMemoryStore()
	store.Set(tokenKey, "orphan-token")

	s := NewSession(store)
	_, ok := s.Current()
	require.False(t, ok)

	// The orphaned key is removed so the both-or-neither layout is restored.
	_, exists := store.Get(tokenKey)
	require.False(t, exists)
}

func TestSession_SurvivesAcrossSessionsSharingAStore(t *testing.T) {
	store := NewMemoryStore()

	first := NewSession(store)
	first.Establish(Credential{Token: "tok", User: Identity{ID: "u1", Name: "Ana", Email: "ana@example.com"}})

	second := NewSession(store)
	got, ok := second.Current()
	require.True(t, ok)
	require.Equal(t, "Ana", got.User.Name)
}
