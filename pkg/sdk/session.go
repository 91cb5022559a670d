package sdk

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Store layout: the token and the serialized identity live under two keys,
// written and removed together. One key without the other is treated as no
// session.
const (
	tokenKey    = "session.token"
	identityKey = "session.identity"
)

// Identity is the cached owner of the active credential.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is an opaque bearer token plus the identity it belongs to. A
// credential exists in the store if and only if the user is authenticated.
type Credential struct {
	Token string
	User  Identity
}

// Session is the single source of truth for the active credential. It is the
// only writer of the backing store keys; everything else reads through
// Current.
type Session struct {
	mu    sync.Mutex
	store Store
}

// NewSession returns a Session backed by store. A nil store gets an in-memory
// one.
func NewSession(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Establish stores cred, superseding any previous credential. Establishing
// never fails: overwriting a stale session is always permitted.
func (s *Session) Establish(cred Credential) {
	raw, err := json.Marshal(cred.User)
	if err != nil {
		// Identity is plain strings; this cannot happen in practice.
		raw = []byte("{}")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(tokenKey, cred.Token)
	s.store.Set(identityKey, string(raw))
}

// Current returns the active credential, or ok=false when none exists. It
// never blocks on anything beyond the store itself. A half-written store
// (one key without the other) counts as absent and is cleaned up.
func (s *Session) Current() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken := s.store.Get(tokenKey)
	raw, hasIdentity := s.store.Get(identityKey)
	if !hasToken || !hasIdentity || token == "" {
		if hasToken || hasIdentity {
			s.store.Delete(tokenKey)
			s.store.Delete(identityKey)
		}
		return Credential{}, false
	}

	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		s.store.Delete(tokenKey)
		s.store.Delete(identityKey)
		return Credential{}, false
	}

	return Credential{Token: token, User: id}, true
}

// Attach injects the credential into req's Authorization header. When no
// session exists the request is left unmodified.
func (s *Session) Attach(req *http.Request) {
	cred, ok := s.Current()
	if !ok {
		return
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
}

// Invalidate removes the credential unconditionally. Invalidating an empty
// session is a no-op, not an error.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(tokenKey)
	s.store.Delete(identityKey)
}
