package customizer

import (
	"context"
	"errors"
	"sync"
)

// TokenStore persists the bearer token between runs of the client.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// ProfileFetcher verifies a token by resolving the user behind it.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*UserInfo, error)
}

// AuthSession is the explicit authentication state of the client. It is
// injected into whatever needs identity instead of living in a global:
// Hydrate loads and verifies a stored token, SetCredentials records a fresh
// login, Clear tears the session down.
type AuthSession struct {
	mu    sync.RWMutex
	store TokenStore
	token string
	user  *UserInfo
}

func NewAuthSession(store TokenStore) *AuthSession {
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &AuthSession{store: store}
}

// Token is the current bearer token, empty when anonymous. Pass this as the
// token supplier when constructing a Client.
func (a *AuthSession) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *AuthSession) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != "" && a.user != nil
}

func (a *AuthSession) User() *UserInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Hydrate loads a stored token and verifies it against the server. A server
// rejection discards the token; a transport failure keeps it so a later
// hydrate can retry, but leaves the session unauthenticated.
func (a *AuthSession) Hydrate(ctx context.Context, api ProfileFetcher) error {
	token, err := a.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	user, err := api.Profile(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// Stored token is no longer valid.
			return a.Clear()
		}
		return err
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
	return nil
}

// SetCredentials records a successful login and persists the token.
func (a *AuthSession) SetCredentials(token string, user UserInfo) error {
	a.mu.Lock()
	a.token = token
	a.user = &user
	a.mu.Unlock()

	return a.store.Save(token)
}

// Clear forgets the identity and wipes the persisted token.
func (a *AuthSession) Clear() error {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.mu.Unlock()

	return a.store.Clear()
}
