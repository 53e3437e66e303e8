// Package session owns the portal's single persisted credential: an opaque
// bearer token. The token survives across CLI invocations the way a web
// session survives page loads, and absence of a token is a meaningful state
// (logged out), not an error.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	service = "campus-cli"
)

// Store is the session token slot shared by the guard, the API client and
// explicit logout. Get is synchronous and side-effect free. Clear on an
// empty store is a no-op.
type Store interface {
	Get() (token string, present bool)
	Set(token string) error
	Clear() error
}

// keyringStore persists the token in the OS keychain/credential manager,
// one entry per campus server.
type keyringStore struct {
	key string
}

// NewKeyring returns a Store backed by the OS keyring, scoped to the given
// server so tokens for different campus deployments don't clobber each other.
func NewKeyring(serverURL string) Store {
	return &keyringStore{key: fmt.Sprintf("token-%s", serverURL)}
}

func (s *keyringStore) Get() (string, bool) {
	token, err := keyring.Get(service, s.key)
	if err != nil {
		// Lookup failures (including ErrNotFound) all read as "logged out";
		// the credential is re-established by the next login.
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *keyringStore) Set(token string) error {
	if err := keyring.Set(service, s.key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *keyringStore) Clear() error {
	if err := keyring.Delete(service, s.key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already cleared
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Memory is an in-process Store for tests and for injecting fakes.
type Memory struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithToken returns an in-memory store pre-loaded with a token
func NewMemoryWithToken(token string) *Memory {
	return &Memory{token: token, set: true}
}

func (m *Memory) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set || m.token == "" {
		return "", false
	}
	return m.token, true
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
