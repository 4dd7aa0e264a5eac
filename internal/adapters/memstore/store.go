package memstore

// Package memstore provides an in-process credential store.
// Sessions live as long as the process; useful for ephemeral runs and tests.

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

var _ ports.CredentialStore = (*Store)(nil)

// Store keeps the token and the serialized user record in memory.
// The user slot holds raw JSON so corrupt records behave like the durable backends.
type Store struct {
	mu    sync.RWMutex
	token string
	user  []byte
}

// New returns an empty store.
func New() *Store { return &Store{} }

func (s *Store) ReadToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *Store) ReadUser(_ context.Context) (*domainauth.UserIdentity, error) {
	s.mu.RLock()
	raw := s.user
	s.mu.RUnlock()
	if len(raw) == 0 {
		return nil, nil
	}
	var u domainauth.UserIdentity
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil //nolint:nilerr // unparseable records read as absent
	}
	return &u, nil
}

func (s *Store) WriteSession(_ context.Context, token string, user domainauth.UserIdentity) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.user = data
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearSession(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Seed sets the raw slots directly, bypassing serialization.
// Tests use it to plant partial or corrupt state.
func (s *Store) Seed(token string, rawUser []byte) {
	s.mu.Lock()
	s.token = token
	s.user = append([]byte(nil), rawUser...)
	s.mu.Unlock()
}
