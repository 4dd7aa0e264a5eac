package filestore

// Package filestore persists the session in a single JSON document on disk.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

var _ ports.CredentialStore = (*Store)(nil)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// document is the on-disk layout: two named slots.
type document struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Store is a file-backed credential store.
// Writes replace the file atomically (temp file + rename), so readers in other
// processes see either the previous session or the new one, never a mix.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a store at path. The parent directory is created on first write.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("credential file path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// DefaultPath returns the per-user credential file for a profile.
func DefaultPath(profile string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	name := "credentials.json"
	if p := strings.TrimSpace(profile); p != "" && p != "default" {
		name = "credentials-" + p + ".json"
	}
	return filepath.Join(dir, "pfetrack", name), nil
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

func (s *Store) ReadToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

func (s *Store) ReadUser(_ context.Context) (*domainauth.UserIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(doc.User) == 0 || string(doc.User) == "null" {
		return nil, nil
	}
	var u domainauth.UserIdentity
	if unmarshalErr := json.Unmarshal(doc.User, &u); unmarshalErr != nil {
		return nil, nil //nolint:nilerr // unparseable records read as absent
	}
	return &u, nil
}

func (s *Store) WriteSession(_ context.Context, token string, user domainauth.UserIdentity) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	data, err := json.MarshalIndent(document{Token: token, User: userJSON}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(data)
}

func (s *Store) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

// load reads the document. A missing or unparseable file reads as empty.
func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document{}, nil
		}
		return document{}, fmt.Errorf("read credential file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, nil //nolint:nilerr // corrupt documents read as absent
	}
	return doc, nil
}

func (s *Store) replace(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		closeErr := tmp.Close()
		removeErr := os.Remove(tmpName)
		if errors.Is(removeErr, os.ErrNotExist) {
			removeErr = nil
		}
		if closeErr != nil && errors.Is(closeErr, os.ErrClosed) {
			closeErr = nil
		}
		return errors.Join(cause, closeErr, removeErr)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return cleanup(fmt.Errorf("replace credential file: %w", err))
	}
	return nil
}
