// Package session persists the authenticated user and bearer credential
// under the config directory.
package session

import (
	"encoding/json"
	"errors"
	"os"

	"golang.org/x/oauth2"

	"todocli/internal/service"
)

// ErrNoSession is returned when no usable session is stored. Unreadable or
// corrupt session files report the same: "no session", never a hard error.
var ErrNoSession = errors.New("not logged in")

// Store reads and writes the session files.
type Store struct {
	userPath  string
	tokenPath string
}

// NewStore creates a session store over the given file paths.
func NewStore(userPath, tokenPath string) *Store {
	return &Store{userPath: userPath, tokenPath: tokenPath}
}

// SaveToken stores the bearer credential with mode 0600.
func (s *Store) SaveToken(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath, data, 0600)
}

// Token returns the stored bearer credential.
// Returns ErrNoSession if none is stored.
func (s *Store) Token() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return nil, ErrNoSession
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, ErrNoSession
	}
	if tok.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &tok, nil
}

// SaveUser stores the user record with mode 0600.
func (s *Store) SaveUser(u service.User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.userPath, data, 0600)
}

// User returns the stored user record.
// Returns ErrNoSession if none is stored.
func (s *Store) User() (service.User, error) {
	data, err := os.ReadFile(s.userPath)
	if err != nil {
		return service.User{}, ErrNoSession
	}
	var u service.User
	if err := json.Unmarshal(data, &u); err != nil {
		return service.User{}, ErrNoSession
	}
	return u, nil
}

// Clear removes both session files. Missing files are not an error.
func (s *Store) Clear() error {
	var firstErr error
	for _, path := range []string{s.userPath, s.tokenPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Active reports whether a bearer credential is stored.
func (s *Store) Active() bool {
	_, err := s.Token()
	return err == nil
}
