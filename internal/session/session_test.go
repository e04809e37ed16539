package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"todocli/internal/service"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "session.json"), filepath.Join(dir, "token.json"))
}

func TestTokenRoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.SaveToken(&oauth2.Token{AccessToken: "secret", TokenType: "Bearer"}))

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.True(t, s.Active())
}

func TestToken_Missing(t *testing.T) {
	s := newStore(t)

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, s.Active())
}

func TestToken_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(tokenPath, []byte("not json"), 0600))

	s := NewStore(filepath.Join(dir, "session.json"), tokenPath)
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestToken_EmptyAccessToken(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveToken(&oauth2.Token{}))

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUserRoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.SaveUser(service.User{ID: "user-1", Email: "a@example.com"}))

	u, err := s.User()
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
}

func TestUser_Missing(t *testing.T) {
	s := newStore(t)

	_, err := s.User()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveToken(&oauth2.Token{AccessToken: "secret"}))
	require.NoError(t, s.SaveUser(service.User{Email: "a@example.com"}))

	require.NoError(t, s.Clear())
	assert.False(t, s.Active())
	_, err := s.User()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing an already empty store is fine.
	assert.NoError(t, s.Clear())
}

func TestTokenFileMode(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	s := NewStore(filepath.Join(dir, "session.json"), tokenPath)
	require.NoError(t, s.SaveToken(&oauth2.Token{AccessToken: "secret"}))

	info, err := os.Stat(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
