package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventers-marketplace-client/model"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func organizer() model.User {
	return model.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Role: model.RoleOrganizer}
}

func TestBeginPersistsAndLoadRestores(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session")
	token := signedToken(t, "u1", time.Now().Add(time.Hour))

	m, err := NewManager(path, "s3cret")
	require.NoError(t, err)
	require.NoError(t, m.Begin(ctx, model.Auth{Token: token, User: organizer()}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ada@example.com")

	restored, err := NewManager(path, "s3cret")
	require.NoError(t, err)
	require.NoError(t, restored.Load(ctx))

	s, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, token, s.Token)
	assert.Equal(t, organizer(), s.User)
	require.NotNil(t, s.ExpiresAt)

	got, err := restored.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestPlainSessionFileWithoutSecret(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session")

	m, err := NewManager(path, "")
	require.NoError(t, err)
	require.NoError(t, m.Begin(ctx, model.Auth{Token: "opaque", User: organizer()}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ada@example.com")

	s, ok := m.Current()
	require.True(t, ok)
	assert.Nil(t, s.ExpiresAt)
}

func TestEndRemovesSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session")
	m, err := NewManager(path, "s3cret")
	require.NoError(t, err)
	require.NoError(t, m.Begin(ctx, model.Auth{Token: "opaque", User: organizer()}))

	require.NoError(t, m.End(ctx))
	_, ok := m.Current()
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, m.End(ctx))
}

func TestExpiredSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session")
	m, err := NewManager(path, "s3cret")
	require.NoError(t, err)
	require.NoError(t, m.Begin(ctx, model.Auth{Token: signedToken(t, "u1", time.Now().Add(time.Minute)), User: organizer()}))

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, ok := m.Current()
	assert.False(t, ok)

	later, err := NewManager(path, "s3cret")
	require.NoError(t, err)
	later.now = m.now
	require.NoError(t, later.Load(ctx))
	_, ok = later.Current()
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadDiscardsFileSealedWithOtherSecret(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session")
	m, err := NewManager(path, "one")
	require.NoError(t, err)
	require.NoError(t, m.Begin(ctx, model.Auth{Token: "opaque", User: organizer()}))

	other, err := NewManager(path, "two")
	require.NoError(t, err)
	require.NoError(t, other.Load(ctx))
	_, ok := other.Current()
	assert.False(t, ok)
}

func TestLoadWithoutFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "none"), "")
	require.NoError(t, err)
	require.NoError(t, m.Load(context.Background()))
	_, ok := m.User()
	assert.False(t, ok)
}

func TestBeginFillsUserIDFromSubject(t *testing.T) {
	m, err := NewManager("", "")
	require.NoError(t, err)
	token := signedToken(t, "u42", time.Now().Add(time.Hour))
	require.NoError(t, m.Begin(context.Background(), model.Auth{Token: token, User: model.User{Email: "x@example.com"}}))

	u, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "u42", u.ID)
}

func TestRequireRole(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager("", "")
	require.NoError(t, err)

	_, err = m.RequireRole()
	assert.Equal(t, ErrNoSession, err)

	require.NoError(t, m.Begin(ctx, model.Auth{Token: "opaque", User: organizer()}))

	u, err := m.RequireRole()
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = m.RequireRole(model.RoleOrganizer, model.RoleAdmin)
	assert.NoError(t, err)

	_, err = m.RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
	assert.Equal(t, ErrForbidden, err)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(filepath.Join(t.TempDir(), "session"), "")
	require.NoError(t, err)
	assert.Equal(t, ErrNoSession, m.UpdateUser(organizer()))

	require.NoError(t, m.Begin(ctx, model.Auth{Token: "opaque", User: organizer()}))
	u := organizer()
	u.Name = "Ada L."
	require.NoError(t, m.UpdateUser(u))

	got, _ := m.User()
	assert.Equal(t, "Ada L.", got.Name)
}

func TestNewManagerExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	m, err := NewManager("~/.eventers/session", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".eventers", "session"), m.Path())
}
