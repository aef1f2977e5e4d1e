package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticProviderAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	p, err := NewStaticProvider([]Account{
		{Username: "ali@example.com", Name: "Ali", PasswordHash: string(hash)},
	})
	require.NoError(t, err)

	ident, err := p.Authenticate("ali@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", ident.Username)
	assert.Equal(t, "Ali", ident.Name)

	_, err = p.Authenticate("ali@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticProviderSeedsDefaultAdmin(t *testing.T) {
	p, err := NewStaticProvider(nil)
	require.NoError(t, err)

	ident, err := p.Authenticate("admin@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", ident.Name)
}

func TestAcquireCredential(t *testing.T) {
	p, err := NewStaticProvider(nil)
	require.NoError(t, err)

	first, err := p.AcquireCredential(context.Background(), []string{"Files.ReadWrite"})
	require.NoError(t, err)
	second, err := p.AcquireCredential(context.Background(), []string{"Files.ReadWrite"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)
	assert.True(t, first.ExpiresAt.After(time.Now()))
}

func TestLoadAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := `
- username: ali@example.com
  name: Ali
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "ali@example.com", accounts[0].Username)

	empty, err := LoadAccounts("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
