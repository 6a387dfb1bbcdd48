package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		}
		os.Unsetenv(key)
	}
}

func TestDbURLNotConfigured(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "POSTGRES_HOST")
	_, err := DbURL()
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestDbURLPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/x")
	t.Setenv("POSTGRES_HOST", "elsewhere")
	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db:5432/x", url)
}

func TestDbURLFromParts(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "POSTGRES_PASSWORD", "POSTGRES_PORT", "POSTGRES_DB", "POSTGRES_SSLMODE")

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("s3cr3t/?\n"), 0o600))

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "sweeper")
	t.Setenv("POSTGRES_PASSWORD_FILE", passwordFile)

	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://sweeper:s3cr3t%2F%3F@db:5432/minesweeper?sslmode=disable", url)
}

func TestDbURLMissingUser(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "POSTGRES_USER")
	t.Setenv("POSTGRES_HOST", "db")
	_, err := DbURL()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoDatabase)
}
