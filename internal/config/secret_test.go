package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSessionSecret_GeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_secret")

	secret, err := LoadOrCreateSessionSecret(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(secret), 32)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second startup reads the same secret back.
	again, err := LoadOrCreateSessionSecret(path)
	require.NoError(t, err)
	require.Equal(t, secret, again)
}

func TestLoadOrCreateSessionSecret_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_secret")
	require.NoError(t, os.WriteFile(path, []byte("not base64 !!"), 0o600))

	_, err := LoadOrCreateSessionSecret(path)
	require.Error(t, err)
}

func TestLoadOrCreateSessionSecret_RejectsShortSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_secret")
	require.NoError(t, os.WriteFile(path, []byte("c2hvcnQ="), 0o600)) // "short"

	_, err := LoadOrCreateSessionSecret(path)
	require.Error(t, err)
}
