package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Token()
	assert.False(t, ok)

	require.NoError(t, s.Set("tok_1"))
	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok_1", token)

	require.NoError(t, s.Clear())
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewFileStore(path)

	_, ok := s.Token()
	assert.False(t, ok)

	require.NoError(t, s.Set("tok_file"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A fresh store over the same path sees the persisted token.
	token, ok := NewFileStore(path).Token()
	assert.True(t, ok)
	assert.Equal(t, "tok_file", token)

	require.NoError(t, s.Clear())
	_, ok = s.Token()
	assert.False(t, ok)

	// Clearing an already-clear store is fine.
	require.NoError(t, s.Clear())
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("tok_ws\n"), 0o600))

	token, ok := NewFileStore(path).Token()
	assert.True(t, ok)
	assert.Equal(t, "tok_ws", token)
}
