package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	tok, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tok, "fresh store should be empty")

	require.NoError(t, s.Save("T1"))
	tok, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "T1", tok)

	require.NoError(t, s.Save("T2"))
	tok, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "T2", tok)

	require.NoError(t, s.Clear())
	tok, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// Clearing an empty store is not an error.
	require.NoError(t, s.Clear())
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	exerciseStore(t, NewFile(path))
}

func TestFile_Permissions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token.json")
	s := NewFile(path)
	require.NoError(t, s.Save("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFile_CorruptContent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFile(path).Load()
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	t.Parallel()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("T"))
	require.NoError(t, s.Close())

	s2, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })
	tok, err := s2.Load()
	require.NoError(t, err)
	assert.Equal(t, "T", tok)
}

func TestOpen_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("file", "")
	require.NoError(t, err)
	fs, ok := s.(*File)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, ".workdesk", "token.json"), fs.Path())

	_, err = Open("redis", "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
