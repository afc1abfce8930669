package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/internal/infrastructure/storage"
)

func TestLevelDBStore_SetGetDelete(t *testing.T) {
	s, err := storage.OpenMemory()
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("role", "ROOT"))
	v, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Delete("token", "role", "inexistente"))
	_, ok, _ = s.Get("role")
	assert.False(t, ok)
}

func TestLevelDBStore_SobreviveReapertura(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Close())

	reopened, err := storage.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}
