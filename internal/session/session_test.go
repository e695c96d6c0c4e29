package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadClear(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session"))

	email, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, email)

	require.NoError(t, store.Save("a@x.com"))

	email, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	require.NoError(t, store.Clear())

	email, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestClearWithoutSession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session"))

	require.NoError(t, store.Clear())
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session"))

	require.NoError(t, store.Save("a@x.com"))
	require.NoError(t, store.Save("b@x.com"))

	email, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", email)
}
