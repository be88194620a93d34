package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAbsent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".workshopforge"))

	r, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".workshopforge"))
	saved := Record{
		SpecHash:  "a1b2c3d4e5f60718",
		Backend:   "echo",
		LastGoal:  "add a quiz module",
		UpdatedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".workshopforge"))
	require.NoError(t, store.Save(Record{SpecHash: "old"}))
	require.NoError(t, store.Save(Record{SpecHash: "new"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.SpecHash)

	// The temp file from the atomic write must not linger.
	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Load()
	assert.Error(t, err)
}
