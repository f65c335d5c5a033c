package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", sessionFile)
	want := Session{View: "pairing", Feature: "alcohol", WineType: "Red", Cuisine: "Thai"}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissingSession(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), sessionFile))
	require.NoError(t, err)
	require.Equal(t, Session{}, got)
}

func TestLoadCorruptSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), sessionFile)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}
