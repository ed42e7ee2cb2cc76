package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitChange(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Changes():
		return true
	case <-time.After(3 * time.Second):
		return false
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\n"), 0o644))

	w, err := NewWatcher(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, w.Path())

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("change reported for another file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	assert.True(t, waitChange(t, w), "expected a change after writing the file")

	// Save by rename.
	tmp := filepath.Join(dir, "config.toml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[log]\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	assert.True(t, waitChange(t, w), "expected a change after replacing the file")
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrWatcherClosed)
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "config.toml"))
	assert.Error(t, err)
}
