package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherRejectsNonShaderPath(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "scene.json"))
	assert.ErrorContains(t, err, "unrecognized extension")
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rt.frag")
	require.NoError(t, os.WriteFile(path, []byte("// v1\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("// v2\n"), 0o644))

	select {
	case got := <-w.Changed:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event within 5s")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "rt.vert")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("// v1\n"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("hello\n"), 0o644))

	select {
	case got := <-w.Changed:
		t.Fatalf("unexpected change event for %s", got)
	case <-time.After(500 * time.Millisecond):
	}
}
