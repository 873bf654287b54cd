package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	select {
	case <-calls:
		t.Fatal("callback fired for another file")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("callback not fired after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"), 0, nil)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	w, err := New(path, 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.True(t, w.relevant(fsnotify.Event{Name: w.Path(), Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: w.Path(), Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: w.Path() + ".swp", Op: fsnotify.Write}))
}
