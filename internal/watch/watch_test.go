package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, paths []string) *atomic.Int32 {
	t.Helper()

	w, err := New(paths, ".hcl", 20*time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { calls.Add(1) })
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		require.NoError(t, w.Close())
	})
	return &calls
}

func TestRun_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, []string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestRun_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, []string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
}

func TestRun_WatchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, []string{dir})

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// The directory creation itself is not a configuration change.
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())

	require.NoError(t, os.WriteFile(filepath.Join(sub, "child.hcl"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestRun_DirectoryMovedIntoTree(t *testing.T) {
	staging := t.TempDir()
	staged := filepath.Join(staging, "staged")
	require.NoError(t, os.Mkdir(staged, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staged, "child.hcl"), []byte("x"), 0o600))

	dir := t.TempDir()
	calls := startWatcher(t, []string{dir})

	require.NoError(t, os.Rename(staged, filepath.Join(dir, "staged")))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestRun_SingleFilePath(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(watched, []byte("x"), 0o600))
	calls := startWatcher(t, []string{watched})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sibling.hcl"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load(), "siblings of a watched file are ignored")

	require.NoError(t, os.WriteFile(watched, []byte("y"), 0o600))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestRun_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, ".hcl", 150*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, func(context.Context) { calls.Add(1) }) }()

	file := filepath.Join(dir, "main.hcl")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte{byte('a' + i)}, 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch")
}

func TestRelevant(t *testing.T) {
	w := &Watcher{
		extension: ".hcl",
		files:     map[string]struct{}{"/cfg/one.hcl": {}},
		dirs:      map[string]struct{}{"/tree": {}, "/tree/sub": {}},
	}

	testCases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"watched file write", fsnotify.Event{Name: "/cfg/one.hcl", Op: fsnotify.Write}, true},
		{"sibling of watched file", fsnotify.Event{Name: "/cfg/two.hcl", Op: fsnotify.Write}, false},
		{"hcl in tree", fsnotify.Event{Name: "/tree/sub/a.hcl", Op: fsnotify.Create}, true},
		{"other extension in tree", fsnotify.Event{Name: "/tree/a.md", Op: fsnotify.Write}, false},
		{"removed sub-directory", fsnotify.Event{Name: "/tree/sub", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "/tree/a.hcl", Op: fsnotify.Chmod}, false},
		{"rename", fsnotify.Event{Name: "/tree/a.hcl", Op: fsnotify.Rename}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.relevant(tc.ev))
		})
	}
}
