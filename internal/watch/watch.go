// Package watch reports changes to configuration files so that a new
// snapshot can be loaded.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
)

// DefaultDebounce is how long the watcher waits for edits to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches configuration files and directories for changes to files
// with a given extension. Directories are watched recursively.
type Watcher struct {
	fs        *fsnotify.Watcher
	extension string
	debounce  time.Duration
	// files restricts events for paths given as single files.
	files map[string]struct{}
	// dirs are watched for every matching file.
	dirs map[string]struct{}
}

// New starts watching paths. Changes are reported once they have been quiet
// for debounce; a non-positive debounce uses DefaultDebounce.
func New(paths []string, extension string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:        fw,
		extension: extension,
		debounce:  debounce,
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	if !info.IsDir() {
		clean := filepath.Clean(path)
		w.files[clean] = struct{}{}
		return w.fs.Add(filepath.Dir(clean))
	}
	return w.addTree(path)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		clean := filepath.Clean(p)
		w.dirs[clean] = struct{}{}
		if err := w.fs.Add(clean); err != nil {
			return fmt.Errorf("cannot watch %s: %w", clean, err)
		}
		return nil
	})
}

// relevant reports whether an event should trigger a reload.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if _, ok := w.files[name]; ok {
		return true
	}
	if _, ok := w.dirs[filepath.Dir(name)]; !ok {
		return false
	}
	if _, ok := w.dirs[name]; ok {
		// A watched sub-directory went away.
		return ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0
	}
	return strings.HasSuffix(name, w.extension)
}

// Run blocks until ctx is done, calling onChange after every settled burst of
// relevant changes. onChange runs on the watcher goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	logger := ctxlog.FromContext(ctx)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return errors.New("file watcher event channel closed")
			}
			movedIn := w.trackNewDir(logger, ev)
			if !movedIn && !w.relevant(ev) {
				continue
			}
			logger.Debug("Configuration change detected.", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("file watcher error channel closed")
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			onChange(ctx)
		}
	}
}

// trackNewDir starts watching directories created or moved inside watched
// trees. It reports whether the new directory already holds matching files,
// since no further event will announce them.
func (w *Watcher) trackNewDir(logger *slog.Logger, ev fsnotify.Event) bool {
	if ev.Op&fsnotify.Create == 0 {
		return false
	}
	if _, ok := w.dirs[filepath.Dir(filepath.Clean(ev.Name))]; !ok {
		return false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := w.addTree(ev.Name); err != nil {
		logger.Warn("Failed to watch new directory.", "path", ev.Name, "error", err)
	}
	return w.holdsMatchingFiles(ev.Name)
}

func (w *Watcher) holdsMatchingFiles(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(p, w.extension) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
