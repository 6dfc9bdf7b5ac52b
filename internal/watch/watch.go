// Package watch reruns checks when files under the target paths change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"

	"cigate/internal/system"
)

// ignoredDirs hold caches and build output that tools write during a run.
var ignoredDirs = map[string]bool{
	".git": true, ".hg": true, ".venv": true, "venv": true, "node_modules": true,
	"target": true, "__pycache__": true, ".mypy_cache": true, ".ruff_cache": true,
	".pytest_cache": true, ".tox": true,
}

// DefaultDebounce coalesces editor save bursts into one run.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls Run once at start and again after each quiet period
// following a change. Runs never overlap: events arriving during a run
// schedule exactly one follow-up run.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	Run      func(ctx context.Context)

	// Ready, if set, is closed once the initial run finished and all
	// directories are watched.
	Ready chan struct{}
}

// ignored checks the event path relative to the watched roots so that a
// root which itself lives below e.g. "target" still works.
func (w *Watcher) ignored(name string) bool {
	for _, root := range w.Paths {
		if rel, err := filepath.Rel(root, name); err == nil && !strings.HasPrefix(rel, "..") {
			return Ignored(rel)
		}
	}
	return Ignored(name)
}

// Ignored reports whether a relative path lies in a cache or VCS directory.
func Ignored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if ignoredDirs[part] {
			return true
		}
	}
	return false
}

// addTree registers root and every non-ignored directory below it; for a
// file target its parent directory is watched.
func addTree(w *fsnotify.Watcher, root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoredDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			system.Logger.Warn("cannot watch", "path", path, "err", err)
		}
		return nil
	})
}

// Loop blocks until ctx is canceled.
func (w *Watcher) Loop(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	for _, p := range w.Paths {
		if err := addTree(fw, p); err != nil {
			system.Logger.Warn("cannot watch", "path", p, "err", err)
		}
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w.Run(ctx)
	if w.Ready != nil {
		close(w.Ready)
	}
	system.Logger.Info("watching for changes", "paths", w.Paths)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || w.ignored(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = addTree(fw, ev.Name)
				}
			}
			system.Logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			system.Logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			w.Run(ctx)
		}
	}
}
